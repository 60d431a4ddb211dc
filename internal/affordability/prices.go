package affordability

import (
	"fmt"
	"sort"
	"time"

	apperrors "foodafford/internal/errors"
)

// PriceTable indexes price records by month and item.
type PriceTable struct {
	byMonth map[time.Time]map[string]PriceRecord
	months  []time.Time
	size    int
}

// NewPriceTable indexes records. Two records for the same item and month are
// rejected rather than resolved, since the source gives no tie-break rule.
func NewPriceTable(records []PriceRecord) (*PriceTable, error) {
	t := &PriceTable{byMonth: make(map[time.Time]map[string]PriceRecord)}

	for _, r := range records {
		month := MonthOf(r.Month)
		r.Month = month

		items, ok := t.byMonth[month]
		if !ok {
			items = make(map[string]PriceRecord)
			t.byMonth[month] = items
			t.months = append(t.months, month)
		}

		key := ItemKey(r.Item)
		if _, dup := items[key]; dup {
			return nil, apperrors.WithMessage(apperrors.ErrDuplicateRecord,
				fmt.Sprintf("more than one price for %q in %s", r.Item, formatMonth(month)))
		}
		items[key] = r
		t.size++
	}

	sort.Slice(t.months, func(i, j int) bool { return t.months[i].Before(t.months[j]) })
	return t, nil
}

// Lookup returns the price of item in month.
func (t *PriceTable) Lookup(item string, month time.Time) (PriceRecord, bool) {
	items, ok := t.byMonth[MonthOf(month)]
	if !ok {
		return PriceRecord{}, false
	}
	r, ok := items[ItemKey(item)]
	return r, ok
}

// Months returns every month with at least one price, oldest first.
func (t *PriceTable) Months() []time.Time {
	out := make([]time.Time, len(t.months))
	copy(out, t.months)
	return out
}

// Len returns the number of price records.
func (t *PriceTable) Len() int { return t.size }
