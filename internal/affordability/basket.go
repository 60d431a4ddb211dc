package affordability

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "foodafford/internal/errors"
)

// BasketCalculator prices the reference basket month by month.
type BasketCalculator struct {
	items  []BasketItem
	cats   []Category
	tagger *Tagger
}

// NewBasketCalculator checks the basket once so every priced month sees a
// valid, fully categorized definition.
func NewBasketCalculator(items []BasketItem, tagger *Tagger) (*BasketCalculator, error) {
	if len(items) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "basket has no items")
	}
	if tagger == nil {
		tagger = NewTagger(nil)
	}

	seen := make(map[string]bool, len(items))
	cats := make([]Category, len(items))
	for i, item := range items {
		key := ItemKey(item.Item)
		if key == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("basket line %d has no item name", i+1))
		}
		if seen[key] {
			return nil, apperrors.WithMessage(apperrors.ErrDuplicateRecord,
				fmt.Sprintf("basket lists %q more than once", item.Item))
		}
		seen[key] = true

		if !item.MonthlyQuantity.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("basket quantity for %q must be positive", item.Item))
		}
		if !item.Unit.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("basket unit %q for %q is not kg or L", item.Unit, item.Item))
		}

		c, err := tagger.MustTag(item.Item)
		if err != nil {
			return nil, err
		}
		cats[i] = c
	}

	return &BasketCalculator{items: items, cats: cats, tagger: tagger}, nil
}

// Items returns the basket lines with their categories.
func (b *BasketCalculator) Items() ([]BasketItem, []Category) {
	return b.items, b.cats
}

// Cost prices the basket for one month. Every basket item must have a price
// in that month with the same unit as the basket line.
func (b *BasketCalculator) Cost(prices *PriceTable, month time.Time) (BasketCost, error) {
	month = MonthOf(month)
	cost := BasketCost{
		Month:          month,
		TotalCost:      decimal.Zero,
		CostByCategory: make(map[Category]decimal.Decimal, len(Categories)),
		Lines:          make([]BasketLine, 0, len(b.items)),
	}
	for _, c := range Categories {
		cost.CostByCategory[c] = decimal.Zero
	}

	for i, item := range b.items {
		rec, ok := prices.Lookup(item.Item, month)
		if !ok {
			return BasketCost{}, apperrors.WithMessage(apperrors.ErrMissingPrice,
				fmt.Sprintf("no price for %q in %s", item.Item, formatMonth(month)))
		}
		if rec.Unit != item.Unit {
			return BasketCost{}, apperrors.WithMessage(apperrors.ErrUnitMismatch,
				fmt.Sprintf("%q is priced per %s in %s but the basket measures it in %s",
					item.Item, rec.Unit, formatMonth(month), item.Unit))
		}

		contribution := item.MonthlyQuantity.Mul(rec.Price)
		cost.TotalCost = cost.TotalCost.Add(contribution)
		cost.CostByCategory[b.cats[i]] = cost.CostByCategory[b.cats[i]].Add(contribution)
		cost.Lines = append(cost.Lines, BasketLine{
			Item:     item.Item,
			Category: b.cats[i],
			Quantity: item.MonthlyQuantity,
			Unit:     item.Unit,
			Price:    rec.Price,
			Cost:     contribution,
		})
	}

	return cost, nil
}

// CostSeries prices the basket for every month in the price table, oldest
// first. It stops at the first month that cannot be priced.
func (b *BasketCalculator) CostSeries(prices *PriceTable) ([]BasketCost, error) {
	months := prices.Months()
	out := make([]BasketCost, 0, len(months))
	for _, m := range months {
		c, err := b.Cost(prices, m)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// CheckUnits verifies that every priced basket item uses the basket unit in
// every month. Missing prices are not reported here.
func (b *BasketCalculator) CheckUnits(prices *PriceTable) error {
	for _, m := range prices.Months() {
		for _, item := range b.items {
			rec, ok := prices.Lookup(item.Item, m)
			if ok && rec.Unit != item.Unit {
				return apperrors.WithMessage(apperrors.ErrUnitMismatch,
					fmt.Sprintf("%q is priced per %s in %s but the basket measures it in %s",
						item.Item, rec.Unit, formatMonth(m), item.Unit))
			}
		}
	}
	return nil
}
