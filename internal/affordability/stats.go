package affordability

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	apperrors "foodafford/internal/errors"
)

// PriceStatistic selects how prices within a category are summarized.
type PriceStatistic string

const (
	StatMean   PriceStatistic = "mean"
	StatMedian PriceStatistic = "median"
)

// ParsePriceStatistic defaults to the mean when s is empty.
func ParsePriceStatistic(s string) (PriceStatistic, error) {
	switch PriceStatistic(s) {
	case "", StatMean:
		return StatMean, nil
	case StatMedian:
		return StatMedian, nil
	}
	return "", apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown price statistic %q (want mean or median)", s))
}

// DefaultRankingSize is how many items each ranking lists.
const DefaultRankingSize = 5

// ItemStat describes the price history of one item.
type ItemStat struct {
	Item         string          `json:"item"`
	Unit         Unit            `json:"unit"`
	Observations int             `json:"observations"`
	Mean         decimal.Decimal `json:"mean"`
	Min          decimal.Decimal `json:"min"`
	Max          decimal.Decimal `json:"max"`
	// StdDev is the sample standard deviation; zero with fewer than two
	// observations.
	StdDev float64 `json:"std_dev"`
}

// ItemRankings holds the extremes of the item statistics.
type ItemRankings struct {
	MostVolatile   []ItemStat `json:"most_volatile"`
	LeastVolatile  []ItemStat `json:"least_volatile"`
	MostExpensive  []ItemStat `json:"most_expensive"`
	LeastExpensive []ItemStat `json:"least_expensive"`
}

// CategoryPoint is a category's price statistic in one month.
type CategoryPoint struct {
	Month    time.Time       `json:"month"`
	Category Category        `json:"category"`
	Items    int             `json:"items"`
	Value    decimal.Decimal `json:"value"`
}

// CategoryYoYPoint is a category's statistic against twelve months earlier.
type CategoryYoYPoint struct {
	Month     time.Time       `json:"month"`
	Category  Category        `json:"category"`
	ChangePct decimal.Decimal `json:"change_pct"`
}

// CategorySummary describes every price observation of a category.
type CategorySummary struct {
	Category     Category        `json:"category"`
	Observations int             `json:"observations"`
	Mean         decimal.Decimal `json:"mean"`
	Median       decimal.Decimal `json:"median"`
	StdDev       float64         `json:"std_dev"`
}

// ItemStats computes per-item statistics, sorted by item name. An item
// priced in more than one unit cannot be averaged and fails with
// UNIT_MISMATCH.
func ItemStats(records []PriceRecord) ([]ItemStat, error) {
	groups := make(map[string][]PriceRecord)
	names := make(map[string]string)
	for _, r := range records {
		key := ItemKey(r.Item)
		if prev := groups[key]; len(prev) > 0 && prev[0].Unit != r.Unit {
			return nil, apperrors.WithMessage(apperrors.ErrUnitMismatch,
				fmt.Sprintf("%q is priced per %s in %s but per %s in %s",
					names[key], prev[0].Unit, formatMonth(prev[0].Month), r.Unit, formatMonth(r.Month)))
		}
		groups[key] = append(groups[key], r)
		if _, ok := names[key]; !ok {
			names[key] = r.Item
		}
	}

	out := make([]ItemStat, 0, len(groups))
	for key, recs := range groups {
		prices := make([]decimal.Decimal, len(recs))
		for i, r := range recs {
			prices[i] = r.Price
		}
		out = append(out, ItemStat{
			Item:         names[key],
			Unit:         recs[0].Unit,
			Observations: len(prices),
			Mean:         mean(prices),
			Min:          decimal.Min(prices[0], prices[1:]...),
			Max:          decimal.Max(prices[0], prices[1:]...),
			StdDev:       sampleStdDev(prices),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Item < out[j].Item })
	return out, nil
}

// RankItems lists the n most and least volatile and expensive items.
// Items with a single observation have no volatility and are left out of
// the volatility rankings.
func RankItems(stats []ItemStat, n int) ItemRankings {
	if n <= 0 {
		n = DefaultRankingSize
	}

	var volatile []ItemStat
	for _, s := range stats {
		if s.Observations > 1 {
			volatile = append(volatile, s)
		}
	}
	sort.SliceStable(volatile, func(i, j int) bool { return volatile[i].StdDev > volatile[j].StdDev })

	byPrice := make([]ItemStat, len(stats))
	copy(byPrice, stats)
	sort.SliceStable(byPrice, func(i, j int) bool { return byPrice[i].Mean.GreaterThan(byPrice[j].Mean) })

	return ItemRankings{
		MostVolatile:   head(volatile, n),
		LeastVolatile:  head(reversed(volatile), n),
		MostExpensive:  head(byPrice, n),
		LeastExpensive: head(reversed(byPrice), n),
	}
}

// CategoryMonthly summarizes prices per month and category. Every priced
// item must be tagged.
func CategoryMonthly(records []PriceRecord, tagger *Tagger, stat PriceStatistic) ([]CategoryPoint, error) {
	type key struct {
		month time.Time
		cat   Category
	}
	groups := make(map[key][]decimal.Decimal)
	for _, r := range records {
		c, err := tagger.MustTag(r.Item)
		if err != nil {
			return nil, err
		}
		k := key{MonthOf(r.Month), c}
		groups[k] = append(groups[k], r.Price)
	}

	out := make([]CategoryPoint, 0, len(groups))
	for k, prices := range groups {
		v := mean(prices)
		if stat == StatMedian {
			v = median(prices)
		}
		out = append(out, CategoryPoint{Month: k.month, Category: k.cat, Items: len(prices), Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Month.Equal(out[j].Month) {
			return out[i].Month.Before(out[j].Month)
		}
		return categoryOrder(out[i].Category) < categoryOrder(out[j].Category)
	})
	return out, nil
}

// CategoryYoY compares each category point with the same category twelve
// months earlier. Points without a predecessor are left out.
func CategoryYoY(points []CategoryPoint) []CategoryYoYPoint {
	type key struct {
		month time.Time
		cat   Category
	}
	byKey := make(map[key]decimal.Decimal, len(points))
	for _, p := range points {
		byKey[key{p.Month, p.Category}] = p.Value
	}

	var out []CategoryYoYPoint
	for _, p := range points {
		prev, ok := byKey[key{p.Month.AddDate(-1, 0, 0), p.Category}]
		if !ok || prev.IsZero() {
			continue
		}
		out = append(out, CategoryYoYPoint{Month: p.Month, Category: p.Category, ChangePct: percentChange(prev, p.Value)})
	}
	return out
}

// SummarizeCategories describes all price observations per category.
// Categories without observations are omitted.
func SummarizeCategories(records []PriceRecord, tagger *Tagger) ([]CategorySummary, error) {
	groups := make(map[Category][]decimal.Decimal)
	for _, r := range records {
		c, err := tagger.MustTag(r.Item)
		if err != nil {
			return nil, err
		}
		groups[c] = append(groups[c], r.Price)
	}

	var out []CategorySummary
	for _, c := range Categories {
		prices, ok := groups[c]
		if !ok {
			continue
		}
		out = append(out, CategorySummary{
			Category:     c,
			Observations: len(prices),
			Mean:         mean(prices),
			Median:       median(prices),
			StdDev:       sampleStdDev(prices),
		})
	}
	return out, nil
}

func mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(values[0], values[1:]...).Div(decimal.NewFromInt(int64(len(values))))
}

func median(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}

func sampleStdDev(values []decimal.Decimal) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := decimal.Zero
	for _, v := range values {
		d := v.Sub(m)
		sum = sum.Add(d.Mul(d))
	}
	variance := sum.Div(decimal.NewFromInt(int64(len(values) - 1)))
	return math.Sqrt(variance.InexactFloat64())
}

func categoryOrder(c Category) int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return len(Categories)
}

func head(stats []ItemStat, n int) []ItemStat {
	if len(stats) > n {
		stats = stats[:n]
	}
	out := make([]ItemStat, len(stats))
	copy(out, stats)
	return out
}

func reversed(stats []ItemStat) []ItemStat {
	out := make([]ItemStat, len(stats))
	for i, s := range stats {
		out[len(stats)-1-i] = s
	}
	return out
}
