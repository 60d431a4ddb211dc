package affordability

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// YoYPoint is the change of a series against the same month one year earlier.
type YoYPoint struct {
	Month     time.Time       `json:"month"`
	ChangePct decimal.Decimal `json:"change_pct"`
}

// AnnualMetric summarizes one calendar year of monthly metrics.
type AnnualMetric struct {
	Year           int             `json:"year"`
	Months         int             `json:"months"`
	AvgMonthlyCost decimal.Decimal `json:"avg_monthly_cost"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	Income         decimal.Decimal `json:"income"`
	Ratio          decimal.Decimal `json:"ratio"`
	AvgIndex       decimal.Decimal `json:"avg_index"`
	// YoYChangePct compares AvgMonthlyCost with the previous year; nil for
	// the first year or when the previous year is absent.
	YoYChangePct *decimal.Decimal `json:"yoy_change_pct"`
}

// MonthlyYoY returns the percentage change of each month's basket cost
// against twelve months earlier. Months without a cost a year back are left
// out.
func MonthlyYoY(costs []BasketCost) []YoYPoint {
	byMonth := make(map[time.Time]decimal.Decimal, len(costs))
	for _, c := range costs {
		byMonth[c.Month] = c.TotalCost
	}

	var out []YoYPoint
	for _, c := range costs {
		prev, ok := byMonth[c.Month.AddDate(-1, 0, 0)]
		if !ok || prev.IsZero() {
			continue
		}
		out = append(out, YoYPoint{Month: c.Month, ChangePct: percentChange(prev, c.TotalCost)})
	}
	return out
}

// Annualize groups monthly metrics by calendar year.
func Annualize(metrics []Metric) []AnnualMetric {
	type acc struct {
		n      int
		cost   decimal.Decimal
		index  decimal.Decimal
		income decimal.Decimal
	}
	years := make(map[int]*acc)
	var order []int
	for _, m := range metrics {
		y := m.Month.Year()
		a, ok := years[y]
		if !ok {
			a = &acc{income: m.Income}
			years[y] = a
			order = append(order, y)
		}
		a.n++
		a.cost = a.cost.Add(m.BasketCost)
		a.index = a.index.Add(m.Index)
	}
	sort.Ints(order)

	out := make([]AnnualMetric, 0, len(order))
	for i, y := range order {
		a := years[y]
		n := decimal.NewFromInt(int64(a.n))
		avg := a.cost.Div(n)
		am := AnnualMetric{
			Year:           y,
			Months:         a.n,
			AvgMonthlyCost: avg,
			TotalCost:      a.cost,
			Income:         a.income,
			AvgIndex:       a.index.Div(n),
		}
		if a.income.IsPositive() {
			am.Ratio = avg.Mul(monthsPerYear).Div(a.income)
		}
		if i > 0 && order[i-1] == y-1 {
			prev := out[i-1].AvgMonthlyCost
			if !prev.IsZero() {
				change := percentChange(prev, avg)
				am.YoYChangePct = &change
			}
		}
		out = append(out, am)
	}
	return out
}

func percentChange(from, to decimal.Decimal) decimal.Decimal {
	return to.Div(from).Sub(decimal.NewFromInt(1)).Mul(hundred)
}
