package affordability

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "foodafford/internal/errors"
)

// DefaultBaselineYear is the year whose January scores 100 on the index.
const DefaultBaselineYear = 2014

var (
	monthsPerYear = decimal.NewFromInt(MonthsPerYear)
	hundred       = decimal.NewFromInt(100)
)

// Calculator turns basket costs into affordability ratios and indexes.
type Calculator struct {
	incomes      map[int]decimal.Decimal
	baselineYear int
}

// NewCalculator indexes incomes by year. A year listed twice or a
// non-positive income is rejected.
func NewCalculator(incomes []IncomeRecord, baselineYear int) (*Calculator, error) {
	if baselineYear == 0 {
		baselineYear = DefaultBaselineYear
	}
	c := &Calculator{incomes: make(map[int]decimal.Decimal, len(incomes)), baselineYear: baselineYear}
	for _, inc := range incomes {
		if _, dup := c.incomes[inc.Year]; dup {
			return nil, apperrors.WithMessage(apperrors.ErrDuplicateRecord,
				fmt.Sprintf("more than one median income for %d", inc.Year))
		}
		if !inc.MedianIncome.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("median income for %d must be positive", inc.Year))
		}
		c.incomes[inc.Year] = inc.MedianIncome
	}
	return c, nil
}

// BaselineMonth is January of the baseline year.
func (c *Calculator) BaselineMonth() time.Time {
	return time.Date(c.baselineYear, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// Income returns the median income for year.
func (c *Calculator) Income(year int) (decimal.Decimal, error) {
	inc, ok := c.incomes[year]
	if !ok {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrMissingIncome,
			fmt.Sprintf("no median income for %d", year))
	}
	return inc, nil
}

// Ratio is the annualized basket cost as a share of that year's income.
func (c *Calculator) Ratio(cost BasketCost) (decimal.Decimal, error) {
	inc, err := c.Income(cost.Month.Year())
	if err != nil {
		return decimal.Zero, err
	}
	return cost.TotalCost.Mul(monthsPerYear).Div(inc), nil
}

// Compute derives one Metric per basket cost. The baseline month must be in
// costs; its index is exactly 100. The index is taken from costs and incomes
// with a single division so that no rounded ratio feeds into it.
func (c *Calculator) Compute(costs []BasketCost) ([]Metric, error) {
	baseline := c.BaselineMonth()

	metrics := make([]Metric, 0, len(costs))
	var baseCost, baseIncome decimal.Decimal
	found := false

	for _, cost := range costs {
		ratio, err := c.Ratio(cost)
		if err != nil {
			return nil, err
		}
		inc, _ := c.Income(cost.Month.Year())
		metrics = append(metrics, Metric{
			Month:          cost.Month,
			BasketCost:     cost.TotalCost,
			AnnualizedCost: cost.TotalCost.Mul(monthsPerYear),
			Income:         inc,
			Ratio:          ratio,
		})
		if cost.Month.Equal(baseline) {
			baseCost, baseIncome = cost.TotalCost, inc
			found = true
		}
	}

	if !found {
		return nil, apperrors.WithMessage(apperrors.ErrMissingBaseline,
			fmt.Sprintf("baseline month %s has no basket cost", formatMonth(baseline)))
	}
	if baseCost.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("basket cost in baseline month %s is zero", formatMonth(baseline)))
	}

	for i := range metrics {
		if metrics[i].Month.Equal(baseline) {
			metrics[i].Index = hundred
			continue
		}
		// 100 * (cost_m / income_m) / (cost_base / income_base)
		num := hundred.Mul(metrics[i].BasketCost).Mul(baseIncome)
		metrics[i].Index = num.Div(baseCost.Mul(metrics[i].Income))
	}
	return metrics, nil
}
