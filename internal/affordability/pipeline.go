package affordability

// Inputs are the loaded tables a run works from.
type Inputs struct {
	Prices       []PriceRecord
	Incomes      []IncomeRecord
	Basket       []BasketItem
	Tagger       *Tagger
	BaselineYear int
}

// Result is everything derived from one set of inputs.
type Result struct {
	Prices  *PriceTable
	Basket  *BasketCalculator
	Costs   []BasketCost
	Metrics []Metric
	Annual  []AnnualMetric
	YoY     []YoYPoint
}

// Run prices the basket for every month, then derives ratios, the index and
// the annual view. The first data-quality error stops the run.
func Run(in Inputs) (*Result, error) {
	prices, err := NewPriceTable(in.Prices)
	if err != nil {
		return nil, err
	}
	basket, err := NewBasketCalculator(in.Basket, in.Tagger)
	if err != nil {
		return nil, err
	}
	if err := basket.CheckUnits(prices); err != nil {
		return nil, err
	}
	costs, err := basket.CostSeries(prices)
	if err != nil {
		return nil, err
	}

	calc, err := NewCalculator(in.Incomes, in.BaselineYear)
	if err != nil {
		return nil, err
	}
	metrics, err := calc.Compute(costs)
	if err != nil {
		return nil, err
	}

	return &Result{
		Prices:  prices,
		Basket:  basket,
		Costs:   costs,
		Metrics: metrics,
		Annual:  Annualize(metrics),
		YoY:     MonthlyYoY(costs),
	}, nil
}
