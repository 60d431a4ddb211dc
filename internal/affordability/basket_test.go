package affordability

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"foodafford/internal/testutil"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func riceAndMilk() ([]BasketItem, *Tagger) {
	basket := []BasketItem{
		{Item: "Rice", MonthlyQuantity: d("2"), Unit: UnitKilogram},
		{Item: "Milk", MonthlyQuantity: d("4"), Unit: UnitLitre},
	}
	tagger := NewTagger(map[string]Category{"Rice": Healthy, "Milk": Neutral})
	return basket, tagger
}

func TestBasketCost(t *testing.T) {
	t.Run("rice_and_milk", func(t *testing.T) {
		basket, tagger := riceAndMilk()
		calc, err := NewBasketCalculator(basket, tagger)
		testutil.AssertNoError(t, err)

		prices, err := NewPriceTable([]PriceRecord{
			{Item: "Rice", Month: month(2014, 1), Price: d("1.50"), Unit: UnitKilogram},
			{Item: "Milk", Month: month(2014, 1), Price: d("1.20"), Unit: UnitLitre},
		})
		testutil.AssertNoError(t, err)

		cost, err := calc.Cost(prices, month(2014, 1))
		testutil.AssertNoError(t, err)

		if !cost.TotalCost.Equal(d("7.80")) {
			t.Errorf("expected total 7.80, got %s", cost.TotalCost)
		}
		if !cost.CostByCategory[Healthy].Equal(d("3.00")) {
			t.Errorf("expected healthy 3.00, got %s", cost.CostByCategory[Healthy])
		}
		if !cost.CostByCategory[Neutral].Equal(d("4.80")) {
			t.Errorf("expected neutral 4.80, got %s", cost.CostByCategory[Neutral])
		}
		if !cost.CostByCategory[Unhealthy].IsZero() {
			t.Errorf("expected unhealthy 0, got %s", cost.CostByCategory[Unhealthy])
		}
		if len(cost.Lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(cost.Lines))
		}
	})

	t.Run("item_names_match_loosely", func(t *testing.T) {
		basket, tagger := riceAndMilk()
		calc, _ := NewBasketCalculator(basket, tagger)
		prices, _ := NewPriceTable([]PriceRecord{
			{Item: "  RICE ", Month: month(2014, 1), Price: d("1.50"), Unit: UnitKilogram},
			{Item: "milk", Month: month(2014, 1), Price: d("1.20"), Unit: UnitLitre},
		})

		_, err := calc.Cost(prices, month(2014, 1))
		testutil.AssertNoError(t, err)
	})

	t.Run("missing_price", func(t *testing.T) {
		basket, tagger := riceAndMilk()
		calc, _ := NewBasketCalculator(basket, tagger)
		prices, _ := NewPriceTable([]PriceRecord{
			{Item: "Rice", Month: month(2014, 1), Price: d("1.50"), Unit: UnitKilogram},
		})

		_, err := calc.Cost(prices, month(2014, 1))
		testutil.AssertAppError(t, err, "MISSING_PRICE")
	})

	t.Run("unit_mismatch", func(t *testing.T) {
		basket, tagger := riceAndMilk()
		calc, _ := NewBasketCalculator(basket, tagger)
		prices, _ := NewPriceTable([]PriceRecord{
			{Item: "Rice", Month: month(2014, 1), Price: d("1.50"), Unit: UnitKilogram},
			{Item: "Milk", Month: month(2014, 1), Price: d("1.20"), Unit: UnitKilogram},
		})

		_, err := calc.Cost(prices, month(2014, 1))
		testutil.AssertAppError(t, err, "UNIT_MISMATCH")

		err = calc.CheckUnits(prices)
		testutil.AssertAppError(t, err, "UNIT_MISMATCH")
	})
}

func TestNewBasketCalculator(t *testing.T) {
	t.Run("uncategorized_item", func(t *testing.T) {
		basket, _ := riceAndMilk()
		_, err := NewBasketCalculator(basket, NewTagger(map[string]Category{"Rice": Healthy}))
		testutil.AssertAppError(t, err, "UNCATEGORIZED_ITEM")
	})

	t.Run("empty_basket", func(t *testing.T) {
		_, err := NewBasketCalculator(nil, NewTagger(nil))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("non_positive_quantity", func(t *testing.T) {
		_, tagger := riceAndMilk()
		_, err := NewBasketCalculator([]BasketItem{{Item: "Rice", MonthlyQuantity: d("0"), Unit: UnitKilogram}}, tagger)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_item", func(t *testing.T) {
		_, tagger := riceAndMilk()
		_, err := NewBasketCalculator([]BasketItem{
			{Item: "Rice", MonthlyQuantity: d("1"), Unit: UnitKilogram},
			{Item: "rice", MonthlyQuantity: d("2"), Unit: UnitKilogram},
		}, tagger)
		testutil.AssertAppError(t, err, "DUPLICATE_RECORD")
	})

	t.Run("default_basket_is_fully_tagged", func(t *testing.T) {
		_, err := NewBasketCalculator(DefaultBasket(), NewTagger(DefaultCategories()))
		testutil.AssertNoError(t, err)
	})
}

func TestCostSeries(t *testing.T) {
	basket, tagger := riceAndMilk()
	calc, _ := NewBasketCalculator(basket, tagger)

	var records []PriceRecord
	for m := time.January; m <= time.June; m++ {
		step := decimal.NewFromInt(int64(m)).Div(d("10"))
		records = append(records,
			PriceRecord{Item: "Rice", Month: month(2015, m), Price: d("1.50").Add(step), Unit: UnitKilogram},
			PriceRecord{Item: "Milk", Month: month(2015, m), Price: d("1.20").Add(step), Unit: UnitLitre},
		)
	}
	prices, err := NewPriceTable(records)
	testutil.AssertNoError(t, err)

	costs, err := calc.CostSeries(prices)
	testutil.AssertNoError(t, err)

	if len(costs) != 6 {
		t.Fatalf("expected 6 months, got %d", len(costs))
	}
	for i, c := range costs {
		if i > 0 && !c.Month.After(costs[i-1].Month) {
			t.Errorf("months out of order at %d", i)
		}
		sum := decimal.Zero
		for _, v := range c.CostByCategory {
			sum = sum.Add(v)
		}
		if !sum.Equal(c.TotalCost) {
			t.Errorf("%s: categories sum to %s, total is %s", c.Month.Format("2006-01"), sum, c.TotalCost)
		}
	}

	t.Run("halts_on_gap", func(t *testing.T) {
		gappy := append(records, PriceRecord{Item: "Rice", Month: month(2015, 7), Price: d("2"), Unit: UnitKilogram})
		prices, err := NewPriceTable(gappy)
		testutil.AssertNoError(t, err)

		_, err = calc.CostSeries(prices)
		testutil.AssertAppError(t, err, "MISSING_PRICE")
	})
}

func TestNewPriceTable(t *testing.T) {
	t.Run("duplicate_item_month", func(t *testing.T) {
		_, err := NewPriceTable([]PriceRecord{
			{Item: "Rice", Month: month(2014, 1), Price: d("1.50"), Unit: UnitKilogram},
			{Item: "Rice", Month: time.Date(2014, 1, 15, 0, 0, 0, 0, time.UTC), Price: d("1.60"), Unit: UnitKilogram},
		})
		testutil.AssertAppError(t, err, "DUPLICATE_RECORD")
	})

	t.Run("months_sorted", func(t *testing.T) {
		prices, err := NewPriceTable([]PriceRecord{
			{Item: "Rice", Month: month(2014, 3), Price: d("1"), Unit: UnitKilogram},
			{Item: "Rice", Month: month(2014, 1), Price: d("1"), Unit: UnitKilogram},
			{Item: "Milk", Month: month(2014, 1), Price: d("1"), Unit: UnitLitre},
		})
		testutil.AssertNoError(t, err)

		months := prices.Months()
		if len(months) != 2 || !months[0].Equal(month(2014, 1)) || !months[1].Equal(month(2014, 3)) {
			t.Errorf("unexpected months %v", months)
		}
		if prices.Len() != 3 {
			t.Errorf("expected 3 records, got %d", prices.Len())
		}
	})
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in   string
		want Unit
		ok   bool
	}{
		{"kg", UnitKilogram, true},
		{"KG", UnitKilogram, true},
		{"l", UnitLitre, true},
		{"Litre", UnitLitre, true},
		{"liter", UnitLitre, true},
		{"each", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUnit(tt.in)
			if !tt.ok {
				testutil.AssertAppError(t, err, "INVALID_INPUT")
				return
			}
			testutil.AssertNoError(t, err)
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
