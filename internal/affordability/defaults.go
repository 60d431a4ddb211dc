package affordability

import "github.com/shopspring/decimal"

// Monthly household quantities following the SafeFood / HSE food pyramid
// servings, converted to the kg or litre units the CSO average prices use.
var defaultBasket = []struct {
	item string
	qty  string
	unit Unit
}{
	{"Wholemeal bread", "4", UnitKilogram},
	{"Rice", "2", UnitKilogram},
	{"Spaghetti", "2", UnitKilogram},
	{"Potatoes", "10", UnitKilogram},
	{"Carrots", "3", UnitKilogram},
	{"Onions", "2", UnitKilogram},
	{"Tomatoes", "2", UnitKilogram},
	{"Apples", "4", UnitKilogram},
	{"Bananas", "4", UnitKilogram},
	{"Low fat milk", "12", UnitLitre},
	{"Natural yoghurt", "2", UnitKilogram},
	{"Chicken fillets", "3", UnitKilogram},
	{"Lean minced beef", "2", UnitKilogram},
	{"Fresh salmon fillets", "1", UnitKilogram},
	{"Cheddar cheese", "1", UnitKilogram},
	{"Butter", "0.5", UnitKilogram},
	{"White sugar", "1", UnitKilogram},
	{"Streaky rashers", "1", UnitKilogram},
}

// DefaultBasket returns the built-in reference basket.
func DefaultBasket() []BasketItem {
	out := make([]BasketItem, len(defaultBasket))
	for i, b := range defaultBasket {
		out[i] = BasketItem{Item: b.item, MonthlyQuantity: decimal.RequireFromString(b.qty), Unit: b.unit}
	}
	return out
}

// DefaultCategories returns the built-in item tags. It covers every item in
// DefaultBasket and the other CSO average price series.
func DefaultCategories() map[string]Category {
	return map[string]Category{
		"Wholemeal bread":      Healthy,
		"Rice":                 Healthy,
		"Spaghetti":            Healthy,
		"Potatoes":             Healthy,
		"Carrots":              Healthy,
		"Onions":               Healthy,
		"Tomatoes":             Healthy,
		"Apples":               Healthy,
		"Bananas":              Healthy,
		"Oranges":              Healthy,
		"Low fat milk":         Healthy,
		"Natural yoghurt":      Healthy,
		"Chicken fillets":      Healthy,
		"Lean minced beef":     Healthy,
		"Fresh salmon fillets": Healthy,
		"Smoked salmon":        Healthy,
		"Full fat milk":        Neutral,
		"White bread":          Neutral,
		"Cheddar cheese":       Neutral,
		"Butter":               Neutral,
		"Plain flour":          Neutral,
		"White sugar":          Unhealthy,
		"Streaky rashers":      Unhealthy,
		"Pork sausages":        Unhealthy,
		"Frozen chips":         Unhealthy,
		"Milk chocolate":       Unhealthy,
	}
}
