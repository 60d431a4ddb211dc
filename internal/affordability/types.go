// Package affordability prices a fixed monthly food basket from item prices,
// relates the yearly cost of that basket to median household income and
// indexes the result against a baseline month.
//
// Everything here works on fully loaded, in-memory tables. Money and
// quantities are decimals; nothing is rounded until it is displayed.
package affordability

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "foodafford/internal/errors"
)

// MonthsPerYear annualizes a monthly basket cost.
const MonthsPerYear = 12

// Unit is the measure a price or basket quantity is expressed in.
type Unit string

const (
	UnitKilogram Unit = "kg"
	UnitLitre    Unit = "L"
)

// ParseUnit accepts the spellings found in CSO and guideline tables.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kg", "kgs", "kilogram", "kilograms":
		return UnitKilogram, nil
	case "l", "litre", "litres", "liter", "liters":
		return UnitLitre, nil
	}
	return "", apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown unit %q (want kg or L)", s))
}

// Valid reports whether u is one of the supported units.
func (u Unit) Valid() bool {
	return u == UnitKilogram || u == UnitLitre
}

// PriceRecord is the average retail price of one item in one month.
type PriceRecord struct {
	Item  string
	Month time.Time
	Price decimal.Decimal
	Unit  Unit
}

// BasketItem is one line of the reference basket.
type BasketItem struct {
	Item            string
	MonthlyQuantity decimal.Decimal
	Unit            Unit
}

// IncomeRecord is the median household income for a calendar year.
type IncomeRecord struct {
	Year         int
	MedianIncome decimal.Decimal
}

// BasketLine is the priced contribution of one basket item.
type BasketLine struct {
	Item     string
	Category Category
	Quantity decimal.Decimal
	Unit     Unit
	Price    decimal.Decimal
	Cost     decimal.Decimal
}

// BasketCost is the priced basket for one month.
// The category subtotals always add up to TotalCost.
type BasketCost struct {
	Month          time.Time
	TotalCost      decimal.Decimal
	CostByCategory map[Category]decimal.Decimal
	Lines          []BasketLine
}

// Metric relates one month's basket cost to income.
type Metric struct {
	Month          time.Time
	BasketCost     decimal.Decimal
	AnnualizedCost decimal.Decimal
	Income         decimal.Decimal
	Ratio          decimal.Decimal
	Index          decimal.Decimal
}

// MonthOf truncates t to the first day of its month in UTC.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// ItemKey folds case and whitespace so "Full Fat  Milk" and "full fat milk" match.
func ItemKey(item string) string {
	return strings.ToLower(strings.Join(strings.Fields(item), " "))
}

func formatMonth(t time.Time) string {
	return t.Format("2006-01")
}
