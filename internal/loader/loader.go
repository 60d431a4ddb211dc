package loader

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"foodafford/internal/affordability"
	apperrors "foodafford/internal/errors"
	"foodafford/internal/logger"
)

// Sources names the input files of one run. Empty BasketFile or
// CategoriesFile fall back to the built-in tables.
type Sources struct {
	PricesFile     string
	IncomeFile     string
	BasketFile     string
	CategoriesFile string
	BaselineYear   int
}

// Load reads every table named by src. The files are read concurrently;
// the first failure cancels the other reads and is returned.
func Load(ctx context.Context, src Sources) (*affordability.Inputs, error) {
	log := logger.Named("loader")

	var (
		prices    []affordability.PriceRecord
		priceTags map[string]affordability.Category
		incomes   []affordability.IncomeRecord
		fileTags  map[string]affordability.Category
	)
	basket := affordability.DefaultBasket()
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		prices, priceTags, err = LoadPrices(gctx, src.PricesFile)
		return err
	})
	eg.Go(func() (err error) {
		incomes, err = LoadIncomes(gctx, src.IncomeFile)
		return err
	})
	if src.BasketFile != "" {
		eg.Go(func() (err error) {
			basket, err = LoadBasket(gctx, src.BasketFile)
			return err
		})
	}
	if src.CategoriesFile != "" {
		eg.Go(func() (err error) {
			fileTags, err = LoadCategories(gctx, src.CategoriesFile)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// Built-in tags first, then the price file's Tag column, then the
	// categories file, so the most specific source wins.
	tagger := affordability.NewTagger(affordability.DefaultCategories())
	tagger.Merge(priceTags)
	tagger.Merge(fileTags)

	log.Infow("Input tables loaded",
		"prices", len(prices),
		"incomes", len(incomes),
		"basket_items", len(basket),
		"tagged_items", tagger.Len(),
	)

	return &affordability.Inputs{
		Prices:       prices,
		Incomes:      incomes,
		Basket:       basket,
		Tagger:       tagger,
		BaselineYear: src.BaselineYear,
	}, nil
}

// itemTag is the first spelling of an item with its tag.
type itemTag struct {
	name     string
	category affordability.Category
}

// LoadPrices reads item prices. When the file has a tag or category column
// the item tags are returned as well.
func LoadPrices(ctx context.Context, path string) ([]affordability.PriceRecord, map[string]affordability.Category, error) {
	t, err := readTable(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	itemCol, err := t.require("item", "item_name")
	if err != nil {
		return nil, nil, err
	}
	dateCol, err := t.require("date", "month")
	if err != nil {
		return nil, nil, err
	}
	priceCol, err := t.require("price_per_kg_or_litre", "price", "unit_price", "value")
	if err != nil {
		return nil, nil, err
	}
	unitCol, err := t.require("unit")
	if err != nil {
		return nil, nil, err
	}
	tagCol, hasTag := t.column("tag", "category")

	var records []affordability.PriceRecord
	tags := make(map[string]itemTag)
	units := make(map[string]affordability.Unit)
	seen := make(map[string]int)

	err = t.each(func(line int, row []string) error {
		item := cell(row, itemCol)
		if item == "" {
			return t.rowError(line, "item", "empty item name")
		}
		month, err := parseMonth(cell(row, dateCol))
		if err != nil {
			return t.rowError(line, "date", err.Error())
		}
		price, err := parseAmount(cell(row, priceCol))
		if err != nil {
			return t.rowError(line, "price", err.Error())
		}
		if !price.IsPositive() {
			return t.rowError(line, "price", "price must be positive")
		}
		unit, err := affordability.ParseUnit(cell(row, unitCol))
		if err != nil {
			return t.rowError(line, "unit", err.Error())
		}

		itemKey := affordability.ItemKey(item)
		if prev, ok := units[itemKey]; ok && prev != unit {
			return apperrors.WithMessage(apperrors.ErrUnitMismatch,
				fmt.Sprintf("%s:%d: %q priced per %s, earlier rows use %s", path, line, item, unit, prev))
		}
		units[itemKey] = unit

		key := itemKey + "|" + month.Format("2006-01")
		if first, dup := seen[key]; dup {
			return apperrors.WithMessage(apperrors.ErrDuplicateRecord,
				fmt.Sprintf("%s:%d: %q in %s already priced on line %d", path, line, item, month.Format("2006-01"), first))
		}
		seen[key] = line

		if hasTag && cell(row, tagCol) != "" {
			c, err := affordability.ParseCategory(cell(row, tagCol))
			if err != nil {
				return t.rowError(line, "tag", err.Error())
			}
			prev, tagged := tags[itemKey]
			if tagged && prev.category != c {
				return t.rowError(line, "tag", fmt.Sprintf("%q tagged both %s (as %q) and %s", item, prev.category, prev.name, c))
			}
			if !tagged {
				tags[itemKey] = itemTag{name: item, category: c}
			}
		}

		records = append(records, affordability.PriceRecord{Item: item, Month: month, Price: price, Unit: unit})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	byName := make(map[string]affordability.Category, len(tags))
	for _, tag := range tags {
		byName[tag.name] = tag.category
	}
	return records, byName, nil
}

// LoadIncomes reads the annual median household income table.
func LoadIncomes(ctx context.Context, path string) ([]affordability.IncomeRecord, error) {
	t, err := readTable(ctx, path)
	if err != nil {
		return nil, err
	}
	yearCol, err := t.require("year")
	if err != nil {
		return nil, err
	}
	incomeCol, err := t.require("median_income", "median_household_income", "income", "value")
	if err != nil {
		return nil, err
	}

	var records []affordability.IncomeRecord
	seen := make(map[int]int)
	err = t.each(func(line int, row []string) error {
		year, err := parseYear(cell(row, yearCol))
		if err != nil {
			return t.rowError(line, "year", err.Error())
		}
		income, err := parseAmount(cell(row, incomeCol))
		if err != nil {
			return t.rowError(line, "median_income", err.Error())
		}
		if !income.IsPositive() {
			return t.rowError(line, "median_income", "income must be positive")
		}
		if first, dup := seen[year]; dup {
			return apperrors.WithMessage(apperrors.ErrDuplicateRecord,
				fmt.Sprintf("%s:%d: income for %d already given on line %d", path, line, year, first))
		}
		seen[year] = line
		records = append(records, affordability.IncomeRecord{Year: year, MedianIncome: income})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// LoadBasket reads a basket definition.
func LoadBasket(ctx context.Context, path string) ([]affordability.BasketItem, error) {
	t, err := readTable(ctx, path)
	if err != nil {
		return nil, err
	}
	itemCol, err := t.require("item")
	if err != nil {
		return nil, err
	}
	qtyCol, err := t.require("monthly_quantity", "quantity")
	if err != nil {
		return nil, err
	}
	unitCol, err := t.require("unit")
	if err != nil {
		return nil, err
	}

	var items []affordability.BasketItem
	err = t.each(func(line int, row []string) error {
		item := cell(row, itemCol)
		if item == "" {
			return t.rowError(line, "item", "empty item name")
		}
		qty, err := parseAmount(cell(row, qtyCol))
		if err != nil {
			return t.rowError(line, "monthly_quantity", err.Error())
		}
		unit, err := affordability.ParseUnit(cell(row, unitCol))
		if err != nil {
			return t.rowError(line, "unit", err.Error())
		}
		items = append(items, affordability.BasketItem{Item: item, MonthlyQuantity: qty, Unit: unit})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// LoadCategories reads an item to category table.
func LoadCategories(ctx context.Context, path string) (map[string]affordability.Category, error) {
	t, err := readTable(ctx, path)
	if err != nil {
		return nil, err
	}
	itemCol, err := t.require("item")
	if err != nil {
		return nil, err
	}
	catCol, err := t.require("category", "tag")
	if err != nil {
		return nil, err
	}

	tags := make(map[string]affordability.Category)
	seen := make(map[string]int)
	err = t.each(func(line int, row []string) error {
		item := cell(row, itemCol)
		if item == "" {
			return t.rowError(line, "item", "empty item name")
		}
		c, err := affordability.ParseCategory(cell(row, catCol))
		if err != nil {
			return t.rowError(line, "category", err.Error())
		}
		key := affordability.ItemKey(item)
		if first, dup := seen[key]; dup {
			return apperrors.WithMessage(apperrors.ErrDuplicateRecord,
				fmt.Sprintf("%s:%d: %q already tagged on line %d", path, line, item, first))
		}
		seen[key] = line
		tags[item] = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// parseAmount strips currency symbols and thousands separators.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("€", "", ",", "", " ", "").Replace(s)
	if clean == "" {
		return decimal.Zero, fmt.Errorf("empty value")
	}
	v, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

// parseYear accepts a bare year or any date parseMonth understands.
func parseYear(s string) (int, error) {
	if y, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return y, nil
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && f == float64(int(f)) {
		return int(f), nil
	}
	m, err := parseMonth(s)
	if err != nil {
		return 0, fmt.Errorf("unrecognized year %q", s)
	}
	return m.Year(), nil
}
