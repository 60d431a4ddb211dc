package loader

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"foodafford/internal/affordability"
	"foodafford/internal/logger"
	"foodafford/internal/testutil"
)

func init() {
	logger.Init("test")
}

var ctx = context.Background()

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadPrices(t *testing.T) {
	t.Run("valid_with_tags", func(t *testing.T) {
		path := writeFile(t, "prices.csv", strings.Join([]string{
			"Item,Date,Price per kg or litre,Unit,Tag",
			"Rice,2014-01-01,1.50,kg,Healthy",
			"Full Fat Milk,2014-01,1.20,litre,neutral",
			"",
			"Rice,2014M02,\"1,55\",KG,Healthy",
		}, "\n"))

		records, tags, err := LoadPrices(ctx, path)
		testutil.AssertNoError(t, err)

		if len(records) != 3 {
			t.Fatalf("expected 3 records, got %d", len(records))
		}
		if !records[1].Month.Equal(time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected month %s", records[1].Month)
		}
		if records[1].Unit != affordability.UnitLitre {
			t.Errorf("expected L, got %s", records[1].Unit)
		}
		if !records[2].Price.Equal(decimal.RequireFromString("155")) {
			t.Errorf("expected thousands separator stripped, got %s", records[2].Price)
		}
		if tags["Full Fat Milk"] != affordability.Neutral {
			t.Errorf("expected Neutral tag, got %q", tags["Full Fat Milk"])
		}
	})

	t.Run("duplicate_item_month", func(t *testing.T) {
		path := writeFile(t, "prices.csv", "item,month,price,unit\nRice,2014-01-01,1.50,kg\nrice,2014-01-15,1.60,kg\n")

		_, _, err := LoadPrices(ctx, path)
		testutil.AssertAppError(t, err, "DUPLICATE_RECORD")
	})

	t.Run("conflicting_tag_case_variant", func(t *testing.T) {
		path := writeFile(t, "prices.csv", "item,date,price,unit,tag\nRice,2014-01,1.50,kg,Healthy\nrice,2014-02,1.55,kg,Unhealthy\n")

		_, _, err := LoadPrices(ctx, path)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("case_variants_share_one_tag", func(t *testing.T) {
		path := writeFile(t, "prices.csv", "item,date,price,unit,tag\nRice,2014-01,1.50,kg,Healthy\nRICE ,2014-02,1.55,kg,healthy\n")

		_, tags, err := LoadPrices(ctx, path)
		testutil.AssertNoError(t, err)
		if len(tags) != 1 || tags["Rice"] != affordability.Healthy {
			t.Errorf("expected one Healthy tag under the first spelling, got %v", tags)
		}
	})

	t.Run("bad_unit", func(t *testing.T) {
		path := writeFile(t, "prices.csv", "item,date,price,unit\nEggs,2014-01-01,3.10,dozen\n")

		_, _, err := LoadPrices(ctx, path)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unit_changes_between_rows", func(t *testing.T) {
		path := writeFile(t, "prices.csv", "item,date,price,unit\nMilk,2014-01,1.20,L\nmilk,2014-02,1.25,kg\n")

		_, _, err := LoadPrices(ctx, path)
		testutil.AssertAppError(t, err, "UNIT_MISMATCH")
	})

	t.Run("day_first_slash_date", func(t *testing.T) {
		path := writeFile(t, "prices.csv", "item,date,price,unit\nRice,05/01/2015,1.50,kg\nMilk,25/12/2014,1.20,L\n")

		records, _, err := LoadPrices(ctx, path)
		testutil.AssertNoError(t, err)
		if got := records[0].Month.Format("2006-01"); got != "2015-01" {
			t.Errorf("05/01/2015 read as %s, want 2015-01", got)
		}
		if got := records[1].Month.Format("2006-01"); got != "2014-12" {
			t.Errorf("25/12/2014 read as %s, want 2014-12", got)
		}
	})

	t.Run("bad_date", func(t *testing.T) {
		path := writeFile(t, "prices.csv", "item,date,price,unit\nRice,last spring,1.50,kg\n")

		_, _, err := LoadPrices(ctx, path)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_column", func(t *testing.T) {
		path := writeFile(t, "prices.csv", "item,date,price\nRice,2014-01-01,1.50\n")

		_, _, err := LoadPrices(ctx, path)
		testutil.AssertAppError(t, err, "INVALID_INPUT_FILE")
	})

	t.Run("missing_file", func(t *testing.T) {
		_, _, err := LoadPrices(ctx, filepath.Join(t.TempDir(), "nope.csv"))
		testutil.AssertAppError(t, err, "INVALID_INPUT_FILE")
	})

	t.Run("xlsx", func(t *testing.T) {
		f := excelize.NewFile()
		sheet := f.GetSheetName(0)
		rows := [][]interface{}{
			{"Item", "Date", "Price", "Unit"},
			{"Rice", "2014-01-01", "1.5", "kg"},
			{"Milk", "Jan-2014", "1.2", "L"},
		}
		for i, r := range rows {
			cellRef, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(sheet, cellRef, &r); err != nil {
				t.Fatalf("failed to write row: %v", err)
			}
		}
		path := filepath.Join(t.TempDir(), "prices.xlsx")
		if err := f.SaveAs(path); err != nil {
			t.Fatalf("failed to save workbook: %v", err)
		}

		records, _, err := LoadPrices(ctx, path)
		testutil.AssertNoError(t, err)
		if len(records) != 2 || records[1].Item != "Milk" {
			t.Fatalf("unexpected records %+v", records)
		}
	})
}

func TestLoadIncomes(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		path := writeFile(t, "income.csv", "Year,Median Income\n2014,\"€40,000\"\n2015-01-01,41500.50\n")

		records, err := LoadIncomes(ctx, path)
		testutil.AssertNoError(t, err)
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if records[0].Year != 2014 || !records[0].MedianIncome.Equal(decimal.RequireFromString("40000")) {
			t.Errorf("unexpected first record %+v", records[0])
		}
		if records[1].Year != 2015 {
			t.Errorf("expected 2015, got %d", records[1].Year)
		}
	})

	t.Run("duplicate_year", func(t *testing.T) {
		path := writeFile(t, "income.csv", "year,income\n2014,40000\n2014,41000\n")

		_, err := LoadIncomes(ctx, path)
		testutil.AssertAppError(t, err, "DUPLICATE_RECORD")
	})

	t.Run("non_positive_income", func(t *testing.T) {
		path := writeFile(t, "income.csv", "year,income\n2014,0\n")

		_, err := LoadIncomes(ctx, path)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestLoadBasketAndCategories(t *testing.T) {
	basketPath := writeFile(t, "basket.csv", "item,monthly_quantity,unit\nRice,2,kg\nMilk,4,L\n")
	catPath := writeFile(t, "categories.csv", "item,category\nRice,Healthy\nMilk,Neutral\n")

	basket, err := LoadBasket(ctx, basketPath)
	testutil.AssertNoError(t, err)
	if len(basket) != 2 || !basket[1].MonthlyQuantity.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("unexpected basket %+v", basket)
	}

	tags, err := LoadCategories(ctx, catPath)
	testutil.AssertNoError(t, err)
	if tags["Milk"] != affordability.Neutral {
		t.Errorf("expected Milk Neutral, got %q", tags["Milk"])
	}

	t.Run("unknown_category", func(t *testing.T) {
		path := writeFile(t, "categories.csv", "item,category\nRice,Tasty\n")
		_, err := LoadCategories(ctx, path)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestLoadCancellation(t *testing.T) {
	prices := writeFile(t, "prices.csv", "item,date,price,unit\nRice,2014-01-01,1.50,kg\nRice,2014-02-01,1.52,kg\n")
	income := writeFile(t, "income.csv", "year,median_income\n2014,40000\n")

	t.Run("cancelled_before_start", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := Load(cancelled, Sources{PricesFile: prices, IncomeFile: income})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("rows_stop_after_cancel", func(t *testing.T) {
		live, cancel := context.WithCancel(ctx)
		tbl, err := readTable(live, prices)
		testutil.AssertNoError(t, err)
		cancel()

		visited := 0
		err = tbl.each(func(int, []string) error {
			visited++
			return nil
		})
		if !errors.Is(err, context.Canceled) || visited != 0 {
			t.Errorf("expected no rows after cancel, visited %d, err %v", visited, err)
		}
	})

	t.Run("first_failure_returned", func(t *testing.T) {
		_, err := Load(ctx, Sources{PricesFile: prices, IncomeFile: filepath.Join(t.TempDir(), "missing.csv")})
		testutil.AssertAppError(t, err, "INVALID_INPUT_FILE")
	})
}

func TestLoadAndRun(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
		return path
	}

	src := Sources{
		PricesFile:     write("prices.csv", "item,date,price,unit\nRice,2014-01-01,1.50,kg\nMilk,2014-01-01,1.20,L\n"),
		IncomeFile:     write("income.csv", "year,median_income\n2014,40000\n"),
		BasketFile:     write("basket.csv", "item,quantity,unit\nRice,2,kg\nMilk,4,L\n"),
		CategoriesFile: write("categories.csv", "item,tag\nRice,Healthy\nMilk,Neutral\n"),
		BaselineYear:   2014,
	}

	in, err := Load(ctx, src)
	testutil.AssertNoError(t, err)

	res, err := affordability.Run(*in)
	testutil.AssertNoError(t, err)

	if !res.Costs[0].TotalCost.Equal(decimal.RequireFromString("7.80")) {
		t.Errorf("expected 7.80, got %s", res.Costs[0].TotalCost)
	}

	var buf bytes.Buffer
	testutil.AssertNoError(t, WriteMetricsCSV(&buf, res.Metrics))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and 1 row, got %d lines", len(lines))
	}
	if lines[0] != strings.Join(MetricsHeader, ",") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != "2014-01-01,7.8,93.6,40000,0.00234,100" {
		t.Errorf("unexpected row %q", lines[1])
	}

	out := filepath.Join(dir, "out.csv")
	testutil.AssertNoError(t, ExportMetrics(out, res.Metrics))
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected export file: %v", err)
	}
}
