package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"foodafford/internal/loader"
	"foodafford/internal/logger"
	"foodafford/internal/models"
	"foodafford/internal/testutil"
)

func init() {
	logger.Init("test")
}

func sourcesFor(files testutil.DataFiles) loader.Sources {
	return loader.Sources{
		PricesFile:     files.Prices,
		IncomeFile:     files.Income,
		BasketFile:     files.Basket,
		CategoriesFile: files.Categories,
		BaselineYear:   2014,
	}
}

// loadFixture reloads the standard fixture dataset into db.
func loadFixture(t *testing.T, db *gorm.DB) testutil.DataFiles {
	t.Helper()
	files := testutil.WriteDataFiles(t)
	_, err := NewDatasetService(db, sourcesFor(files)).Reload(context.Background())
	testutil.AssertNoError(t, err)
	return files
}

func TestReload(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		files := testutil.WriteDataFiles(t)
		svc := NewDatasetService(db, sourcesFor(files))

		load, err := svc.Reload(context.Background())
		testutil.AssertNoError(t, err)

		if load.Status != models.LoadStatusSucceeded {
			t.Errorf("expected succeeded, got %s", load.Status)
		}
		if load.PriceCount != 4*testutil.FixtureMonths {
			t.Errorf("expected %d prices, got %d", 4*testutil.FixtureMonths, load.PriceCount)
		}
		if load.MonthCount != testutil.FixtureMonths || load.BasketCount != 2 || load.IncomeCount != 2 {
			t.Errorf("unexpected counts %+v", load)
		}

		var costs []models.BasketCost
		if err := db.Order("month ASC").Find(&costs).Error; err != nil {
			t.Fatalf("failed to read costs: %v", err)
		}
		if len(costs) != testutil.FixtureMonths {
			t.Fatalf("expected %d costs, got %d", testutil.FixtureMonths, len(costs))
		}
		testutil.AssertDecimal(t, "first total", costs[0].TotalCost, "7.80")
		for _, c := range costs {
			sum := c.HealthyCost.Add(c.NeutralCost).Add(c.UnhealthyCost)
			if !sum.Equal(c.TotalCost) {
				t.Errorf("%s: categories sum to %s, total %s", c.Month.Format("2006-01"), sum, c.TotalCost)
			}
		}

		var lines int64
		db.Model(&models.BasketLine{}).Count(&lines)
		if lines != 2*testutil.FixtureMonths {
			t.Errorf("expected %d basket lines, got %d", 2*testutil.FixtureMonths, lines)
		}
	})

	t.Run("replaces_previous_snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		files := testutil.WriteDataFiles(t)
		svc := NewDatasetService(db, sourcesFor(files))

		_, err := svc.Reload(context.Background())
		testutil.AssertNoError(t, err)
		second, err := svc.Reload(context.Background())
		testutil.AssertNoError(t, err)

		var prices int64
		db.Model(&models.PriceRecord{}).Count(&prices)
		if prices != int64(4*testutil.FixtureMonths) {
			t.Errorf("expected one snapshot of prices, got %d rows", prices)
		}

		var stale int64
		db.Model(&models.AffordabilityMetric{}).Where("load_id <> ?", second.ID).Count(&stale)
		if stale != 0 {
			t.Errorf("expected no rows from the first load, got %d", stale)
		}
	})

	t.Run("missing_price_keeps_previous_snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		files := loadFixture(t, db)

		testutil.WriteFile(t, files.Dir, "food_prices.csv",
			"Item,Date,Price,Unit\nRice,2014-01-01,1.50,kg\n")
		_, err := NewDatasetService(db, sourcesFor(files)).Reload(context.Background())
		testutil.AssertAppError(t, err, "MISSING_PRICE")

		var failed models.DatasetLoad
		if err := db.Where("status = ?", models.LoadStatusFailed).First(&failed).Error; err != nil {
			t.Fatalf("expected a failed load record: %v", err)
		}
		if failed.ErrorCode != "MISSING_PRICE" {
			t.Errorf("expected MISSING_PRICE, got %s", failed.ErrorCode)
		}

		var costs int64
		db.Model(&models.BasketCost{}).Count(&costs)
		if costs != testutil.FixtureMonths {
			t.Errorf("expected previous snapshot to survive, got %d costs", costs)
		}
	})

	t.Run("missing_income", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		files := testutil.WriteDataFiles(t)
		testutil.WriteFile(t, files.Dir, "median_income.csv", "Year,Median_Income\n2014,40000\n")

		_, err := NewDatasetService(db, sourcesFor(files)).Reload(context.Background())
		testutil.AssertAppError(t, err, "MISSING_INCOME")
	})

	t.Run("missing_baseline", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		src := sourcesFor(testutil.WriteDataFiles(t))
		src.BaselineYear = 2013

		_, err := NewDatasetService(db, src).Reload(context.Background())
		testutil.AssertAppError(t, err, "MISSING_BASELINE")
	})

	t.Run("unit_mismatch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		files := testutil.WriteDataFiles(t)
		testutil.WriteFile(t, files.Dir, "basket.csv", "Item,Monthly_Quantity,Unit\nRice,2,kg\nMilk,4,kg\n")

		_, err := NewDatasetService(db, sourcesFor(files)).Reload(context.Background())
		testutil.AssertAppError(t, err, "UNIT_MISMATCH")
	})
}

func TestOverview(t *testing.T) {
	t.Run("not_loaded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		_, err := NewDatasetService(db, loader.Sources{}).Overview(context.Background())
		testutil.AssertAppError(t, err, "DATASET_NOT_LOADED")
	})

	t.Run("only_failed_loads", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestLoad(t, db, models.LoadStatusFailed)

		_, err := NewDatasetService(db, loader.Sources{}).Overview(context.Background())
		testutil.AssertAppError(t, err, "MISSING_PRICE")
	})

	t.Run("loaded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		files := loadFixture(t, db)

		ov, err := NewDatasetService(db, sourcesFor(files)).Overview(context.Background())
		testutil.AssertNoError(t, err)

		if ov.Items != 4 {
			t.Errorf("expected 4 items, got %d", ov.Items)
		}
		if ov.BaselineMonth.Year() != 2014 {
			t.Errorf("unexpected baseline %s", ov.BaselineMonth)
		}
		if ov.Latest == nil || ov.Latest.Month.Format("2006-01") != "2015-12" {
			t.Fatalf("unexpected latest %+v", ov.Latest)
		}
		if ov.CostChangePct == nil || !ov.CostChangePct.IsPositive() {
			t.Errorf("expected a positive cost change, got %v", ov.CostChangePct)
		}
		if ov.LastAttempt != nil {
			t.Error("expected no separate last attempt")
		}
	})
}
