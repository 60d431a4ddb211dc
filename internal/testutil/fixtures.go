package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"foodafford/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// DataFiles are the paths of a written input fixture set.
type DataFiles struct {
	Dir        string
	Prices     string
	Income     string
	Basket     string
	Categories string
}

// FixtureMonths is how many months of prices WriteDataFiles writes,
// starting January 2014.
const FixtureMonths = 24

// WriteDataFiles writes a small, consistent dataset: a rice and milk basket
// priced for 2014 and 2015, two items outside the basket, and incomes for
// both years. January 2014 prices the basket at exactly 7.80.
func WriteDataFiles(t *testing.T) DataFiles {
	t.Helper()
	dir := t.TempDir()

	var prices strings.Builder
	prices.WriteString("Item,Date,Price_per_kg_or_litre,Unit,Tag\n")
	start := time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < FixtureMonths; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01-02")
		fmt.Fprintf(&prices, "Rice,%s,%.2f,kg,Healthy\n", month, 1.50+0.01*float64(i))
		fmt.Fprintf(&prices, "Milk,%s,%.2f,L,Neutral\n", month, 1.20+0.02*float64(i))
		fmt.Fprintf(&prices, "Smoked salmon,%s,%.2f,kg,Healthy\n", month, 20.0+float64(i%3))
		fmt.Fprintf(&prices, "White sugar,%s,1.10,kg,Unhealthy\n", month)
	}

	return DataFiles{
		Dir:        dir,
		Prices:     WriteFile(t, dir, "food_prices.csv", prices.String()),
		Income:     WriteFile(t, dir, "median_income.csv", "Year,Median_Income\n2014,40000\n2015,42000\n"),
		Basket:     WriteFile(t, dir, "basket.csv", "Item,Monthly_Quantity,Unit\nRice,2,kg\nMilk,4,L\n"),
		Categories: WriteFile(t, dir, "categories.csv", "Item,Category\nRice,Healthy\nMilk,Neutral\n"),
	}
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// CreateTestLoad records a dataset load with the given status.
func CreateTestLoad(t *testing.T, db *gorm.DB, status models.LoadStatus) *models.DatasetLoad {
	t.Helper()

	now := time.Now().UTC()
	load := &models.DatasetLoad{
		Status:       status,
		BaselineYear: 2014,
		StartedAt:    now,
		FinishedAt:   now,
	}
	if status == models.LoadStatusFailed {
		load.ErrorCode = "MISSING_PRICE"
		load.ErrorMessage = fmt.Sprintf("no price for item %d", nextID())
	}
	if err := db.Create(load).Error; err != nil {
		t.Fatalf("failed to create test load: %v", err)
	}
	return load
}
