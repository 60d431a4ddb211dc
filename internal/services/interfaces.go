package services

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"foodafford/internal/affordability"
	"foodafford/internal/models"
	"foodafford/internal/pagination"
)

// Overview summarizes the current snapshot for the dashboard landing page.
type Overview struct {
	Load          *models.DatasetLoad `json:"load"`
	LastAttempt   *models.DatasetLoad `json:"last_attempt,omitempty"`
	BaselineMonth time.Time           `json:"baseline_month"`
	Items         int64               `json:"items"`
	Latest        *LatestMetric       `json:"latest,omitempty"`
	CostChangePct *decimal.Decimal    `json:"cost_change_pct,omitempty"`
}

// LatestMetric is the most recent month of the snapshot.
type LatestMetric struct {
	Month      time.Time       `json:"month"`
	BasketCost decimal.Decimal `json:"basket_cost"`
	Ratio      decimal.Decimal `json:"ratio"`
	Index      decimal.Decimal `json:"index"`
}

// DatasetServicer loads the input files into the snapshot store.
type DatasetServicer interface {
	Reload(ctx context.Context) (*models.DatasetLoad, error)
	Overview(ctx context.Context) (*Overview, error)
}

// AffordabilityServicer serves the derived affordability series.
type AffordabilityServicer interface {
	GetMonthlyMetrics(ctx context.Context) ([]models.AffordabilityMetric, error)
	GetAnnualMetrics(ctx context.Context) ([]affordability.AnnualMetric, error)
	GetCostSeries(ctx context.Context) ([]models.BasketCost, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

// BasketView is the basket definition priced in its latest month.
type BasketView struct {
	Month          time.Time                                  `json:"month"`
	Items          []models.BasketItem                        `json:"items"`
	Lines          []models.BasketLine                        `json:"lines"`
	TotalCost      decimal.Decimal                            `json:"total_cost"`
	CostByCategory map[affordability.Category]decimal.Decimal `json:"cost_by_category"`
}

// BasketServicer serves the basket definition and incomes of the snapshot.
type BasketServicer interface {
	GetBasket(ctx context.Context) (*BasketView, error)
	ListIncomes(ctx context.Context) ([]models.IncomeRecord, error)
}

// ItemFilter holds optional filters for listing items.
type ItemFilter struct {
	Category *affordability.Category
	Unit     *affordability.Unit
}

// ItemSummary is one priced item.
type ItemSummary struct {
	Item         string `json:"item"`
	Unit         string `json:"unit"`
	Category     string `json:"category,omitempty"`
	Observations int64  `json:"observations"`
}

// ItemStatsView carries per-item statistics and their rankings.
type ItemStatsView struct {
	Items    []affordability.ItemStat   `json:"items"`
	Rankings affordability.ItemRankings `json:"rankings"`
}

// PriceServicer serves item price histories.
type PriceServicer interface {
	ListItems(ctx context.Context, filter ItemFilter) ([]ItemSummary, error)
	GetItemPrices(ctx context.Context, item string, page pagination.PageRequest) (*pagination.PageResponse[models.PriceRecord], error)
	GetItemStats(ctx context.Context, limit int) (*ItemStatsView, error)
}

// CategoryTrends carries monthly category statistics and their YoY change.
type CategoryTrends struct {
	Statistic affordability.PriceStatistic     `json:"statistic"`
	Monthly   []affordability.CategoryPoint    `json:"monthly"`
	YoY       []affordability.CategoryYoYPoint `json:"yoy"`
}

// CategoryServicer serves price trends by food category.
type CategoryServicer interface {
	GetTrends(ctx context.Context, stat affordability.PriceStatistic) (*CategoryTrends, error)
	GetSummary(ctx context.Context) ([]affordability.CategorySummary, error)
}
