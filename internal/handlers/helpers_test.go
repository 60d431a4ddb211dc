package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"foodafford/internal/affordability"
	apperrors "foodafford/internal/errors"
	"foodafford/internal/logger"
	"foodafford/internal/models"
	"foodafford/internal/pagination"
	"foodafford/internal/services"
	"foodafford/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// --- mock services ---

type mockDatasetService struct {
	reloadFn   func(ctx context.Context) (*models.DatasetLoad, error)
	overviewFn func(ctx context.Context) (*services.Overview, error)
}

var _ services.DatasetServicer = (*mockDatasetService)(nil)

func (m *mockDatasetService) Reload(ctx context.Context) (*models.DatasetLoad, error) {
	if m.reloadFn != nil {
		return m.reloadFn(ctx)
	}
	return &models.DatasetLoad{Status: models.LoadStatusSucceeded}, nil
}

func (m *mockDatasetService) Overview(ctx context.Context) (*services.Overview, error) {
	if m.overviewFn != nil {
		return m.overviewFn(ctx)
	}
	return &services.Overview{}, nil
}

type mockAffordabilityService struct {
	getMonthlyMetricsFn func(ctx context.Context) ([]models.AffordabilityMetric, error)
	getAnnualMetricsFn  func(ctx context.Context) ([]affordability.AnnualMetric, error)
	getCostSeriesFn     func(ctx context.Context) ([]models.BasketCost, error)
	exportCSVFn         func(ctx context.Context, w io.Writer) error
}

var _ services.AffordabilityServicer = (*mockAffordabilityService)(nil)

func (m *mockAffordabilityService) GetMonthlyMetrics(ctx context.Context) ([]models.AffordabilityMetric, error) {
	if m.getMonthlyMetricsFn != nil {
		return m.getMonthlyMetricsFn(ctx)
	}
	return []models.AffordabilityMetric{}, nil
}

func (m *mockAffordabilityService) GetAnnualMetrics(ctx context.Context) ([]affordability.AnnualMetric, error) {
	if m.getAnnualMetricsFn != nil {
		return m.getAnnualMetricsFn(ctx)
	}
	return []affordability.AnnualMetric{}, nil
}

func (m *mockAffordabilityService) GetCostSeries(ctx context.Context) ([]models.BasketCost, error) {
	if m.getCostSeriesFn != nil {
		return m.getCostSeriesFn(ctx)
	}
	return []models.BasketCost{}, nil
}

func (m *mockAffordabilityService) ExportCSV(ctx context.Context, w io.Writer) error {
	if m.exportCSVFn != nil {
		return m.exportCSVFn(ctx, w)
	}
	return nil
}

type mockBasketService struct {
	getBasketFn   func(ctx context.Context) (*services.BasketView, error)
	listIncomesFn func(ctx context.Context) ([]models.IncomeRecord, error)
}

var _ services.BasketServicer = (*mockBasketService)(nil)

func (m *mockBasketService) GetBasket(ctx context.Context) (*services.BasketView, error) {
	if m.getBasketFn != nil {
		return m.getBasketFn(ctx)
	}
	return &services.BasketView{}, nil
}

func (m *mockBasketService) ListIncomes(ctx context.Context) ([]models.IncomeRecord, error) {
	if m.listIncomesFn != nil {
		return m.listIncomesFn(ctx)
	}
	return []models.IncomeRecord{}, nil
}

type mockPriceService struct {
	listItemsFn     func(ctx context.Context, filter services.ItemFilter) ([]services.ItemSummary, error)
	getItemPricesFn func(ctx context.Context, item string, page pagination.PageRequest) (*pagination.PageResponse[models.PriceRecord], error)
	getItemStatsFn  func(ctx context.Context, limit int) (*services.ItemStatsView, error)
}

var _ services.PriceServicer = (*mockPriceService)(nil)

func (m *mockPriceService) ListItems(ctx context.Context, filter services.ItemFilter) ([]services.ItemSummary, error) {
	if m.listItemsFn != nil {
		return m.listItemsFn(ctx, filter)
	}
	return []services.ItemSummary{}, nil
}

func (m *mockPriceService) GetItemPrices(ctx context.Context, item string, page pagination.PageRequest) (*pagination.PageResponse[models.PriceRecord], error) {
	if m.getItemPricesFn != nil {
		return m.getItemPricesFn(ctx, item, page)
	}
	resp := pagination.NewPageResponse([]models.PriceRecord{}, 1, pagination.DefaultPageSize, 0)
	return &resp, nil
}

func (m *mockPriceService) GetItemStats(ctx context.Context, limit int) (*services.ItemStatsView, error) {
	if m.getItemStatsFn != nil {
		return m.getItemStatsFn(ctx, limit)
	}
	return &services.ItemStatsView{}, nil
}

type mockCategoryService struct {
	getTrendsFn  func(ctx context.Context, stat affordability.PriceStatistic) (*services.CategoryTrends, error)
	getSummaryFn func(ctx context.Context) ([]affordability.CategorySummary, error)
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

func (m *mockCategoryService) GetTrends(ctx context.Context, stat affordability.PriceStatistic) (*services.CategoryTrends, error) {
	if m.getTrendsFn != nil {
		return m.getTrendsFn(ctx, stat)
	}
	return &services.CategoryTrends{Statistic: stat}, nil
}

func (m *mockCategoryService) GetSummary(ctx context.Context) ([]affordability.CategorySummary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(ctx)
	}
	return []affordability.CategorySummary{}, nil
}

// --- helpers ---

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// --- tests ---

func TestRespondWithError(t *testing.T) {
	r := gin.New()
	r.GET("/app", func(c *gin.Context) { respondWithError(c, apperrors.ErrMissingPrice) })
	r.GET("/plain", func(c *gin.Context) { respondWithError(c, errors.New("boom")) })

	t.Run("app_error_keeps_status_and_code", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, "/app", "")
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "MISSING_PRICE")
	})

	t.Run("plain_error_is_internal", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, "/plain", "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "INTERNAL_ERROR")
		if strings.Contains(rec.Body.String(), "boom") {
			t.Error("internal error details leaked into the response")
		}
	})
}
