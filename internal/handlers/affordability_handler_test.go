package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"foodafford/internal/affordability"
	apperrors "foodafford/internal/errors"
	"foodafford/internal/models"
)

func setupAffordabilityRouter(handler *AffordabilityHandler) *gin.Engine {
	r := gin.New()
	r.GET("/affordability", handler.GetAffordability)
	r.GET("/affordability/categories", handler.GetCostBreakdown)
	r.GET("/affordability/export", handler.ExportMetrics)
	return r
}

func sampleMetrics() []models.AffordabilityMetric {
	jan14 := models.AffordabilityMetric{
		Month: month(2014, 1), BasketCost: d("7.80"), AnnualizedCost: d("93.60"),
		Income: d("40000"), Ratio: d("0.00234"), Index: d("100"),
	}
	jan15 := models.AffordabilityMetric{
		Month: month(2015, 1), BasketCost: d("8.58"), AnnualizedCost: d("102.96"),
		Income: d("42000"), Ratio: d("0.0024514"), Index: d("104.76"),
		YoYChangePct: decimal.NewNullDecimal(d("10")),
	}
	return []models.AffordabilityMetric{jan14, jan15}
}

func chartAt(t *testing.T, result map[string]interface{}, i int) map[string]interface{} {
	t.Helper()
	list, ok := result["charts"].([]interface{})
	if !ok || len(list) <= i {
		t.Fatalf("expected at least %d charts, got %v", i+1, result["charts"])
	}
	return list[i].(map[string]interface{})
}

func seriesData(t *testing.T, chart map[string]interface{}, i int) []interface{} {
	t.Helper()
	series := chart["series"].([]interface{})
	if len(series) <= i {
		t.Fatalf("expected at least %d series, got %d", i+1, len(series))
	}
	return series[i].(map[string]interface{})["data"].([]interface{})
}

func TestAffordabilityHandler_GetAffordability(t *testing.T) {
	t.Run("defaults to monthly", func(t *testing.T) {
		svc := &mockAffordabilityService{
			getMonthlyMetricsFn: func(_ context.Context) ([]models.AffordabilityMetric, error) {
				return sampleMetrics(), nil
			},
			getAnnualMetricsFn: func(_ context.Context) ([]affordability.AnnualMetric, error) {
				t.Error("annual metrics should not be requested")
				return nil, nil
			},
		}
		r := setupAffordabilityRouter(NewAffordabilityHandler(svc))

		rec := doRequest(r, http.MethodGet, "/affordability", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["granularity"] != "monthly" {
			t.Errorf("expected monthly, got %v", result["granularity"])
		}
		if len(result["metrics"].([]interface{})) != 2 {
			t.Errorf("expected 2 metrics")
		}

		cost := chartAt(t, result, 0)
		if cost["chartType"] != "line" {
			t.Errorf("expected line chart, got %v", cost["chartType"])
		}
		points := seriesData(t, cost, 0)
		first := points[0].(map[string]interface{})
		if first["label"] != "2014-01" || first["value"] != 7.8 {
			t.Errorf("unexpected first point %v", first)
		}

		// only months with a value a year back appear in the YoY chart
		if yoy := seriesData(t, chartAt(t, result, 1), 0); len(yoy) != 1 {
			t.Errorf("expected 1 YoY point, got %d", len(yoy))
		}

		index := seriesData(t, chartAt(t, result, 3), 0)
		if index[0].(map[string]interface{})["value"] != float64(100) {
			t.Errorf("expected baseline index 100, got %v", index[0])
		}
	})

	t.Run("annual", func(t *testing.T) {
		change := d("9.5")
		svc := &mockAffordabilityService{
			getAnnualMetricsFn: func(_ context.Context) ([]affordability.AnnualMetric, error) {
				return []affordability.AnnualMetric{
					{Year: 2014, Months: 12, AvgMonthlyCost: d("7.9"), Ratio: d("0.0024"), AvgIndex: d("101")},
					{Year: 2015, Months: 12, AvgMonthlyCost: d("8.65"), Ratio: d("0.0025"), AvgIndex: d("110"), YoYChangePct: &change},
				}, nil
			},
		}
		r := setupAffordabilityRouter(NewAffordabilityHandler(svc))

		rec := doRequest(r, http.MethodGet, "/affordability?granularity=annual", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["granularity"] != "annual" {
			t.Errorf("expected annual, got %v", result["granularity"])
		}
		cost := chartAt(t, result, 0)
		if cost["chartType"] != "bar" {
			t.Errorf("expected bar chart, got %v", cost["chartType"])
		}
		if label := seriesData(t, cost, 0)[1].(map[string]interface{})["label"]; label != "2015" {
			t.Errorf("expected label 2015, got %v", label)
		}
	})

	t.Run("returns 400 on unknown granularity", func(t *testing.T) {
		r := setupAffordabilityRouter(NewAffordabilityHandler(&mockAffordabilityService{}))

		rec := doRequest(r, http.MethodGet, "/affordability?granularity=weekly", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 503 when nothing is loaded", func(t *testing.T) {
		svc := &mockAffordabilityService{
			getMonthlyMetricsFn: func(_ context.Context) ([]models.AffordabilityMetric, error) {
				return nil, apperrors.ErrDatasetNotLoaded
			},
		}
		r := setupAffordabilityRouter(NewAffordabilityHandler(svc))

		rec := doRequest(r, http.MethodGet, "/affordability", "")
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DATASET_NOT_LOADED")
	})
}

func TestAffordabilityHandler_GetCostBreakdown(t *testing.T) {
	svc := &mockAffordabilityService{
		getCostSeriesFn: func(_ context.Context) ([]models.BasketCost, error) {
			return []models.BasketCost{
				{Month: month(2014, 1), TotalCost: d("7.80"), HealthyCost: d("3.00"), NeutralCost: d("4.80"), UnhealthyCost: decimal.Zero},
			}, nil
		},
	}
	r := setupAffordabilityRouter(NewAffordabilityHandler(svc))

	rec := doRequest(r, http.MethodGet, "/affordability/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	series := result["series"].([]interface{})
	if len(series) != 3 {
		t.Fatalf("expected 3 category series, got %d", len(series))
	}
	healthy := series[0].(map[string]interface{})
	if healthy["name"] != "Healthy" || healthy["color"] != "#16A34A" {
		t.Errorf("unexpected healthy series %v", healthy)
	}
	if result["showLegend"] != true {
		t.Error("expected legend for multiple series")
	}
}

func TestAffordabilityHandler_ExportMetrics(t *testing.T) {
	t.Run("returns CSV attachment", func(t *testing.T) {
		svc := &mockAffordabilityService{
			exportCSVFn: func(_ context.Context, w io.Writer) error {
				_, err := fmt.Fprint(w, "Date,Basket_Cost_Euro\n2014-01-01,7.8\n")
				return err
			},
		}
		r := setupAffordabilityRouter(NewAffordabilityHandler(svc))

		rec := doRequest(r, http.MethodGet, "/affordability/export", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
			t.Errorf("expected text/csv, got %q", ct)
		}
		if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "affordability_metrics.csv") {
			t.Errorf("unexpected Content-Disposition %q", cd)
		}
		if !strings.HasPrefix(rec.Body.String(), "Date,Basket_Cost_Euro") {
			t.Errorf("unexpected body %q", rec.Body.String())
		}
	})

	t.Run("returns JSON error when export fails", func(t *testing.T) {
		svc := &mockAffordabilityService{
			exportCSVFn: func(_ context.Context, _ io.Writer) error {
				return apperrors.ErrDatasetNotLoaded
			},
		}
		r := setupAffordabilityRouter(NewAffordabilityHandler(svc))

		rec := doRequest(r, http.MethodGet, "/affordability/export", "")
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DATASET_NOT_LOADED")
	})
}
