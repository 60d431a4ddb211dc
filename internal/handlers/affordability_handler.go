package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"foodafford/internal/affordability"
	"foodafford/internal/charts"
	apperrors "foodafford/internal/errors"
	"foodafford/internal/models"
	"foodafford/internal/services"
)

const exportFilename = "affordability_metrics.csv"

var hundred = decimal.NewFromInt(100)

// AffordabilityHandler serves the affordability series and their charts.
type AffordabilityHandler struct {
	affordabilityService services.AffordabilityServicer
}

// NewAffordabilityHandler creates a new AffordabilityHandler.
func NewAffordabilityHandler(affordabilityService services.AffordabilityServicer) *AffordabilityHandler {
	return &AffordabilityHandler{affordabilityService: affordabilityService}
}

// AffordabilityQuery holds the query parameters of GetAffordability.
type AffordabilityQuery struct {
	Granularity string `form:"granularity" binding:"omitempty,granularity"`
}

// MonthlyAffordabilityResponse is the monthly series with its charts.
type MonthlyAffordabilityResponse struct {
	Granularity string                       `json:"granularity"`
	Metrics     []models.AffordabilityMetric `json:"metrics"`
	Charts      []*charts.Config             `json:"charts"`
}

// AnnualAffordabilityResponse is the yearly series with its charts.
type AnnualAffordabilityResponse struct {
	Granularity string                       `json:"granularity"`
	Metrics     []affordability.AnnualMetric `json:"metrics"`
	Charts      []*charts.Config             `json:"charts"`
}

// GetAffordability returns the affordability metrics and chart configs.
// @Summary     Affordability metrics
// @Description Monthly or annual basket cost, affordability ratio and index, with chart configurations
// @Tags        affordability
// @Produce     json
// @Param       granularity query string false "monthly (default) or annual"
// @Success     200 {object} MonthlyAffordabilityResponse
// @Failure     400 {object} ErrorResponse "Invalid granularity"
// @Failure     503 {object} ErrorResponse "No dataset loaded"
// @Router      /affordability [get]
func (h *AffordabilityHandler) GetAffordability(c *gin.Context) {
	var q AffordabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if q.Granularity == "annual" {
		annual, err := h.affordabilityService.GetAnnualMetrics(c.Request.Context())
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, AnnualAffordabilityResponse{
			Granularity: "annual",
			Metrics:     annual,
			Charts:      annualCharts(annual),
		})
		return
	}

	metrics, err := h.affordabilityService.GetMonthlyMetrics(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MonthlyAffordabilityResponse{
		Granularity: "monthly",
		Metrics:     metrics,
		Charts:      monthlyCharts(metrics),
	})
}

// GetCostBreakdown returns the monthly basket cost split by food category.
// @Summary     Basket cost by category
// @Description Monthly basket cost with its healthy, neutral and unhealthy components
// @Tags        affordability
// @Produce     json
// @Success     200 {object} charts.Config
// @Failure     503 {object} ErrorResponse "No dataset loaded"
// @Router      /affordability/categories [get]
func (h *AffordabilityHandler) GetCostBreakdown(c *gin.Context) {
	costs, err := h.affordabilityService.GetCostSeries(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	healthy := charts.CategorySeries(affordability.Healthy)
	neutral := charts.CategorySeries(affordability.Neutral)
	unhealthy := charts.CategorySeries(affordability.Unhealthy)
	for _, cost := range costs {
		label := charts.MonthLabel(cost.Month)
		healthy.Add(label, cost.HealthyCost)
		neutral.Add(label, cost.NeutralCost)
		unhealthy.Add(label, cost.UnhealthyCost)
	}
	c.JSON(http.StatusOK, charts.Bar("Basket cost by food category", "Month", "EUR", healthy, neutral, unhealthy))
}

// ExportMetrics streams the monthly metrics as CSV.
// @Summary     Export metrics
// @Description Download the monthly affordability metrics as CSV
// @Tags        affordability
// @Produce     text/csv
// @Success     200 {file} file
// @Failure     503 {object} ErrorResponse "No dataset loaded"
// @Router      /affordability/export [get]
func (h *AffordabilityHandler) ExportMetrics(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.affordabilityService.ExportCSV(c.Request.Context(), &buf); err != nil {
		respondWithError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(exportFilename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func monthlyCharts(metrics []models.AffordabilityMetric) []*charts.Config {
	cost := charts.Series{Name: "Basket cost"}
	yoy := charts.Series{Name: "YoY change"}
	ratio := charts.Series{Name: "Affordability ratio"}
	index := charts.Series{Name: "Affordability index"}
	for _, m := range metrics {
		label := charts.MonthLabel(m.Month)
		cost.Add(label, m.BasketCost)
		if m.YoYChangePct.Valid {
			yoy.Add(label, m.YoYChangePct.Decimal)
		}
		ratio.Add(label, m.Ratio.Mul(hundred))
		index.Add(label, m.Index)
	}
	return []*charts.Config{
		charts.Line("Monthly basket cost", "Month", "EUR", cost),
		charts.Bar("Basket cost year-over-year", "Month", "%", yoy),
		charts.Line("Share of median income spent on the basket", "Month", "%", ratio),
		charts.Line("Affordability index", "Month", "Index (baseline = 100)", index),
	}
}

func annualCharts(annual []affordability.AnnualMetric) []*charts.Config {
	cost := charts.Series{Name: "Average monthly cost"}
	yoy := charts.Series{Name: "YoY change"}
	ratio := charts.Series{Name: "Affordability ratio"}
	index := charts.Series{Name: "Average index"}
	for _, a := range annual {
		label := strconv.Itoa(a.Year)
		cost.Add(label, a.AvgMonthlyCost)
		if a.YoYChangePct != nil {
			yoy.Add(label, *a.YoYChangePct)
		}
		ratio.Add(label, a.Ratio.Mul(hundred))
		index.Add(label, a.AvgIndex)
	}
	return []*charts.Config{
		charts.Bar("Average monthly basket cost", "Year", "EUR", cost),
		charts.Bar("Basket cost year-over-year", "Year", "%", yoy),
		charts.Line("Share of median income spent on the basket", "Year", "%", ratio),
		charts.Line("Average affordability index", "Year", "Index (baseline = 100)", index),
	}
}
