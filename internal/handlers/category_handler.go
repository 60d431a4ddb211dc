package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodafford/internal/affordability"
	"foodafford/internal/charts"
	apperrors "foodafford/internal/errors"
	"foodafford/internal/services"
)

// CategoryHandler serves price trends by food category.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryTrendsQuery holds the query parameters of GetTrends.
type CategoryTrendsQuery struct {
	Metric string `form:"metric" binding:"omitempty,price_metric"`
}

// CategoryTrendsResponse carries the category trends and their charts.
type CategoryTrendsResponse struct {
	*services.CategoryTrends
	Charts []*charts.Config `json:"charts"`
}

// CategorySummaryResponse describes each category over the whole period.
type CategorySummaryResponse struct {
	Categories []affordability.CategorySummary `json:"categories"`
	Chart      *charts.Config                  `json:"chart"`
}

// GetTrends returns the monthly price statistic per category.
// @Summary     Category trends
// @Description Monthly mean or median item price per food category and its year-over-year change
// @Tags        categories
// @Produce     json
// @Param       metric query string false "mean (default) or median"
// @Success     200 {object} CategoryTrendsResponse
// @Failure     400 {object} ErrorResponse "Invalid metric"
// @Failure     422 {object} ErrorResponse "Uncategorized item"
// @Failure     503 {object} ErrorResponse "No dataset loaded"
// @Router      /categories/trends [get]
func (h *CategoryHandler) GetTrends(c *gin.Context) {
	var q CategoryTrendsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	stat, err := affordability.ParsePriceStatistic(q.Metric)
	if err != nil {
		respondWithError(c, err)
		return
	}

	trends, err := h.categoryService.GetTrends(c.Request.Context(), stat)
	if err != nil {
		respondWithError(c, err)
		return
	}

	values := make(map[affordability.Category]*charts.Series, len(affordability.Categories))
	changes := make(map[affordability.Category]*charts.Series, len(affordability.Categories))
	valueSeries := make([]charts.Series, len(affordability.Categories))
	changeSeries := make([]charts.Series, len(affordability.Categories))
	for i, cat := range affordability.Categories {
		valueSeries[i] = charts.CategorySeries(cat)
		changeSeries[i] = charts.CategorySeries(cat)
		values[cat] = &valueSeries[i]
		changes[cat] = &changeSeries[i]
	}
	for _, p := range trends.Monthly {
		if s, ok := values[p.Category]; ok {
			s.Add(charts.MonthLabel(p.Month), p.Value)
		}
	}
	for _, p := range trends.YoY {
		if s, ok := changes[p.Category]; ok {
			s.Add(charts.MonthLabel(p.Month), p.ChangePct)
		}
	}

	c.JSON(http.StatusOK, CategoryTrendsResponse{
		CategoryTrends: trends,
		Charts: []*charts.Config{
			charts.Line("Monthly "+string(stat)+" item price by category", "Month", "EUR", valueSeries...),
			charts.Line("Category prices year-over-year", "Month", "%", changeSeries...),
		},
	})
}

// GetSummary returns per-category statistics over every observation.
// @Summary     Category summary
// @Description Mean, median and standard deviation of all price observations per food category
// @Tags        categories
// @Produce     json
// @Success     200 {object} CategorySummaryResponse
// @Failure     422 {object} ErrorResponse "Uncategorized item"
// @Failure     503 {object} ErrorResponse "No dataset loaded"
// @Router      /categories/summary [get]
func (h *CategoryHandler) GetSummary(c *gin.Context) {
	summary, err := h.categoryService.GetSummary(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	mean := charts.Series{Name: "Mean"}
	median := charts.Series{Name: "Median"}
	for _, s := range summary {
		mean.Add(string(s.Category), s.Mean)
		median.Add(string(s.Category), s.Median)
	}
	c.JSON(http.StatusOK, CategorySummaryResponse{
		Categories: summary,
		Chart:      charts.Bar("Average item price by category", "Category", "EUR", mean, median),
	})
}
