package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodafford/internal/affordability"
	"foodafford/internal/charts"
	apperrors "foodafford/internal/errors"
	"foodafford/internal/models"
	"foodafford/internal/pagination"
	"foodafford/internal/services"
)

// ItemHandler serves item price histories and statistics.
type ItemHandler struct {
	priceService services.PriceServicer
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(priceService services.PriceServicer) *ItemHandler {
	return &ItemHandler{priceService: priceService}
}

// ListItemsQuery holds the optional filters of ListItems.
type ListItemsQuery struct {
	Category string `form:"category" binding:"omitempty,food_category"`
	Unit     string `form:"unit" binding:"omitempty,unit"`
}

// ItemsResponse lists priced items.
type ItemsResponse struct {
	Items []services.ItemSummary `json:"items"`
}

// ItemPricesResponse is a page of an item's prices with a chart of the page.
type ItemPricesResponse struct {
	pagination.PageResponse[models.PriceRecord]
	Chart *charts.Config `json:"chart"`
}

// ItemStatsQuery holds the query parameters of GetItemStats.
type ItemStatsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

// ItemStatsResponse carries the item statistics and ranking charts.
type ItemStatsResponse struct {
	*services.ItemStatsView
	Charts []*charts.Config `json:"charts"`
}

// ListItems returns the priced items.
// @Summary     List items
// @Description List every priced item with its unit, food category and number of monthly observations
// @Tags        items
// @Produce     json
// @Param       category query string false "Healthy, Neutral or Unhealthy"
// @Param       unit     query string false "kg or L"
// @Success     200 {object} ItemsResponse
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     503 {object} ErrorResponse "No dataset loaded"
// @Router      /items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	var q ListItemsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.ItemFilter
	if q.Category != "" {
		cat, err := affordability.ParseCategory(q.Category)
		if err != nil {
			respondWithError(c, err)
			return
		}
		filter.Category = &cat
	}
	if q.Unit != "" {
		unit, err := affordability.ParseUnit(q.Unit)
		if err != nil {
			respondWithError(c, err)
			return
		}
		filter.Unit = &unit
	}

	items, err := h.priceService.ListItems(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ItemsResponse{Items: items})
}

// GetItemPrices returns one item's monthly prices.
// @Summary     Item prices
// @Description Paginated monthly price history of one item, oldest first
// @Tags        items
// @Produce     json
// @Param       item      path  string true  "Item name (case-insensitive)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Months per page (default 24, max 240)"
// @Success     200 {object} ItemPricesResponse
// @Failure     400 {object} ErrorResponse "Invalid pagination"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Failure     503 {object} ErrorResponse "No dataset loaded"
// @Router      /items/{item}/prices [get]
func (h *ItemHandler) GetItemPrices(c *gin.Context) {
	item, err := itemParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.priceService.GetItemPrices(c.Request.Context(), item, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	series := charts.Series{Name: item}
	for _, p := range result.Data {
		series.Add(charts.MonthLabel(p.Month), p.Price)
	}
	yAxis := "EUR"
	if len(result.Data) > 0 {
		series.Name = result.Data[0].Item
		yAxis = "EUR per " + result.Data[0].Unit
	}
	c.JSON(http.StatusOK, ItemPricesResponse{
		PageResponse: *result,
		Chart:        charts.Line(series.Name+" price", "Month", yAxis, series),
	})
}

// GetItemStats returns per-item statistics and rankings.
// @Summary     Item statistics
// @Description Mean, range and volatility per item with the most and least volatile and expensive items
// @Tags        items
// @Produce     json
// @Param       limit query int false "Ranking size (default 5, max 50)"
// @Success     200 {object} ItemStatsResponse
// @Failure     400 {object} ErrorResponse "Invalid limit"
// @Failure     503 {object} ErrorResponse "No dataset loaded"
// @Router      /items/stats [get]
func (h *ItemHandler) GetItemStats(c *gin.Context) {
	var q ItemStatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if q.Limit == 0 {
		q.Limit = affordability.DefaultRankingSize
	}

	view, err := h.priceService.GetItemStats(c.Request.Context(), q.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ItemStatsResponse{
		ItemStatsView: view,
		Charts:        rankingCharts(view.Rankings),
	})
}

func rankingCharts(r affordability.ItemRankings) []*charts.Config {
	volatility := func(title string, stats []affordability.ItemStat) *charts.Config {
		s := charts.Series{Name: "Standard deviation"}
		for _, st := range stats {
			s.Data = append(s.Data, charts.Point{Label: st.Item, Value: charts.RoundTo2(st.StdDev)})
		}
		return charts.Bar(title, "Item", "EUR", s)
	}
	average := func(title string, stats []affordability.ItemStat) *charts.Config {
		s := charts.Series{Name: "Average price"}
		for _, st := range stats {
			s.Add(st.Item, st.Mean)
		}
		return charts.Bar(title, "Item", "EUR", s)
	}
	return []*charts.Config{
		volatility("Most volatile items", r.MostVolatile),
		volatility("Least volatile items", r.LeastVolatile),
		average("Most expensive items", r.MostExpensive),
		average("Least expensive items", r.LeastExpensive),
	}
}
