package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodafford/internal/affordability"
	"foodafford/internal/charts"
	"foodafford/internal/models"
	"foodafford/internal/services"
)

// BasketHandler serves the basket definition and the income table.
type BasketHandler struct {
	basketService services.BasketServicer
}

// NewBasketHandler creates a new BasketHandler.
func NewBasketHandler(basketService services.BasketServicer) *BasketHandler {
	return &BasketHandler{basketService: basketService}
}

// BasketResponse is the basket with a chart of its latest cost by category.
type BasketResponse struct {
	*services.BasketView
	Chart *charts.Config `json:"chart"`
}

// IncomesResponse lists the yearly median incomes.
type IncomesResponse struct {
	Incomes []models.IncomeRecord `json:"incomes"`
	Chart   *charts.Config        `json:"chart"`
}

// GetBasket returns the basket items priced in the latest month.
// @Summary     Basket
// @Description Basket items with their food category and the latest month's cost breakdown
// @Tags        basket
// @Produce     json
// @Success     200 {object} BasketResponse
// @Failure     503 {object} ErrorResponse "No dataset loaded"
// @Router      /basket [get]
func (h *BasketHandler) GetBasket(c *gin.Context) {
	view, err := h.basketService.GetBasket(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	series := charts.Series{Name: "Cost"}
	for _, cat := range affordability.Categories {
		series.Add(string(cat), view.CostByCategory[cat])
	}
	title := "Basket cost by category, " + charts.MonthLabel(view.Month)
	c.JSON(http.StatusOK, BasketResponse{
		BasketView: view,
		Chart:      charts.Bar(title, "Category", "EUR", series),
	})
}

// ListIncomes returns the yearly median incomes of the snapshot.
// @Summary     Median incomes
// @Description Yearly median disposable income used as the affordability denominator
// @Tags        basket
// @Produce     json
// @Success     200 {object} IncomesResponse
// @Failure     503 {object} ErrorResponse "No dataset loaded"
// @Router      /incomes [get]
func (h *BasketHandler) ListIncomes(c *gin.Context) {
	incomes, err := h.basketService.ListIncomes(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	series := charts.Series{Name: "Median income"}
	for _, inc := range incomes {
		series.Add(strconv.Itoa(inc.Year), inc.MedianIncome)
	}
	c.JSON(http.StatusOK, IncomesResponse{
		Incomes: incomes,
		Chart:   charts.Bar("Median disposable income", "Year", "EUR", series),
	})
}
