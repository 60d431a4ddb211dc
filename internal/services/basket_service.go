package services

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"foodafford/internal/affordability"
	apperrors "foodafford/internal/errors"
	"foodafford/internal/models"
)

// basketService serves the basket definition and incomes.
type basketService struct {
	db *gorm.DB
}

// NewBasketService creates a new BasketServicer.
func NewBasketService(db *gorm.DB) BasketServicer {
	return &basketService{db: db}
}

// GetBasket returns the basket items and their cost in the latest month.
func (s *basketService) GetBasket(ctx context.Context) (*BasketView, error) {
	load, err := currentLoad(ctx, s.db)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)

	view := &BasketView{CostByCategory: make(map[affordability.Category]decimal.Decimal, len(affordability.Categories))}
	if err := db.Where("load_id = ?", load.ID).Order("position ASC").Find(&view.Items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var latest models.BasketCost
	err = db.Where("load_id = ?", load.ID).Order("month DESC").First(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return view, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	view.Month = latest.Month
	view.TotalCost = latest.TotalCost
	view.CostByCategory[affordability.Healthy] = latest.HealthyCost
	view.CostByCategory[affordability.Neutral] = latest.NeutralCost
	view.CostByCategory[affordability.Unhealthy] = latest.UnhealthyCost

	if err := db.Where("load_id = ? AND month = ?", load.ID, latest.Month).
		Order("item ASC").
		Find(&view.Lines).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	// Costs are compared as decimals; the column may hold text.
	sort.SliceStable(view.Lines, func(i, j int) bool {
		return view.Lines[i].Cost.GreaterThan(view.Lines[j].Cost)
	})
	return view, nil
}

// ListIncomes returns the median incomes by year.
func (s *basketService) ListIncomes(ctx context.Context) ([]models.IncomeRecord, error) {
	load, err := currentLoad(ctx, s.db)
	if err != nil {
		return nil, err
	}

	var incomes []models.IncomeRecord
	if err := s.db.WithContext(ctx).
		Where("load_id = ?", load.ID).
		Order("year ASC").
		Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return incomes, nil
}
