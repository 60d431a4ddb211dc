package services

import (
	"context"

	"gorm.io/gorm"

	"foodafford/internal/affordability"
)

// categoryService serves price trends by food category.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// GetTrends summarizes prices per month and category with the chosen
// statistic, plus the change against twelve months earlier.
func (s *categoryService) GetTrends(ctx context.Context, stat affordability.PriceStatistic) (*CategoryTrends, error) {
	load, err := currentLoad(ctx, s.db)
	if err != nil {
		return nil, err
	}
	records, tagger, err := priceRecords(ctx, s.db, load.ID)
	if err != nil {
		return nil, err
	}

	monthly, err := affordability.CategoryMonthly(records, tagger, stat)
	if err != nil {
		return nil, err
	}
	return &CategoryTrends{
		Statistic: stat,
		Monthly:   monthly,
		YoY:       affordability.CategoryYoY(monthly),
	}, nil
}

// GetSummary describes all price observations per category.
func (s *categoryService) GetSummary(ctx context.Context) ([]affordability.CategorySummary, error) {
	load, err := currentLoad(ctx, s.db)
	if err != nil {
		return nil, err
	}
	records, tagger, err := priceRecords(ctx, s.db, load.ID)
	if err != nil {
		return nil, err
	}
	return affordability.SummarizeCategories(records, tagger)
}
