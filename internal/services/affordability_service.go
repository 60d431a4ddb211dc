package services

import (
	"context"
	"io"

	"gorm.io/gorm"

	"foodafford/internal/affordability"
	apperrors "foodafford/internal/errors"
	"foodafford/internal/loader"
	"foodafford/internal/models"
)

// affordabilityService serves the derived affordability series.
type affordabilityService struct {
	db *gorm.DB
}

// NewAffordabilityService creates a new AffordabilityServicer.
func NewAffordabilityService(db *gorm.DB) AffordabilityServicer {
	return &affordabilityService{db: db}
}

// GetMonthlyMetrics returns one metric per month, oldest first.
func (s *affordabilityService) GetMonthlyMetrics(ctx context.Context) ([]models.AffordabilityMetric, error) {
	load, err := currentLoad(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return metricRecords(ctx, s.db, load.ID)
}

// GetAnnualMetrics groups the monthly metrics by calendar year.
func (s *affordabilityService) GetAnnualMetrics(ctx context.Context) ([]affordability.AnnualMetric, error) {
	rows, err := s.GetMonthlyMetrics(ctx)
	if err != nil {
		return nil, err
	}
	return affordability.Annualize(toDomainMetrics(rows)), nil
}

// GetCostSeries returns the basket cost with its category split per month.
func (s *affordabilityService) GetCostSeries(ctx context.Context) ([]models.BasketCost, error) {
	load, err := currentLoad(ctx, s.db)
	if err != nil {
		return nil, err
	}

	var costs []models.BasketCost
	if err := s.db.WithContext(ctx).
		Where("load_id = ?", load.ID).
		Order("month ASC").
		Find(&costs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return costs, nil
}

// ExportCSV writes the monthly metrics in the export layout.
func (s *affordabilityService) ExportCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.GetMonthlyMetrics(ctx)
	if err != nil {
		return err
	}
	if err := loader.WriteMetricsCSV(w, toDomainMetrics(rows)); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
