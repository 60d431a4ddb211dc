package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"foodafford/internal/affordability"
	apperrors "foodafford/internal/errors"
	"foodafford/internal/models"
)

// dataQualityErrors maps a failed load's stored code back to its error and
// status.
var dataQualityErrors = map[string]*apperrors.AppError{
	apperrors.ErrMissingPrice.Code:      apperrors.ErrMissingPrice,
	apperrors.ErrMissingIncome.Code:     apperrors.ErrMissingIncome,
	apperrors.ErrMissingBaseline.Code:   apperrors.ErrMissingBaseline,
	apperrors.ErrUnitMismatch.Code:      apperrors.ErrUnitMismatch,
	apperrors.ErrUncategorizedItem.Code: apperrors.ErrUncategorizedItem,
	apperrors.ErrDuplicateRecord.Code:   apperrors.ErrDuplicateRecord,
	apperrors.ErrInvalidInputFile.Code:  apperrors.ErrInvalidInputFile,
	apperrors.ErrInvalidInput.Code:      apperrors.ErrInvalidInput,
}

// currentLoad returns the load whose rows make up the snapshot. When no
// load has succeeded yet, the error of the latest failed load is returned
// so the dashboard shows why there is no data.
func currentLoad(ctx context.Context, db *gorm.DB) (*models.DatasetLoad, error) {
	var load models.DatasetLoad
	err := db.WithContext(ctx).
		Where("status = ?", models.LoadStatusSucceeded).
		Order("finished_at DESC").
		First(&load).Error
	if err == nil {
		return &load, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	last, err := latestAttempt(ctx, db)
	if err != nil {
		return nil, err
	}
	if last == nil {
		return nil, apperrors.ErrDatasetNotLoaded
	}
	return nil, loadError(last)
}

// latestAttempt returns the most recent load of any status, or nil.
func latestAttempt(ctx context.Context, db *gorm.DB) (*models.DatasetLoad, error) {
	var load models.DatasetLoad
	err := db.WithContext(ctx).Order("finished_at DESC").First(&load).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &load, nil
}

func loadError(load *models.DatasetLoad) error {
	sentinel, ok := dataQualityErrors[load.ErrorCode]
	if !ok {
		sentinel = apperrors.ErrDatasetNotLoaded
	}
	if load.ErrorMessage == "" {
		return sentinel
	}
	return apperrors.WithMessage(sentinel, load.ErrorMessage)
}

// priceRecords reads the snapshot's prices back into domain records, with a
// tagger built from the categories stored alongside them.
func priceRecords(ctx context.Context, db *gorm.DB, loadID string) ([]affordability.PriceRecord, *affordability.Tagger, error) {
	var rows []models.PriceRecord
	if err := db.WithContext(ctx).
		Where("load_id = ?", loadID).
		Order("month ASC, item_key ASC").
		Find(&rows).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	records := make([]affordability.PriceRecord, len(rows))
	tags := make(map[string]affordability.Category)
	for i, r := range rows {
		records[i] = affordability.PriceRecord{
			Item:  r.Item,
			Month: affordability.MonthOf(r.Month),
			Price: r.Price,
			Unit:  affordability.Unit(r.Unit),
		}
		if r.Category != "" {
			tags[r.Item] = affordability.Category(r.Category)
		}
	}
	return records, affordability.NewTagger(tags), nil
}

// metricRecords reads the snapshot's monthly metrics in month order.
func metricRecords(ctx context.Context, db *gorm.DB, loadID string) ([]models.AffordabilityMetric, error) {
	var rows []models.AffordabilityMetric
	if err := db.WithContext(ctx).
		Where("load_id = ?", loadID).
		Order("month ASC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

func toDomainMetrics(rows []models.AffordabilityMetric) []affordability.Metric {
	out := make([]affordability.Metric, len(rows))
	for i, r := range rows {
		out[i] = affordability.Metric{
			Month:          affordability.MonthOf(r.Month),
			BasketCost:     r.BasketCost,
			AnnualizedCost: r.AnnualizedCost,
			Income:         r.Income,
			Ratio:          r.Ratio,
			Index:          r.Index,
		}
	}
	return out
}
