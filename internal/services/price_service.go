package services

import (
	"context"

	"gorm.io/gorm"

	"foodafford/internal/affordability"
	apperrors "foodafford/internal/errors"
	"foodafford/internal/models"
	"foodafford/internal/pagination"
)

// priceService serves item price histories.
type priceService struct {
	db *gorm.DB
}

// NewPriceService creates a new PriceServicer.
func NewPriceService(db *gorm.DB) PriceServicer {
	return &priceService{db: db}
}

// ListItems lists every priced item with its observation count.
func (s *priceService) ListItems(ctx context.Context, filter ItemFilter) ([]ItemSummary, error) {
	load, err := currentLoad(ctx, s.db)
	if err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).
		Model(&models.PriceRecord{}).
		Select("MIN(item) AS item, MIN(unit) AS unit, MAX(category) AS category, COUNT(*) AS observations").
		Where("load_id = ?", load.ID)
	if filter.Category != nil {
		query = query.Where("category = ?", string(*filter.Category))
	}
	if filter.Unit != nil {
		query = query.Where("unit = ?", string(*filter.Unit))
	}

	items := []ItemSummary{}
	if err := query.Group("item_key").Order("item_key ASC").Scan(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return items, nil
}

// GetItemPrices returns one item's monthly prices, oldest first.
func (s *priceService) GetItemPrices(ctx context.Context, item string, page pagination.PageRequest) (*pagination.PageResponse[models.PriceRecord], error) {
	page.Defaults()

	load, err := currentLoad(ctx, s.db)
	if err != nil {
		return nil, err
	}

	base := s.db.WithContext(ctx).
		Model(&models.PriceRecord{}).
		Where("load_id = ? AND item_key = ?", load.ID, affordability.ItemKey(item))

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if totalItems == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrItemNotFound, "no prices recorded for "+item)
	}

	var prices []models.PriceRecord
	if err := base.Order("month ASC").Scopes(pagination.Paginate(page)).Find(&prices).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(prices, page.Page, page.PageSize, totalItems)
	return &resp, nil
}

// GetItemStats computes price statistics per item and ranks the extremes.
func (s *priceService) GetItemStats(ctx context.Context, limit int) (*ItemStatsView, error) {
	load, err := currentLoad(ctx, s.db)
	if err != nil {
		return nil, err
	}
	records, _, err := priceRecords(ctx, s.db, load.ID)
	if err != nil {
		return nil, err
	}

	stats, err := affordability.ItemStats(records)
	if err != nil {
		return nil, err
	}
	return &ItemStatsView{Items: stats, Rankings: affordability.RankItems(stats, limit)}, nil
}
