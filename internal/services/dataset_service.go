package services

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"foodafford/internal/affordability"
	apperrors "foodafford/internal/errors"
	"foodafford/internal/loader"
	"foodafford/internal/logger"
	"foodafford/internal/models"
)

const insertBatchSize = 500

// datasetService loads the flat files and replaces the snapshot.
type datasetService struct {
	db      *gorm.DB
	sources loader.Sources
	log     *zap.SugaredLogger
}

// NewDatasetService creates a new DatasetServicer reading from sources.
func NewDatasetService(db *gorm.DB, sources loader.Sources) DatasetServicer {
	if sources.BaselineYear == 0 {
		sources.BaselineYear = affordability.DefaultBaselineYear
	}
	return &datasetService{db: db, sources: sources, log: logger.Named("dataset")}
}

// Reload reads every input file, recomputes all derived tables and swaps
// them in inside one transaction. On failure the previous snapshot stays in
// place and the failed attempt is recorded.
func (s *datasetService) Reload(ctx context.Context) (*models.DatasetLoad, error) {
	load := &models.DatasetLoad{
		PricesFile:     s.sources.PricesFile,
		IncomeFile:     s.sources.IncomeFile,
		BasketFile:     s.sources.BasketFile,
		CategoriesFile: s.sources.CategoriesFile,
		BaselineYear:   s.sources.BaselineYear,
		StartedAt:      time.Now().UTC(),
	}

	in, err := loader.Load(ctx, s.sources)
	if err != nil {
		return nil, s.recordFailure(ctx, load, err)
	}
	res, err := affordability.Run(*in)
	if err != nil {
		return nil, s.recordFailure(ctx, load, err)
	}

	load.Status = models.LoadStatusSucceeded
	load.PriceCount = len(in.Prices)
	load.IncomeCount = len(in.Incomes)
	load.BasketCount = len(in.Basket)
	load.MonthCount = len(res.Costs)
	if n := len(res.Costs); n > 0 {
		first, last := res.Costs[0].Month, res.Costs[n-1].Month
		load.FirstMonth, load.LastMonth = &first, &last
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range models.SnapshotTables() {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
				return err
			}
		}

		load.FinishedAt = time.Now().UTC()
		if err := tx.Create(load).Error; err != nil {
			return err
		}
		return writeSnapshot(tx, load.ID, in, res)
	})
	if err != nil {
		return nil, s.recordFailure(ctx, load, apperrors.Wrap(apperrors.ErrInternalServer, err))
	}

	s.log.Infow("Dataset loaded",
		"load_id", load.ID,
		"prices", load.PriceCount,
		"incomes", load.IncomeCount,
		"basket_items", load.BasketCount,
		"months", load.MonthCount,
	)
	return load, nil
}

func writeSnapshot(tx *gorm.DB, loadID string, in *affordability.Inputs, res *affordability.Result) error {
	row := func() models.SnapshotRow { return models.SnapshotRow{LoadID: loadID} }

	prices := make([]models.PriceRecord, len(in.Prices))
	for i, p := range in.Prices {
		c, _ := in.Tagger.Tag(p.Item)
		prices[i] = models.PriceRecord{
			SnapshotRow: row(),
			Item:        p.Item,
			ItemKey:     affordability.ItemKey(p.Item),
			Month:       affordability.MonthOf(p.Month),
			Price:       p.Price,
			Unit:        string(p.Unit),
			Category:    string(c),
		}
	}

	incomes := make([]models.IncomeRecord, len(in.Incomes))
	for i, inc := range in.Incomes {
		incomes[i] = models.IncomeRecord{SnapshotRow: row(), Year: inc.Year, MedianIncome: inc.MedianIncome}
	}

	items, cats := res.Basket.Items()
	basket := make([]models.BasketItem, len(items))
	for i, b := range items {
		basket[i] = models.BasketItem{
			SnapshotRow:     row(),
			Position:        i + 1,
			Item:            b.Item,
			MonthlyQuantity: b.MonthlyQuantity,
			Unit:            string(b.Unit),
			Category:        string(cats[i]),
		}
	}

	costs := make([]models.BasketCost, len(res.Costs))
	var lines []models.BasketLine
	for i, c := range res.Costs {
		costs[i] = models.BasketCost{
			SnapshotRow:   row(),
			Month:         c.Month,
			TotalCost:     c.TotalCost,
			HealthyCost:   c.CostByCategory[affordability.Healthy],
			NeutralCost:   c.CostByCategory[affordability.Neutral],
			UnhealthyCost: c.CostByCategory[affordability.Unhealthy],
		}
		for _, l := range c.Lines {
			lines = append(lines, models.BasketLine{
				SnapshotRow: row(),
				Month:       c.Month,
				Item:        l.Item,
				Category:    string(l.Category),
				Quantity:    l.Quantity,
				Unit:        string(l.Unit),
				Price:       l.Price,
				Cost:        l.Cost,
			})
		}
	}

	yoy := make(map[time.Time]decimal.Decimal, len(res.YoY))
	for _, p := range res.YoY {
		yoy[p.Month] = p.ChangePct
	}
	metrics := make([]models.AffordabilityMetric, len(res.Metrics))
	for i, m := range res.Metrics {
		metrics[i] = models.AffordabilityMetric{
			SnapshotRow:    row(),
			Month:          m.Month,
			BasketCost:     m.BasketCost,
			AnnualizedCost: m.AnnualizedCost,
			Income:         m.Income,
			Ratio:          m.Ratio,
			Index:          m.Index,
		}
		if v, ok := yoy[m.Month]; ok {
			metrics[i].YoYChangePct = decimal.NewNullDecimal(v)
		}
	}

	for _, batch := range []interface{}{&prices, &incomes, &basket, &costs, &lines, &metrics} {
		if err := createAll(tx, batch); err != nil {
			return err
		}
	}
	return nil
}

// createAll inserts a pointer to a slice in batches, skipping empty slices.
func createAll(tx *gorm.DB, rows interface{}) error {
	if reflect.ValueOf(rows).Elem().Len() == 0 {
		return nil
	}
	return tx.CreateInBatches(rows, insertBatchSize).Error
}

// recordFailure stores a failed attempt and returns the cause.
func (s *datasetService) recordFailure(ctx context.Context, load *models.DatasetLoad, cause error) error {
	load.ID = ""
	load.Status = models.LoadStatusFailed
	load.FinishedAt = time.Now().UTC()
	load.FirstMonth, load.LastMonth = nil, nil

	var appErr *apperrors.AppError
	if errors.As(cause, &appErr) {
		load.ErrorCode = appErr.Code
		load.ErrorMessage = appErr.Message
	} else {
		load.ErrorCode = apperrors.ErrInternalServer.Code
		load.ErrorMessage = cause.Error()
	}

	if err := s.db.WithContext(ctx).Create(load).Error; err != nil {
		s.log.Errorw("Failed to record dataset load failure", "error", err)
	}
	s.log.Warnw("Dataset load failed",
		"code", load.ErrorCode,
		"message", load.ErrorMessage,
	)
	return cause
}

// Overview summarizes the current snapshot.
func (s *datasetService) Overview(ctx context.Context) (*Overview, error) {
	load, err := currentLoad(ctx, s.db)
	if err != nil {
		return nil, err
	}

	ov := &Overview{
		Load:          load,
		BaselineMonth: time.Date(load.BaselineYear, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	last, err := latestAttempt(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if last != nil && last.ID != load.ID {
		ov.LastAttempt = last
	}

	if err := s.db.WithContext(ctx).
		Model(&models.PriceRecord{}).
		Where("load_id = ?", load.ID).
		Distinct("item_key").
		Count(&ov.Items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	metrics, err := metricRecords(ctx, s.db, load.ID)
	if err != nil {
		return nil, err
	}
	if n := len(metrics); n > 0 {
		first, latest := metrics[0], metrics[n-1]
		ov.Latest = &LatestMetric{
			Month:      latest.Month,
			BasketCost: latest.BasketCost,
			Ratio:      latest.Ratio,
			Index:      latest.Index,
		}
		if !first.BasketCost.IsZero() {
			change := latest.BasketCost.Div(first.BasketCost).Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
			ov.CostChangePct = &change
		}
	}
	return ov, nil
}
