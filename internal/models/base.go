package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base contains common columns for long-lived tables
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = newID()
	}
	return nil
}

// Amount columns are declared text for the models so SQLite keeps every
// digit of a decimal; the Postgres migrations declare them NUMERIC.

// SnapshotRow is embedded by every table derived from a dataset load.
// Rows are written once per load and never updated, so there are no
// timestamps or soft deletes.
type SnapshotRow struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"-"`
	LoadID string `gorm:"type:uuid;not null;index" json:"-"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (r *SnapshotRow) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = newID()
	}
	return nil
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// All lists every model for AutoMigrate, parents first.
func All() []interface{} {
	return []interface{}{
		&DatasetLoad{},
		&PriceRecord{},
		&IncomeRecord{},
		&BasketItem{},
		&BasketCost{},
		&BasketLine{},
		&AffordabilityMetric{},
	}
}

// SnapshotTables lists the models replaced on every reload, children first.
func SnapshotTables() []interface{} {
	return []interface{}{
		&AffordabilityMetric{},
		&BasketLine{},
		&BasketCost{},
		&BasketItem{},
		&IncomeRecord{},
		&PriceRecord{},
	}
}
