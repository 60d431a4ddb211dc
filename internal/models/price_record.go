package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRecord is one item's average price in one month.
type PriceRecord struct {
	SnapshotRow
	Item     string          `gorm:"type:varchar(255);not null" json:"item"`
	ItemKey  string          `gorm:"type:varchar(255);not null;index" json:"-"`
	Month    time.Time       `gorm:"not null;index" json:"month"`
	Price    decimal.Decimal `gorm:"type:text;not null" json:"price"`
	Unit     string          `gorm:"type:varchar(8);not null" json:"unit"`
	Category string          `gorm:"type:varchar(16);index" json:"category,omitempty"`
}

// IncomeRecord is the median household income of one year.
type IncomeRecord struct {
	SnapshotRow
	Year         int             `gorm:"not null;index" json:"year"`
	MedianIncome decimal.Decimal `gorm:"type:text;not null" json:"median_income"`
}

// BasketItem is one line of the basket definition used by the load.
type BasketItem struct {
	SnapshotRow
	Position        int             `gorm:"not null" json:"position"`
	Item            string          `gorm:"type:varchar(255);not null" json:"item"`
	MonthlyQuantity decimal.Decimal `gorm:"type:text;not null" json:"monthly_quantity"`
	Unit            string          `gorm:"type:varchar(8);not null" json:"unit"`
	Category        string          `gorm:"type:varchar(16);not null" json:"category"`
}
