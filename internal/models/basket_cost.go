package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BasketCost is the priced basket for one month.
type BasketCost struct {
	SnapshotRow
	Month         time.Time       `gorm:"not null;index" json:"month"`
	TotalCost     decimal.Decimal `gorm:"type:text;not null" json:"total_cost"`
	HealthyCost   decimal.Decimal `gorm:"type:text;not null" json:"healthy_cost"`
	NeutralCost   decimal.Decimal `gorm:"type:text;not null" json:"neutral_cost"`
	UnhealthyCost decimal.Decimal `gorm:"type:text;not null" json:"unhealthy_cost"`
}

// BasketLine is one basket item's contribution to a month's cost.
type BasketLine struct {
	SnapshotRow
	Month    time.Time       `gorm:"not null;index" json:"month"`
	Item     string          `gorm:"type:varchar(255);not null" json:"item"`
	Category string          `gorm:"type:varchar(16);not null" json:"category"`
	Quantity decimal.Decimal `gorm:"type:text;not null" json:"quantity"`
	Unit     string          `gorm:"type:varchar(8);not null" json:"unit"`
	Price    decimal.Decimal `gorm:"type:text;not null" json:"price"`
	Cost     decimal.Decimal `gorm:"type:text;not null" json:"cost"`
}

// AffordabilityMetric relates one month's basket cost to income.
type AffordabilityMetric struct {
	SnapshotRow
	Month          time.Time           `gorm:"not null;index" json:"month"`
	BasketCost     decimal.Decimal     `gorm:"type:text;not null" json:"basket_cost"`
	AnnualizedCost decimal.Decimal     `gorm:"type:text;not null" json:"annualized_cost"`
	Income         decimal.Decimal     `gorm:"type:text;not null" json:"income"`
	Ratio          decimal.Decimal     `gorm:"type:text;not null" json:"ratio"`
	Index          decimal.Decimal     `gorm:"column:index_value;type:text;not null" json:"index"`
	YoYChangePct   decimal.NullDecimal `gorm:"column:yoy_change_pct;type:text" json:"yoy_change_pct"`
}
