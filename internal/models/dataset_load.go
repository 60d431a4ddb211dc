package models

import "time"

// LoadStatus is the outcome of a dataset load.
type LoadStatus string

const (
	LoadStatusSucceeded LoadStatus = "succeeded"
	LoadStatusFailed    LoadStatus = "failed"
)

// DatasetLoad records one attempt to load the input files. Failed loads are
// kept so the dashboard can show the data-quality error that stopped them.
type DatasetLoad struct {
	Base
	Status         LoadStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	ErrorCode      string     `gorm:"type:varchar(64)" json:"error_code,omitempty"`
	ErrorMessage   string     `gorm:"type:text" json:"error_message,omitempty"`
	PricesFile     string     `gorm:"type:text" json:"prices_file"`
	IncomeFile     string     `gorm:"type:text" json:"income_file"`
	BasketFile     string     `gorm:"type:text" json:"basket_file,omitempty"`
	CategoriesFile string     `gorm:"type:text" json:"categories_file,omitempty"`
	BaselineYear   int        `gorm:"not null" json:"baseline_year"`
	PriceCount     int        `json:"price_count"`
	IncomeCount    int        `json:"income_count"`
	BasketCount    int        `json:"basket_count"`
	MonthCount     int        `json:"month_count"`
	FirstMonth     *time.Time `json:"first_month,omitempty"`
	LastMonth      *time.Time `json:"last_month,omitempty"`
	StartedAt      time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt     time.Time  `gorm:"not null" json:"finished_at"`
}
