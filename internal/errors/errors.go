// Package errors provides the error types shared by the loaders, the
// affordability pipeline and the dashboard API. Data-quality problems are
// reported as AppErrors so the dashboard can show them verbatim instead of
// hiding them behind a generic failure.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so copies made
// by Wrap and WithMessage still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrInvalidAPIKey  = &AppError{Code: "INVALID_API_KEY", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
)

// Data-quality errors. They halt the computation for the affected month or
// year and are never replaced by a zero.
var (
	ErrMissingPrice       = &AppError{Code: "MISSING_PRICE", Message: "No price recorded for a basket item in this month", StatusCode: http.StatusUnprocessableEntity}
	ErrMissingIncome      = &AppError{Code: "MISSING_INCOME", Message: "No median income recorded for this year", StatusCode: http.StatusUnprocessableEntity}
	ErrMissingBaseline    = &AppError{Code: "MISSING_BASELINE", Message: "Baseline month is missing from the basket cost series", StatusCode: http.StatusUnprocessableEntity}
	ErrUnitMismatch       = &AppError{Code: "UNIT_MISMATCH", Message: "Basket item unit differs from the price record unit", StatusCode: http.StatusUnprocessableEntity}
	ErrUncategorizedItem  = &AppError{Code: "UNCATEGORIZED_ITEM", Message: "Item has no food category", StatusCode: http.StatusUnprocessableEntity}
	ErrDuplicateRecord    = &AppError{Code: "DUPLICATE_RECORD", Message: "Input table contains a duplicate key", StatusCode: http.StatusUnprocessableEntity}
	ErrInvalidInputFile   = &AppError{Code: "INVALID_INPUT_FILE", Message: "Input file could not be read", StatusCode: http.StatusUnprocessableEntity}
	ErrDatasetNotLoaded   = &AppError{Code: "DATASET_NOT_LOADED", Message: "No dataset has been loaded yet", StatusCode: http.StatusServiceUnavailable}
	ErrPipelineNotEnabled = &AppError{Code: "PIPELINE_NOT_CONFIGURED", Message: "Pipeline endpoints are not configured", StatusCode: http.StatusServiceUnavailable}
)

// Lookup errors.
var (
	ErrItemNotFound = &AppError{Code: "ITEM_NOT_FOUND", Message: "Item not found", StatusCode: http.StatusNotFound}
)
