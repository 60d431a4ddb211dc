// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"foodafford/internal/affordability"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("unit", validateUnit)
		_ = v.RegisterValidation("food_category", validateFoodCategory)
		_ = v.RegisterValidation("granularity", validateGranularity)
		_ = v.RegisterValidation("price_metric", validatePriceMetric)
	}
}

func validateUnit(fl validator.FieldLevel) bool {
	_, err := affordability.ParseUnit(fl.Field().String())
	return err == nil
}

func validateFoodCategory(fl validator.FieldLevel) bool {
	_, err := affordability.ParseCategory(fl.Field().String())
	return err == nil
}

func validateGranularity(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "monthly", "annual":
		return true
	}
	return false
}

func validatePriceMetric(fl validator.FieldLevel) bool {
	switch affordability.PriceStatistic(fl.Field().String()) {
	case affordability.StatMean, affordability.StatMedian:
		return true
	}
	return false
}
