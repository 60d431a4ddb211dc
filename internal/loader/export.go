package loader

import (
	"encoding/csv"
	"io"
	"os"

	"foodafford/internal/affordability"
	apperrors "foodafford/internal/errors"
)

// MetricsHeader is the column layout of the affordability export.
var MetricsHeader = []string{
	"Date",
	"Basket_Cost_Euro",
	"Annualized_Cost_Euro",
	"Median_Income_Euro",
	"Affordability_Ratio",
	"Affordability_Index",
}

// WriteMetricsCSV writes metrics at full precision, one row per month.
func WriteMetricsCSV(w io.Writer, metrics []affordability.Metric) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(MetricsHeader); err != nil {
		return err
	}
	for _, m := range metrics {
		row := []string{
			m.Month.Format("2006-01-02"),
			m.BasketCost.String(),
			m.AnnualizedCost.String(),
			m.Income.String(),
			m.Ratio.String(),
			m.Index.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportMetrics writes the metrics CSV to path, replacing any existing file.
func ExportMetrics(path string, metrics []affordability.Metric) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := WriteMetricsCSV(f, metrics); err != nil {
		f.Close()
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := f.Close(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
