// Package charts builds the chart configurations the dashboard renders.
// The shapes are frontend-agnostic: a chart is a type, axis labels and a
// list of named series of label/value points.
package charts

import (
	"time"

	"github.com/shopspring/decimal"

	"foodafford/internal/affordability"
)

// Chart types understood by the dashboard.
const (
	TypeLine = "line"
	TypeBar  = "bar"
)

var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// categoryColors follows the green/grey/red convention of the food groups.
var categoryColors = map[affordability.Category]string{
	affordability.Healthy:   "#16A34A",
	affordability.Neutral:   "#6B7280",
	affordability.Unhealthy: "#DC2626",
}

// Config defines how to render a chart.
type Config struct {
	ChartType  string   `json:"chartType"`
	Title      string   `json:"title"`
	XAxis      string   `json:"xAxis,omitempty"`
	YAxis      string   `json:"yAxis,omitempty"`
	Series     []Series `json:"series"`
	Colors     []string `json:"colors,omitempty"`
	ShowLegend bool     `json:"showLegend"`
	ShowGrid   bool     `json:"showGrid"`
}

// Series is a named list of points.
type Series struct {
	Name  string  `json:"name"`
	Data  []Point `json:"data"`
	Color string  `json:"color,omitempty"`
}

// Point is a single labelled value.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// New assembles a chart and fills in any missing series colors.
func New(chartType, title, xAxis, yAxis string, series ...Series) *Config {
	cfg := &Config{
		ChartType:  chartType,
		Title:      title,
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     series,
		ShowLegend: len(series) > 1,
		ShowGrid:   true,
	}
	cfg.Colors = make([]string, len(series))
	for i := range cfg.Series {
		if cfg.Series[i].Color == "" {
			cfg.Series[i].Color = defaultColors[i%len(defaultColors)]
		}
		if cfg.Series[i].Data == nil {
			cfg.Series[i].Data = []Point{}
		}
		cfg.Colors[i] = cfg.Series[i].Color
	}
	return cfg
}

// Line is shorthand for a line chart.
func Line(title, xAxis, yAxis string, series ...Series) *Config {
	return New(TypeLine, title, xAxis, yAxis, series...)
}

// Bar is shorthand for a bar chart.
func Bar(title, xAxis, yAxis string, series ...Series) *Config {
	return New(TypeBar, title, xAxis, yAxis, series...)
}

// CategorySeries returns an empty series colored for c.
func CategorySeries(c affordability.Category) Series {
	return Series{Name: string(c), Color: categoryColors[c]}
}

// Add appends a point rounded for display.
func (s *Series) Add(label string, v decimal.Decimal) {
	s.Data = append(s.Data, Point{Label: label, Value: Round(v)})
}

// Round converts v to two decimal places for display.
func Round(v decimal.Decimal) float64 {
	return v.Round(2).InexactFloat64()
}

// RoundTo2 rounds a float to two decimal places.
func RoundTo2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// MonthLabel formats a month for the x axis.
func MonthLabel(t time.Time) string {
	return t.Format("2006-01")
}
