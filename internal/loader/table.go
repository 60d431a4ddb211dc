// Package loader reads the price, income, basket and category tables from
// CSV or Excel files into affordability inputs, and writes the metrics
// export.
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "foodafford/internal/errors"
)

// table is a header plus data rows read from one file.
type table struct {
	ctx     context.Context
	path    string
	columns map[string]int
	rows    [][]string
}

var nonWord = regexp.MustCompile(`[^a-z0-9]+`)

// normalizeHeader maps "Price per kg or litre" and "Price-Per-KG" to
// price_per_kg_or_litre style keys.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	return strings.Trim(nonWord.ReplaceAllString(h, "_"), "_")
}

func readTable(ctx context.Context, path string) (*table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		records, err = readExcel(path)
	default:
		records, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInputFile, fmt.Sprintf("%s: file is empty", path))
	}

	t := &table{ctx: ctx, path: path, columns: make(map[string]int, len(records[0]))}
	for i, h := range records[0] {
		key := normalizeHeader(h)
		if key == "" {
			continue
		}
		if _, dup := t.columns[key]; dup {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInputFile, fmt.Sprintf("%s: column %q appears twice", path, h))
		}
		t.columns[key] = i
	}
	for _, r := range records[1:] {
		if blank(r) {
			t.rows = append(t.rows, nil)
			continue
		}
		t.rows = append(t.rows, r)
	}
	return t, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInputFile, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var out [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.WithMessage(apperrors.ErrInvalidInputFile, fmt.Sprintf("%s: %v", path, err)), err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// readExcel reads the first sheet of a workbook.
func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInputFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInputFile, fmt.Sprintf("%s: workbook has no sheets", path))
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.Wrap(apperrors.WithMessage(apperrors.ErrInvalidInputFile, fmt.Sprintf("%s: %v", path, err)), err)
	}
	return rows, nil
}

// column finds the first alias present in the header.
func (t *table) column(aliases ...string) (int, bool) {
	for _, a := range aliases {
		if i, ok := t.columns[a]; ok {
			return i, true
		}
	}
	return 0, false
}

func (t *table) require(aliases ...string) (int, error) {
	i, ok := t.column(aliases...)
	if !ok {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInputFile,
			fmt.Sprintf("%s: missing column %q", t.path, aliases[0]))
	}
	return i, nil
}

// each calls fn for every non-blank data row with its 1-based file line.
// It stops early once the table's context is done.
func (t *table) each(fn func(line int, row []string) error) error {
	for i, r := range t.rows {
		if err := t.ctx.Err(); err != nil {
			return err
		}
		if r == nil {
			continue
		}
		if err := fn(i+2, r); err != nil {
			return err
		}
	}
	return nil
}

func (t *table) rowError(line int, column, msg string) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput,
		fmt.Sprintf("%s:%d: column %s: %s", t.path, line, column, msg))
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

var monthLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"02/01/2006",
	"Jan-2006",
	"January 2006",
	"2006M01",
}

// parseMonth accepts the date styles seen in CSO exports and pandas output.
func parseMonth(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
