package batch

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/idalopban/ComVida/internal/calc/anthro"
	"github.com/xuri/excelize/v2"
)

// Columns expected in the first sheet, after a header row.
var Columns = []string{"name", "sex", "age", "weight", "height", "triceps", "biceps", "subscapular", "suprailiac"}

// ReadItems parses subjects from an XLSX workbook. Rows that cannot be
// parsed are skipped and counted.
func ReadItems(r io.Reader) ([]Item, int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, 0, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, 0, ErrNoItems
	}

	var items []Item
	skipped := 0
	for _, row := range rows[1:] {
		item, err := parseRow(row)
		if err != nil {
			skipped++
			continue
		}
		items = append(items, item)
	}
	return items, skipped, nil
}

func parseRow(row []string) (Item, error) {
	if len(row) < 5 {
		return Item{}, fmt.Errorf("short row")
	}
	sex, err := parseSex(row[1])
	if err != nil {
		return Item{}, err
	}
	age, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return Item{}, fmt.Errorf("age: %w", err)
	}
	weight, err := toFloat(row[3])
	if err != nil {
		return Item{}, fmt.Errorf("weight: %w", err)
	}
	height, err := toFloat(row[4])
	if err != nil {
		return Item{}, fmt.Errorf("height: %w", err)
	}
	return Item{
		Name:    strings.TrimSpace(row[0]),
		Subject: anthro.Subject{Sex: sex, Age: age, WeightKg: weight, HeightCm: height},
		Skinfolds: anthro.Skinfolds{
			Triceps:     optional(row, 5),
			Biceps:      optional(row, 6),
			Subscapular: optional(row, 7),
			Suprailiac:  optional(row, 8),
		},
	}, nil
}

func parseSex(s string) (anthro.Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "masculino", "male", "h", "hombre":
		return anthro.Male, nil
	case "f", "femenino", "female", "mujer":
		return anthro.Female, nil
	}
	return "", fmt.Errorf("unknown sex %q", s)
}

// optional returns nil for missing or unparsable cells.
func optional(row []string, i int) *float64 {
	if i >= len(row) || strings.TrimSpace(row[i]) == "" {
		return nil
	}
	v, err := toFloat(row[i])
	if err != nil {
		return nil
	}
	return &v
}

// toFloat accepts both "12.5" and "12,5".
func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}
