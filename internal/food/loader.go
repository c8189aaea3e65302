// Package food loads the food composition table and serves searches over
// it.
package food

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/idalopban/ComVida/internal/repo"
)

const (
	CodeColumn = "CÓDIGO"
	NameColumn = "NOMBRE DEL ALIMENTO"
)

var ErrMissingColumn = errors.New("missing column")

// sourceColumns maps cleaned CSV headers to nutrient labels. The energy
// header appears twice: kcal first, then kJ.
var sourceColumns = map[string]string{
	"Proteínas <PROCNT>":                       "Proteínas",
	"Grasa total <FAT>":                        "Grasas",
	"Carbohidratos totales <CHOCDF>":           "Carbohidratos",
	"Fibra dietaria <FIBTG>":                   "Fibra",
	"Agua <WATER>":                             "Agua",
	"Calcio <CA>":                              "Calcio",
	"Fósforo <P>":                              "Fósforo",
	"Zinc <ZN>":                                "Zinc",
	"Hierro <FE>":                              "Hierro",
	"Vitamina C <VITC>":                        "Vitamina C",
	"Sodio <NA>":                               "Sodio",
	"Potasio <K>":                              "Potasio",
	"β caroteno equivalentes totales <CARTBQ>": "Beta-Caroteno",
	"Vitamina A equivalentes totales <VITA>":   "Vitamina A",
	"Tiamina <THIA>":                           "Tiamina",
	"Riboflavina <RIBF>":                       "Riboflavina",
	"Niacina <NIA>":                            "Niacina",
	"Ácido fólico":                             "Acido Folico",
}

const energyColumn = "Energía <ENERC>"

// Parse reads the semicolon separated composition table. The row after the
// header carries units and is skipped. Decimals use a comma; cells that do
// not parse read as 0, and so do nutrient columns absent from the file.
func Parse(r io.Reader) ([]repo.Food, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	codeIdx, nameIdx := -1, -1
	labels := make([]string, len(header))
	energySeen := 0
	for i, h := range header {
		col := CleanHeader(h)
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		switch {
		case col == CodeColumn:
			codeIdx = i
		case col == NameColumn:
			nameIdx = i
		case col == energyColumn:
			if energySeen == 0 {
				labels[i] = "Kcal"
			} else if energySeen == 1 {
				labels[i] = "Kj"
			}
			energySeen++
		default:
			labels[i] = sourceColumns[col]
		}
	}
	if codeIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, CodeColumn)
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, NameColumn)
	}

	// Units row.
	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return []repo.Food{}, nil
		}
		return nil, fmt.Errorf("read units row: %w", err)
	}

	foods := []repo.Food{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(foods)+3, err)
		}
		code := cell(rec, codeIdx)
		if code == "" {
			continue
		}
		f := repo.Food{Code: code, Name: cell(rec, nameIdx)}
		for i, label := range labels {
			if label != "" {
				f.Nutrients.Set(label, ParseDecimal(cell(rec, i)))
			}
		}
		foods = append(foods, f)
	}
	return foods, nil
}

// CleanHeader folds multi-line headers onto one line.
func CleanHeader(h string) string {
	h = strings.ReplaceAll(h, "\r\n", " ")
	h = strings.ReplaceAll(h, "\n", " ")
	h = strings.ReplaceAll(h, "  ", " ")
	return strings.TrimSpace(h)
}

// ParseDecimal reads "12,5" or "12.5"; anything else is 0.
func ParseDecimal(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

