package etl

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
)

// Record is a validated, normalized input row ready to load.
type Record struct {
	StoreName   string  `json:"store_name"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Supplier    string  `json:"supplier"`
}

// Rejection is a row that failed validation. Row is the 0-based data row index.
type Rejection struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// rawRow is the subset of input columns the pipeline reads; other columns are ignored.
type rawRow struct {
	StoreName   string `mapstructure:"store_name"`
	ProductName string `mapstructure:"product_name"`
	Category    string `mapstructure:"category"`
	Price       string `mapstructure:"price"`
	Quantity    string `mapstructure:"quantity"`
	Supplier    string `mapstructure:"supplier"`
}

// Transform splits rows into valid records and rejections, preserving input order in both.
// It never fails as a whole.
func Transform(t *Table) ([]Record, []Rejection) {
	records := make([]Record, 0, len(t.Rows))
	rejections := make([]Rejection, 0)

	for idx, row := range t.Rows {
		rec, err := transformRow(row)
		if err != nil {
			slog.Warn("transform: row rejected", "row", idx, "error", err)
			rejections = append(rejections, Rejection{Row: idx, Error: err.Error()})
			continue
		}
		records = append(records, rec)
	}
	slog.Info("transform: done", "valid", len(records), "rejected", len(rejections))
	return records, rejections
}

func transformRow(row Row) (Record, error) {
	var raw rawRow
	if err := mapstructure.Decode(map[string]string(row), &raw); err != nil {
		return Record{}, err
	}

	rec := Record{
		StoreName:   strings.TrimSpace(raw.StoreName),
		ProductName: strings.TrimSpace(raw.ProductName),
		Category:    Capitalize(strings.TrimSpace(raw.Category)),
		Supplier:    strings.TrimSpace(raw.Supplier),
	}

	required := []struct{ field, value string }{
		{"store_name", rec.StoreName},
		{"product_name", rec.ProductName},
		{"category", rec.Category},
		{"supplier", rec.Supplier},
	}
	for _, r := range required {
		if IsMissing(r.value) {
			return Record{}, &ValidationError{Field: r.field, Value: r.value, Message: "value is missing"}
		}
	}

	price, err := parsePrice(raw.Price)
	if err != nil {
		return Record{}, err
	}
	quantity, err := parseQuantity(raw.Quantity)
	if err != nil {
		return Record{}, err
	}
	rec.Price = price
	rec.Quantity = quantity
	return rec, nil
}

func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if IsMissing(s) {
		return 0, &ValidationError{Field: "price", Value: s, Message: "value is missing"}
	}
	v, err := parseNumber(s)
	if err != nil {
		return 0, &ValidationError{Field: "price", Value: s, Message: "not a number"}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Field: "price", Value: s, Message: "must be a positive number"}
	}
	// Prices are stored with two decimals; validate what will be stored.
	cents := decimal.NewFromFloat(v).Round(2)
	if !cents.IsPositive() {
		return 0, &ValidationError{Field: "price", Value: s, Message: "must be a positive number"}
	}
	return cents.InexactFloat64(), nil
}

// parseNumber parses a decimal float. Hex floats such as 0x1p4 are not numbers here.
func parseNumber(s string) (float64, error) {
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}

// parseQuantity accepts integers and integral floats such as "3.0".
func parseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if IsMissing(s) {
		return 0, &ValidationError{Field: "quantity", Value: s, Message: "value is missing"}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := parseNumber(s)
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return 0, &ValidationError{Field: "quantity", Value: s, Message: "not an integer"}
		}
		n = int(f)
	}
	if n < 0 {
		return 0, &ValidationError{Field: "quantity", Value: s, Message: "must not be negative"}
	}
	return n, nil
}
