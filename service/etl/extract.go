package etl

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// RequiredColumns must all be present in the input header.
var RequiredColumns = []string{"store_name", "product_name", "category", "price", "quantity", "supplier"}

// Row maps column name to raw cell text.
type Row map[string]string

// Table is the in-memory result of extraction: columns in file order and data rows in file order.
type Table struct {
	Source  string
	Columns []string
	Rows    []Row
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Extract reads the comma-delimited file at path.
func Extract(path string) (*Table, error) {
	slog.Info("extract: reading file", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	return parse(path, data)
}

// ExtractReader reads comma-delimited data from r; name is used in errors and as Table.Source.
func ExtractReader(name string, r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &FileAccessError{Path: name, Err: err}
	}
	return parse(name, data)
}

func parse(name string, data []byte) (*Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ParseError{Path: name, Err: errors.New("file is empty")}
	}
	if err != nil {
		return nil, csvParseError(name, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &ParseError{Path: name, Err: fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))}
	}

	// Short rows are padded with empty cells and left to Transform to reject;
	// rows with more cells than the header are malformed.
	reader.FieldsPerRecord = -1
	t := &Table{Source: name, Columns: header, Rows: make([]Row, 0)}
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvParseError(name, err)
		}
		if len(rec) > len(header) {
			line, _ := reader.FieldPos(len(header))
			return nil, &ParseError{Path: name, Line: line, Err: fmt.Errorf("expected %d fields, saw %d", len(header), len(rec))}
		}
		row := make(Row, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	slog.Debug("extract: done", "source", name, "rows", len(t.Rows))
	return t, nil
}

func csvParseError(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Path: name, Line: pe.Line, Err: pe.Err}
	}
	return &ParseError{Path: name, Err: err}
}
