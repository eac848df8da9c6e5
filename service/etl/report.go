package etl

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

// Output file names inside Reporter.OutputDir.
const (
	LoadedFileName = "loaded_data.csv"
	ErrorsFileName = "errors.csv"
)

var (
	recordHeader    = []string{"store_name", "product_name", "category", "price", "quantity", "supplier"}
	rejectionHeader = []string{"row", "error"}
)

// Reporter writes the audit files and the summary chart of a pass.
type Reporter struct {
	OutputDir string
	// ChartFile is an optional .png/.jpg/.webp path for an image chart.
	ChartFile string
	// Out receives the text chart; nil skips it.
	Out    io.Writer
	Logger *slog.Logger
}

// AuditFiles are the paths written by WriteAudit.
type AuditFiles struct {
	Loaded string `json:"loaded_file"`
	Errors string `json:"errors_file"`
}

// WriteAudit writes loaded_data.csv and errors.csv, creating OutputDir if needed.
func (r *Reporter) WriteAudit(records []Record, rejections []Rejection) (AuditFiles, error) {
	files := AuditFiles{
		Loaded: filepath.Join(r.OutputDir, LoadedFileName),
		Errors: filepath.Join(r.OutputDir, ErrorsFileName),
	}
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return files, fmt.Errorf("create output dir: %w", err)
	}
	if err := writeFile(files.Loaded, func(w io.Writer) error { return WriteRecordsCSV(w, records) }); err != nil {
		return files, err
	}
	if err := writeFile(files.Errors, func(w io.Writer) error { return WriteRejectionsCSV(w, rejections) }); err != nil {
		return files, err
	}
	r.logger().Info("report: audit files written", "loaded", files.Loaded, "errors", files.Errors)
	return files, nil
}

// Chart renders the success/error chart. Failures are logged, never returned.
func (r *Reporter) Chart(success, errors int) {
	if r.Out != nil {
		if err := RenderTextChart(r.Out, success, errors); err != nil {
			r.logger().Warn("report: text chart failed", "error", err)
		}
	}
	if r.ChartFile != "" {
		if err := RenderImageChart(r.ChartFile, success, errors); err != nil {
			r.logger().Warn("report: image chart failed", "path", r.ChartFile, "error", err)
			return
		}
		r.logger().Info("report: chart saved", "path", r.ChartFile)
	}
}

func (r *Reporter) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// WriteRecordsCSV writes records with a header row.
func WriteRecordsCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(recordHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.StoreName,
			rec.ProductName,
			rec.Category,
			strconv.FormatFloat(rec.Price, 'f', -1, 64),
			strconv.Itoa(rec.Quantity),
			rec.Supplier,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRejectionsCSV writes rejections with a header row.
func WriteRejectionsCSV(w io.Writer, rejections []Rejection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rejectionHeader); err != nil {
		return err
	}
	for _, rej := range rejections {
		if err := cw.Write([]string{strconv.Itoa(rej.Row), rej.Error}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
