package etl

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

func TestWriteAudit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	rep := &Reporter{OutputDir: dir}
	files, err := rep.WriteAudit(
		[]Record{{StoreName: "Shop, A", ProductName: "Widget", Category: "Tools", Price: 9.99, Quantity: 3, Supplier: "Acme"}},
		[]Rejection{{Row: 1, Error: "price: must be a positive number"}},
	)
	if err != nil {
		t.Fatalf("WriteAudit: %v", err)
	}

	loaded, _ := os.ReadFile(files.Loaded)
	wantLoaded := "store_name,product_name,category,price,quantity,supplier\n\"Shop, A\",Widget,Tools,9.99,3,Acme\n"
	if string(loaded) != wantLoaded {
		t.Errorf("loaded_data.csv = %q, want %q", loaded, wantLoaded)
	}
	errs, _ := os.ReadFile(files.Errors)
	wantErrs := "row,error\n1,price: must be a positive number\n"
	if string(errs) != wantErrs {
		t.Errorf("errors.csv = %q, want %q", errs, wantErrs)
	}
	if filepath.Base(files.Loaded) != LoadedFileName || filepath.Base(files.Errors) != ErrorsFileName {
		t.Errorf("files = %+v", files)
	}
}

func TestWriteAudit_EmptyHasHeaders(t *testing.T) {
	files, err := (&Reporter{OutputDir: t.TempDir()}).WriteAudit(nil, nil)
	if err != nil {
		t.Fatalf("WriteAudit: %v", err)
	}
	errs, _ := os.ReadFile(files.Errors)
	if string(errs) != "row,error\n" {
		t.Errorf("errors.csv = %q", errs)
	}
}

func TestRenderTextChart(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderTextChart(&buf, 4, 1); err != nil {
		t.Fatalf("RenderTextChart: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.Contains(lines[0], ChartTitle) {
		t.Errorf("title line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], ChartSuccessLabel) || !strings.HasSuffix(lines[1], " 4") {
		t.Errorf("success line = %q", lines[1])
	}
	if strings.Count(lines[1], "#") != textBarWidth || strings.Count(lines[2], "#") != textBarWidth/4 {
		t.Errorf("bar widths wrong:\n%s", out)
	}
}

func TestRenderTextChart_AllZero(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderTextChart(&buf, 0, 0); err != nil {
		t.Fatalf("RenderTextChart: %v", err)
	}
	if strings.Contains(buf.String(), "#") {
		t.Errorf("zero counts drew bars:\n%s", buf.String())
	}
}

func TestChartImage_BarHeights(t *testing.T) {
	img := ChartImage(2, 1)
	if img.Bounds() != image.Rect(0, 0, chartWidth, chartHeight) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	slot := (chartWidth - 2*chartMargin) / 2
	successX := chartMargin + slot/2
	errorsX := chartMargin + slot + slot/2
	topY := chartMargin + 1
	midY := chartHeight - chartMargin - 1

	if img.NRGBAAt(successX, topY) != chartSuccess {
		t.Errorf("success bar should reach the top: %v", img.NRGBAAt(successX, topY))
	}
	if img.NRGBAAt(errorsX, topY) != chartBackground {
		t.Errorf("errors bar should be half height: %v", img.NRGBAAt(errorsX, topY))
	}
	if img.NRGBAAt(errorsX, midY) != chartErrors {
		t.Errorf("errors bar missing: %v", img.NRGBAAt(errorsX, midY))
	}
}

func TestRenderImageChart_Formats(t *testing.T) {
	dir := t.TempDir()

	png := filepath.Join(dir, "chart.png")
	if err := RenderImageChart(png, 3, 1); err != nil {
		t.Fatalf("png: %v", err)
	}
	if img, err := imaging.Open(png); err != nil || img.Bounds().Dx() != chartWidth {
		t.Errorf("png reopen = %v", err)
	}

	wp := filepath.Join(dir, "sub", "chart.webp")
	if err := RenderImageChart(wp, 3, 1); err != nil {
		t.Fatalf("webp: %v", err)
	}
	f, err := os.Open(wp)
	if err != nil {
		t.Fatalf("open webp: %v", err)
	}
	defer f.Close()
	img, err := webp.Decode(f)
	if err != nil {
		t.Fatalf("decode webp: %v", err)
	}
	if img.Bounds().Dx() != chartWidth {
		t.Errorf("webp width = %d", img.Bounds().Dx())
	}
}

func TestReporterChart_FailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	blocker := filepath.Join(t.TempDir(), "file")
	os.WriteFile(blocker, nil, 0o644)
	rep := &Reporter{Out: &buf, ChartFile: filepath.Join(blocker, "chart.png")}
	rep.Chart(1, 1)
	if !strings.Contains(buf.String(), ChartTitle) {
		t.Errorf("text chart not written: %q", buf.String())
	}
}
