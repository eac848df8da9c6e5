package etl

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Chart labels and captions.
const (
	ChartTitle        = "ETL load results"
	ChartYLabel       = "Records"
	ChartSuccessLabel = "Success"
	ChartErrorsLabel  = "Errors"
)

const textBarWidth = 40

// RenderTextChart draws a two-bar horizontal chart.
func RenderTextChart(w io.Writer, success, errors int) error {
	maxVal := max(success, errors, 1)
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", ChartTitle, ChartYLabel)
	for _, bar := range []struct {
		label string
		n     int
	}{{ChartSuccessLabel, success}, {ChartErrorsLabel, errors}} {
		width := bar.n * textBarWidth / maxVal
		if bar.n > 0 && width == 0 {
			width = 1
		}
		fmt.Fprintf(&b, "%-8s| %s %d\n", bar.label, strings.Repeat("#", width), bar.n)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

var (
	chartBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	chartAxis       = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
	chartSuccess    = color.NRGBA{R: 46, G: 139, B: 87, A: 255}
	chartErrors     = color.NRGBA{R: 205, G: 55, B: 55, A: 255}
)

const (
	chartWidth  = 400
	chartHeight = 300
	chartMargin = 30
	chartBarW   = 100
)

// ChartImage builds a vertical two-bar chart: success on the left, errors on the right.
func ChartImage(success, errors int) *image.NRGBA {
	img := imaging.New(chartWidth, chartHeight, chartBackground)
	baseY := chartHeight - chartMargin
	plotH := baseY - chartMargin
	maxVal := max(success, errors, 1)

	img = imaging.Paste(img, imaging.New(chartWidth-2*chartMargin, 2, chartAxis), image.Pt(chartMargin, baseY))

	slot := (chartWidth - 2*chartMargin) / 2
	for i, bar := range []struct {
		n int
		c color.NRGBA
	}{{success, chartSuccess}, {errors, chartErrors}} {
		h := bar.n * plotH / maxVal
		if h == 0 {
			continue
		}
		x := chartMargin + i*slot + (slot-chartBarW)/2
		img = imaging.Paste(img, imaging.New(chartBarW, h, bar.c), image.Pt(x, baseY-h))
	}
	return img
}

// RenderImageChart saves ChartImage to path. The format follows the extension;
// .webp is encoded losslessly, anything else goes through imaging.
func RenderImageChart(path string, success, errors int) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	img := ChartImage(success, errors)
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := webp.Encode(f, img, &webp.Options{Lossless: true}); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return imaging.Save(img, path)
}
