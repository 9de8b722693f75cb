// Package figure builds the study charts as self-contained values. Nothing
// here keeps drawing state between figures: every constructor returns a
// Figure that owns its chart and renders into any io.Writer.
package figure

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
)

// ErrNoData is returned when a figure has nothing to plot.
var ErrNoData = errors.New("no data to plot")

// Format is an output image encoding.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat accepts "png" or "svg" in any case; empty selects PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	default:
		return "", fmt.Errorf("unknown figure format %q (use png|svg)", s)
	}
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + string(f) }

func (f Format) provider() chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

// Options sets the canvas size of every figure.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions returns an 800x600 canvas.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 600}
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 600
	}
	return w, h
}

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// Figure is one named chart.
type Figure struct {
	// Name is the file stem, e.g. "sex_distribution".
	Name  string
	Title string
	c     renderable
}

// Render encodes the figure into w.
func (f *Figure) Render(w io.Writer, format Format) error {
	if f == nil || f.c == nil {
		return ErrNoData
	}
	if err := f.c.Render(format.provider(), w); err != nil {
		return fmt.Errorf("render %s: %w", f.Name, err)
	}
	return nil
}

var background = chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16}}

// padded returns a range covering vals with a 5% margin on each side. A
// single distinct value gets a unit margin.
func padded(vals ...float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	m := (hi - lo) * 0.05
	if m == 0 {
		m = 1
	}
	return &chart.ContinuousRange{Min: lo - m, Max: hi + m}
}
