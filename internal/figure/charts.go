package figure

import (
	"fmt"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/KaramelBytes/studyloom-cli/internal/analysis"
	"github.com/KaramelBytes/studyloom-cli/internal/study"
)

const volumeAxis = "Tumor Volume (mm3)"

// ObservationsByRegimen is a bar chart of rows per regimen.
func ObservationsByRegimen(counts []study.Count, opt Options) (*Figure, error) {
	if len(counts) == 0 {
		return nil, fmt.Errorf("observations_by_regimen: %w", ErrNoData)
	}
	w, h := opt.size()
	bars := make([]chart.Value, len(counts))
	top := 0.0
	for i, c := range counts {
		bars[i] = chart.Value{Value: float64(c.Count), Label: c.Value}
		if v := float64(c.Count); v > top {
			top = v
		}
	}
	barWidth := (w - 120) / (2 * len(counts))
	barWidth = max(10, min(60, barWidth))

	title := "# of Observed Mouse Timepoints by Regimen"
	bc := &chart.BarChart{
		Title:      title,
		Width:      w,
		Height:     h,
		BarWidth:   barWidth,
		BarSpacing: barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 80}},
		XAxis:      chart.Style{TextRotationDegrees: 90},
		YAxis: chart.YAxis{
			Name:  "# of Observed Mouse Timepoints",
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: bars,
	}
	return &Figure{Name: "observations_by_regimen", Title: title, c: bc}, nil
}

// SexDistribution is a pie chart of rows per sex with percentage labels.
func SexDistribution(counts []study.Count, opt Options) (*Figure, error) {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	if total == 0 {
		return nil, fmt.Errorf("sex_distribution: %w", ErrNoData)
	}
	w, h := opt.size()
	values := make([]chart.Value, len(counts))
	for i, c := range counts {
		pct := float64(c.Count) * 100 / float64(total)
		values[i] = chart.Value{Value: float64(c.Count), Label: fmt.Sprintf("%s %.1f%%", c.Value, pct)}
	}
	title := "Mice Sex Distribution"
	pc := &chart.PieChart{
		Title:      title,
		Width:      w,
		Height:     h,
		Background: background,
		Values:     values,
	}
	return &Figure{Name: "sex_distribution", Title: title, c: pc}, nil
}

// FinalVolumeBoxPlot draws one box per regimen from Q1 to Q3 with a median
// bar, whiskers reaching the furthest volumes inside the fences and the
// flagged outliers as red markers.
func FinalVolumeBoxPlot(results []analysis.OutlierResult, opt Options) (*Figure, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("final_volume_boxplot: %w", ErrNoData)
	}
	w, h := opt.size()
	box := chart.Style{StrokeWidth: 1.5, StrokeColor: chart.ColorBlue}
	median := chart.Style{StrokeWidth: 2, StrokeColor: drawing.Color{R: 255, G: 127, B: 14, A: 255}}

	var (
		series           []chart.Series
		ticks            []chart.Tick
		all              []float64
		fliersX, fliersY []float64
	)
	segment := func(name string, st chart.Style, x0, x1, y0, y1 float64) {
		series = append(series, chart.ContinuousSeries{Name: name, Style: st, XValues: []float64{x0, x1}, YValues: []float64{y0, y1}})
	}
	for i, r := range results {
		x := float64(i + 1)
		ticks = append(ticks, chart.Tick{Value: x, Label: r.Regimen})
		all = append(all, r.Volumes...)
		lo, hi := whiskers(r)

		series = append(series, chart.ContinuousSeries{
			Name:    r.Regimen,
			Style:   box,
			XValues: []float64{x - 0.3, x + 0.3, x + 0.3, x - 0.3, x - 0.3},
			YValues: []float64{r.Q1, r.Q1, r.Q3, r.Q3, r.Q1},
		})
		segment(r.Regimen+" median", median, x-0.3, x+0.3, r.Median, r.Median)
		segment(r.Regimen+" lower whisker", box, x, x, r.Q1, lo)
		segment(r.Regimen+" upper whisker", box, x, x, r.Q3, hi)
		segment(r.Regimen+" lower cap", box, x-0.15, x+0.15, lo, lo)
		segment(r.Regimen+" upper cap", box, x-0.15, x+0.15, hi, hi)

		for _, f := range r.Flagged {
			fliersX = append(fliersX, x)
			fliersY = append(fliersY, f.TumorVolume)
		}
	}
	if len(fliersX) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "outliers",
			Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: 6, DotColor: drawing.ColorRed},
			XValues: fliersX,
			YValues: fliersY,
		})
	}

	title := "Tumor growth by treatment"
	c := &chart.Chart{
		Title:      title,
		Width:      w,
		Height:     h,
		Background: background,
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0.5, Max: float64(len(results)) + 0.5},
		},
		YAxis:  chart.YAxis{Name: "Final " + volumeAxis, Range: padded(all...)},
		Series: series,
	}
	return &Figure{Name: "final_volume_boxplot", Title: title, c: c}, nil
}

// whiskers returns the smallest and largest volumes inside the fences,
// falling back to the box edges when every value is flagged.
func whiskers(r analysis.OutlierResult) (lo, hi float64) {
	lo, hi = r.Q1, r.Q3
	inside := make([]float64, 0, len(r.Volumes))
	for _, v := range r.Volumes {
		if v >= r.Lower && v <= r.Upper {
			inside = append(inside, v)
		}
	}
	if len(inside) == 0 {
		return lo, hi
	}
	sort.Float64s(inside)
	return min(inside[0], r.Q1), max(inside[len(inside)-1], r.Q3)
}

// Timeline is a line plot of one subject's tumor volume over time.
func Timeline(id, regimen string, pts []study.Point, opt Options) (*Figure, error) {
	if len(pts) == 0 {
		return nil, fmt.Errorf("timeline_%s: %w", id, ErrNoData)
	}
	w, h := opt.size()
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = float64(p.Timepoint)
		ys[i] = p.TumorVolume
	}
	title := fmt.Sprintf("mouse %s", id)
	if regimen != "" {
		title = fmt.Sprintf("%s treatment of mouse %s", regimen, id)
	}
	c := &chart.Chart{
		Title:      title,
		Width:      w,
		Height:     h,
		Background: background,
		XAxis:      chart.XAxis{Name: "Timepoint (days)", Range: padded(xs...)},
		YAxis:      chart.YAxis{Name: volumeAxis, Range: padded(ys...)},
		Series: []chart.Series{chart.ContinuousSeries{
			Name:    id,
			Style:   chart.Style{StrokeWidth: 2, StrokeColor: chart.ColorBlue, DotWidth: 3, DotColor: chart.ColorBlue},
			XValues: xs,
			YValues: ys,
		}},
	}
	return &Figure{Name: "timeline_" + id, Title: title, c: c}, nil
}

// WeightVsVolume scatters per-subject mean weight against mean tumor volume.
// With fit set it adds the regression line and its equation.
func WeightVsVolume(reg analysis.RegressionResult, fit bool, opt Options) (*Figure, error) {
	if len(reg.Weights) == 0 {
		return nil, fmt.Errorf("weight_vs_volume: %w", ErrNoData)
	}
	w, h := opt.size()
	series := []chart.Series{chart.ContinuousSeries{
		Name:    "mice",
		Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: 5, DotColor: chart.ColorBlue},
		XValues: reg.Weights,
		YValues: reg.Volumes,
	}}
	yvals := append([]float64(nil), reg.Volumes...)

	name := "weight_vs_volume"
	title := "Mouse Weight Versus Average Tumor Volume"
	if fit {
		name += "_regression"
		xs := append([]float64(nil), reg.Weights...)
		sort.Float64s(xs)
		lineX := []float64{xs[0], xs[len(xs)-1]}
		lineY := reg.Fit.PredictAll(lineX)
		yvals = append(yvals, lineY...)
		series = append(series,
			chart.ContinuousSeries{
				Name:    "fit",
				Style:   chart.Style{StrokeWidth: 2, StrokeColor: drawing.ColorRed},
				XValues: lineX,
				YValues: lineY,
			},
			chart.AnnotationSeries{Annotations: []chart.Value2{{
				XValue: lineX[0],
				YValue: lineY[0],
				Label:  fmt.Sprintf("y = %.2fx + %.2f", reg.Slope, reg.Intercept),
			}}},
		)
	}
	c := &chart.Chart{
		Title:      title,
		Width:      w,
		Height:     h,
		Background: background,
		XAxis:      chart.XAxis{Name: "Weight (g)", Range: padded(reg.Weights...)},
		YAxis:      chart.YAxis{Name: "Average " + volumeAxis, Range: padded(yvals...)},
		Series:     series,
	}
	return &Figure{Name: name, Title: title, c: c}, nil
}
