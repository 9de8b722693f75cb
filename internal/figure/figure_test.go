package figure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/studyloom-cli/internal/analysis"
	"github.com/KaramelBytes/studyloom-cli/internal/study"
)

func report(t *testing.T) *analysis.Report {
	t.Helper()
	var in analysis.Input
	add := func(id, reg, sex string, w float64, vols ...float64) {
		in.Subjects = append(in.Subjects, study.Subject{ID: id, Regimen: reg, Sex: sex, Weight: w})
		for i, v := range vols {
			in.Observations = append(in.Observations, study.Observation{ID: id, Timepoint: 5 * i, TumorVolume: v})
		}
	}
	add("c1", "Capomulin", "Male", 15, 45, 43.1, 40.2)
	add("c2", "Capomulin", "Female", 17, 45, 44.0, 41.7)
	add("c3", "Capomulin", "Male", 21, 45, 46.3, 47.9)
	add("r1", "Ramicane", "Female", 19, 45, 38.0)
	add("r2", "Ramicane", "Female", 20, 45, 36.5)
	for i := 0; i < 7; i++ {
		add(fmt.Sprintf("r%d", i+3), "Ramicane", "Male", 20, 45, 30+float64(i))
	}
	add("r99", "Ramicane", "Male", 20, 45, 90)
	opt := analysis.DefaultOptions()
	opt.OutlierRegimens = []string{"Capomulin", "Ramicane"}
	opt.TimelineMouse = "c1"
	r, err := analysis.Run(in, opt)
	require.NoError(t, err)
	return r
}

func TestBuildNamesAndOrder(t *testing.T) {
	figs, err := Build(report(t), DefaultOptions())
	require.NoError(t, err)
	var names []string
	for _, f := range figs {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"observations_by_regimen",
		"sex_distribution",
		"final_volume_boxplot",
		"timeline_c1",
		"weight_vs_volume",
		"weight_vs_volume_regression",
	}, names)
	assert.Equal(t, "Capomulin treatment of mouse c1", figs[3].Title)
}

func TestBuildSkipsEmptyTimeline(t *testing.T) {
	r := report(t)
	r.Timeline = nil
	figs, err := Build(r, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, figs, 5)
}

func TestRenderPNGAndSVG(t *testing.T) {
	figs, err := Build(report(t), Options{Width: 640, Height: 480})
	require.NoError(t, err)
	for _, f := range figs {
		var png bytes.Buffer
		require.NoError(t, f.Render(&png, PNG), f.Name)
		assert.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")), f.Name)

		var svg bytes.Buffer
		require.NoError(t, f.Render(&svg, SVG), f.Name)
		assert.Contains(t, svg.String(), "<svg", f.Name)
	}
}

func TestBoxPlotMarksOutliers(t *testing.T) {
	r := report(t)
	require.Len(t, r.Outliers, 2)
	ram := r.Outliers[1]
	require.Len(t, ram.Flagged, 1)
	assert.Equal(t, "r99", ram.Flagged[0].ID)

	lo, hi := whiskers(ram)
	assert.Less(t, hi, 90.0)
	assert.LessOrEqual(t, lo, ram.Q1)
}

func TestWhiskersAllFlagged(t *testing.T) {
	r := analysis.OutlierResult{Volumes: []float64{1, 100}, Lower: 40, Upper: 60}
	r.Q1, r.Q3 = 45, 55
	lo, hi := whiskers(r)
	assert.Equal(t, 45.0, lo)
	assert.Equal(t, 55.0, hi)
}

func TestNoData(t *testing.T) {
	_, err := ObservationsByRegimen(nil, DefaultOptions())
	assert.True(t, errors.Is(err, ErrNoData))
	_, err = SexDistribution([]study.Count{{Value: "Male"}}, DefaultOptions())
	assert.True(t, errors.Is(err, ErrNoData))
	_, err = Timeline("x", "", nil, DefaultOptions())
	assert.True(t, errors.Is(err, ErrNoData))
	_, err = WeightVsVolume(analysis.RegressionResult{}, true, DefaultOptions())
	assert.True(t, errors.Is(err, ErrNoData))

	var f *Figure
	assert.True(t, errors.Is(f.Render(&bytes.Buffer{}, PNG), ErrNoData))
}

func TestTimelineSinglePoint(t *testing.T) {
	f, err := Timeline("k1", "Ketapril", []study.Point{{Timepoint: 0, TumorVolume: 45}}, DefaultOptions())
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf, PNG))
}

func TestWriteAll(t *testing.T) {
	figs, err := Build(report(t), Options{Width: 400, Height: 300})
	require.NoError(t, err)
	dir := filepath.Join(t.TempDir(), "figures")

	out, err := WriteAll(context.Background(), dir, figs, WriteOptions{Format: SVG, Jobs: 2})
	require.NoError(t, err)
	require.Len(t, out, len(figs))
	for i, w := range out {
		assert.Equal(t, figs[i].Name, w.Name)
		assert.True(t, strings.HasSuffix(w.Path, ".svg"))
		info, err := os.Stat(w.Path)
		require.NoError(t, err)
		assert.Equal(t, int64(w.Bytes), info.Size())
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, len(figs))
}

func TestWriteAllCancelled(t *testing.T) {
	figs, err := Build(report(t), DefaultOptions())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = WriteAll(ctx, t.TempDir(), figs, WriteOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("SVG")
	require.NoError(t, err)
	assert.Equal(t, SVG, f)
	assert.Equal(t, ".svg", f.Ext())
	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)
	_, err = ParseFormat("gif")
	assert.Error(t, err)
}
