package figure

import (
	"github.com/KaramelBytes/studyloom-cli/internal/analysis"
)

// Build returns the study figures for a report in a fixed order. The
// timeline is omitted when its subject has no observations.
func Build(r *analysis.Report, opt Options) ([]*Figure, error) {
	var figs []*Figure
	add := func(f *Figure, err error) error {
		if err != nil {
			return err
		}
		figs = append(figs, f)
		return nil
	}
	if err := add(ObservationsByRegimen(r.Observations, opt)); err != nil {
		return nil, err
	}
	if err := add(SexDistribution(r.Sexes, opt)); err != nil {
		return nil, err
	}
	if err := add(FinalVolumeBoxPlot(r.Outliers, opt)); err != nil {
		return nil, err
	}
	if len(r.Timeline) > 0 {
		if err := add(Timeline(r.TimelineID, regimenOf(r, r.TimelineID), r.Timeline, opt)); err != nil {
			return nil, err
		}
	}
	if err := add(WeightVsVolume(r.Regression, false, opt)); err != nil {
		return nil, err
	}
	if err := add(WeightVsVolume(r.Regression, true, opt)); err != nil {
		return nil, err
	}
	return figs, nil
}

func regimenOf(r *analysis.Report, id string) string {
	for _, rec := range r.Cleaned {
		if rec.ID == id {
			reg, _ := rec.Regimen()
			return reg
		}
	}
	return ""
}
