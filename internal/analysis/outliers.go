package analysis

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/studyloom-cli/internal/stats"
	"github.com/KaramelBytes/studyloom-cli/internal/study"
)

// ErrEmptyRegimen is returned when an outlier regimen has no final volumes.
var ErrEmptyRegimen = errors.New("regimen has no final tumor volumes")

// Flagged is a subject whose final volume lies outside the fences.
type Flagged struct {
	ID          string
	TumorVolume float64
}

// OutlierResult is the final-volume distribution of one regimen.
type OutlierResult struct {
	Regimen string
	stats.Quartiles
	Lower   float64
	Upper   float64
	Volumes []float64
	Flagged []Flagged
}

// Sentence is the fixed console line for this regimen's bounds.
func (o OutlierResult) Sentence() string {
	return fmt.Sprintf("For %s values below %s and above %s could be outliers",
		o.Regimen, stats.FormatShort(o.Lower), stats.FormatShort(o.Upper))
}

// FinalVolumeOutliers computes, for each regimen in order, the quartiles of
// the final tumor volumes, the fences at factor k and the values strictly
// outside them. last must hold one record per subject.
func FinalVolumeOutliers(last []study.JoinedRecord, regimens []string, k float64) ([]OutlierResult, error) {
	out := make([]OutlierResult, 0, len(regimens))
	for _, reg := range regimens {
		var (
			vols []float64
			ids  []string
		)
		for _, r := range last {
			if got, ok := r.Regimen(); ok && got == reg {
				vols = append(vols, r.TumorVolume)
				ids = append(ids, r.ID)
			}
		}
		q, err := stats.ComputeQuartiles(vols)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrEmptyRegimen, reg)
		}
		res := OutlierResult{Regimen: reg, Quartiles: q, Volumes: vols}
		res.Lower, res.Upper = stats.Fences(q, k)
		for i, v := range vols {
			if stats.Outside(v, res.Lower, res.Upper) {
				res.Flagged = append(res.Flagged, Flagged{ID: ids[i], TumorVolume: v})
			}
		}
		out = append(out, res)
	}
	return out, nil
}
