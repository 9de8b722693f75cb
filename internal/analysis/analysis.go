// Package analysis runs the tumor study pipeline over loaded tables: join,
// duplicate exclusion, per-regimen summaries, final-volume outliers and the
// weight/volume regression. It never touches the filesystem.
package analysis

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/studyloom-cli/internal/study"
)

// Options controls the pipeline.
type Options struct {
	// OutlierRegimens are the treatments inspected for final-volume outliers.
	OutlierRegimens []string
	// IQRFactor scales the interquartile range when computing fences.
	IQRFactor float64
	// RegressionRegimen selects the subjects of the weight/volume regression.
	RegressionRegimen string
	// TimelineMouse is the subject whose tumor volume is followed over time.
	TimelineMouse string
	// Unmatched decides the fate of observations without metadata.
	Unmatched study.UnmatchedPolicy
}

// DefaultOptions returns the settings used by the reference study.
func DefaultOptions() Options {
	return Options{
		OutlierRegimens:   []string{"Capomulin", "Ramicane", "Infubinol", "Ceftamin"},
		IQRFactor:         1.5,
		RegressionRegimen: "Capomulin",
		TimelineMouse:     "l509",
		Unmatched:         study.PolicyKeep,
	}
}

// Input holds the two loaded tables and the names they were read from.
type Input struct {
	Subjects     []study.Subject
	Observations []study.Observation
	MetadataName string
	ResultsName  string
}

// Report gathers every derived result of one run.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Metadata    string
	Results     string

	SubjectsLoaded     int
	SubjectIDs         int
	ObservationsLoaded int
	MiceBefore         int
	MiceAfter          int
	RowsDropped        int
	Duplicates         []string
	Unmatched          []string

	Regimens     []RegimenSummary
	Observations []study.Count
	Sexes        []study.Count
	Outliers     []OutlierResult
	Regression   RegressionResult
	Timeline     []study.Point
	TimelineID   string

	// Cleaned is the joined table after duplicate exclusion.
	Cleaned  []study.JoinedRecord
	Warnings []string
}

// Run executes the analysis and returns the report. Only loud failures are
// errors: an unmatched row under PolicyFail, an empty outlier regimen or a
// regression regimen with fewer than two subjects.
func Run(in Input, opt Options) (*Report, error) {
	if opt.IQRFactor <= 0 {
		opt.IQRFactor = 1.5
	}
	joined, err := study.Join(in.Observations, in.Subjects, opt.Unmatched)
	if err != nil {
		return nil, err
	}
	cleaned := study.Clean(joined.Records)

	r := &Report{
		RunID:              uuid.NewString(),
		GeneratedAt:        time.Now(),
		Metadata:           in.MetadataName,
		Results:            in.ResultsName,
		SubjectsLoaded:     len(in.Subjects),
		SubjectIDs:         study.CountSubjects(in.Subjects),
		ObservationsLoaded: len(in.Observations),
		MiceBefore:         study.DistinctSubjects(joined.Records),
		MiceAfter:          study.DistinctSubjects(cleaned.Records),
		RowsDropped:        cleaned.Dropped,
		Duplicates:         cleaned.Excluded,
		Unmatched:          joined.Unmatched,
		Cleaned:            cleaned.Records,
	}
	if len(joined.Unmatched) > 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%d observation identities have no metadata (policy %s)", len(joined.Unmatched), opt.Unmatched))
	}

	r.Regimens = SummarizeByRegimen(cleaned.Records)
	for _, s := range r.Regimens {
		if s.Count < 2 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("regimen %s has %d observation; dispersion is undefined", s.Regimen, s.Count))
		}
	}
	r.Observations = study.CountBy(cleaned.Records, study.ByRegimen)
	r.Sexes = study.CountBy(cleaned.Records, study.BySex)

	r.Outliers, err = FinalVolumeOutliers(study.LastTimepoints(cleaned.Records), opt.OutlierRegimens, opt.IQRFactor)
	if err != nil {
		return nil, err
	}
	r.Regression, err = WeightVolumeRegression(cleaned.Records, opt.RegressionRegimen)
	if err != nil {
		return nil, err
	}

	r.TimelineID = opt.TimelineMouse
	if r.TimelineID != "" {
		r.Timeline = study.Timeline(cleaned.Records, r.TimelineID)
		if len(r.Timeline) == 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("mouse %s has no observations after cleaning", r.TimelineID))
		}
	}
	return r, nil
}
