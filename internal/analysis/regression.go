package analysis

import (
	"fmt"

	"github.com/KaramelBytes/studyloom-cli/internal/stats"
	"github.com/KaramelBytes/studyloom-cli/internal/study"
)

// RegressionResult relates mean weight to mean tumor volume within a regimen.
// Correlation, Slope and Intercept are rounded to two decimals; Predicted is
// computed from the unrounded fit.
type RegressionResult struct {
	Regimen     string
	Subjects    []study.SubjectAverage
	Weights     []float64
	Volumes     []float64
	Correlation float64
	Slope       float64
	Intercept   float64
	Predicted   []float64
	Fit         stats.Fit
}

// CorrelationSentence is the fixed console line for the correlation.
func (r RegressionResult) CorrelationSentence() string {
	return "The correlation between mouse weight and average tumor volume is " + stats.FormatShort(r.Correlation)
}

// Equation is the fixed console line for the fitted line.
func (r RegressionResult) Equation() string {
	return fmt.Sprintf("The Regression line is modeled by the equation y = %sx + %s",
		stats.FormatShort(r.Slope), stats.FormatShort(r.Intercept))
}

// WeightVolumeRegression fits mean tumor volume on mean weight over the
// subjects of one regimen.
func WeightVolumeRegression(records []study.JoinedRecord, regimen string) (RegressionResult, error) {
	avgs := study.SubjectAverages(records, regimen)
	res := RegressionResult{Regimen: regimen, Subjects: avgs}
	for _, a := range avgs {
		res.Weights = append(res.Weights, a.Weight)
		res.Volumes = append(res.Volumes, a.TumorVolume)
	}
	fit, err := stats.LinearFit(res.Weights, res.Volumes)
	if err != nil {
		return res, fmt.Errorf("regression on %s: %w", regimen, err)
	}
	res.Fit = fit
	res.Correlation = stats.Round(fit.R, 2)
	res.Slope = stats.Round(fit.Slope, 2)
	res.Intercept = stats.Round(fit.Intercept, 2)
	res.Predicted = fit.PredictAll(res.Weights)
	return res, nil
}
