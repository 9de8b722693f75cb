package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/KaramelBytes/studyloom-cli/internal/format"
	"github.com/KaramelBytes/studyloom-cli/internal/stats"
	"github.com/KaramelBytes/studyloom-cli/internal/study"
)

// SummaryTable renders the per-regimen statistics in the given mode.
func (r *Report) SummaryTable(m format.Mode) string {
	t := format.NewTable(m)
	t.Header("Drug Regimen", "N", "Mean Tumor Volume", "Median Tumor Volume", "Tumor Volume Variance", "Tumor Volume Std. Dev.", "Tumor Volume Std. Err.")
	for _, s := range r.Regimens {
		t.Row(s.Regimen, s.Count, format.Float(s.Mean, 6), format.Float(s.Median, 6),
			format.Float(s.Variance, 6), format.Float(s.StdDev, 6), format.Float(s.SEM, 6))
	}
	t.AlignRight(2, 3, 4, 5, 6, 7)
	return t.String()
}

// ConsoleLines returns the fixed outlier and regression sentences.
func (r *Report) ConsoleLines() []string {
	lines := make([]string, 0, len(r.Outliers)+2)
	for _, o := range r.Outliers {
		lines = append(lines, o.Sentence())
	}
	lines = append(lines, r.Regression.CorrelationSentence(), r.Regression.Equation())
	return lines
}

// Markdown renders the report as sectioned Markdown.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[STUDY SUMMARY]\n")
	b.WriteString(fmt.Sprintf("Run: %s\n", r.RunID))
	if !r.GeneratedAt.IsZero() {
		b.WriteString(fmt.Sprintf("Generated: %s\n", r.GeneratedAt.UTC().Format(time.RFC3339)))
	}
	if r.Metadata != "" {
		b.WriteString(fmt.Sprintf("Metadata: %s (%d rows, %d mice)\n", r.Metadata, r.SubjectsLoaded, r.SubjectIDs))
	}
	if r.Results != "" {
		b.WriteString(fmt.Sprintf("Results: %s (%d rows)\n", r.Results, r.ObservationsLoaded))
	}
	b.WriteString(fmt.Sprintf("Mice: %d\n\n", r.MiceBefore))

	b.WriteString(r.cleaningSection())
	b.WriteString("[REGIMEN SUMMARY]\n")
	b.WriteString(r.SummaryTable(format.Markdown))
	b.WriteString("\n\n")

	b.WriteString("[OBSERVATIONS BY REGIMEN]\n")
	b.WriteString(countTable("Drug Regimen", "Observed Timepoints", r.Observations, false))
	b.WriteString("\n\n")

	b.WriteString("[SEX DISTRIBUTION]\n")
	b.WriteString(countTable("Sex", "Observations", r.Sexes, true))
	b.WriteString("\n\n")

	b.WriteString(r.outlierSection())
	b.WriteString(r.regressionSection())

	if len(r.Warnings) > 0 {
		b.WriteString("[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- " + w + "\n")
		}
	}
	return b.String()
}

func (r *Report) cleaningSection() string {
	var b strings.Builder
	b.WriteString("[DATA CLEANING]\n")
	if len(r.Duplicates) == 0 {
		b.WriteString("No duplicate (Mouse ID, Timepoint) pairs found.\n")
	} else {
		b.WriteString(fmt.Sprintf("Duplicate mice excluded: %s\n", strings.Join(r.Duplicates, ", ")))
		b.WriteString(fmt.Sprintf("Rows removed: %d\n", r.RowsDropped))
	}
	if len(r.Unmatched) > 0 {
		b.WriteString(fmt.Sprintf("Mice without metadata: %s\n", strings.Join(r.Unmatched, ", ")))
	}
	b.WriteString(fmt.Sprintf("Mice after cleaning: %d\n\n", r.MiceAfter))
	return b.String()
}

func (r *Report) outlierSection() string {
	var b strings.Builder
	b.WriteString("[FINAL TUMOR VOLUME OUTLIERS]\n")
	t := format.NewTable(format.Markdown)
	t.Header("Drug Regimen", "N", "Q1", "Median", "Q3", "IQR", "Lower", "Upper", "Outliers")
	for _, o := range r.Outliers {
		var flagged []string
		for _, f := range o.Flagged {
			flagged = append(flagged, fmt.Sprintf("%s (%.2f)", f.ID, f.TumorVolume))
		}
		t.Row(o.Regimen, len(o.Volumes), format.Float(o.Q1, 4), format.Float(o.Median, 4),
			format.Float(o.Q3, 4), format.Float(o.IQR, 4),
			stats.FormatShort(o.Lower), stats.FormatShort(o.Upper), strings.Join(flagged, ", "))
	}
	b.WriteString(t.String())
	b.WriteString("\n\n")
	for _, o := range r.Outliers {
		b.WriteString(o.Sentence() + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (r *Report) regressionSection() string {
	var b strings.Builder
	reg := r.Regression
	b.WriteString("[CORRELATION AND REGRESSION]\n")
	b.WriteString(fmt.Sprintf("Regimen: %s (%d mice)\n", reg.Regimen, len(reg.Subjects)))
	b.WriteString(reg.CorrelationSentence() + "\n")
	b.WriteString(reg.Equation() + "\n\n")
	return b.String()
}

func countTable(key, label string, counts []study.Count, pct bool) string {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	t := format.NewTable(format.Markdown)
	if pct {
		t.Header(key, label, "Share")
	} else {
		t.Header(key, label)
	}
	for _, c := range counts {
		if pct {
			share := 0.0
			if total > 0 {
				share = float64(c.Count) * 100 / float64(total)
			}
			t.Row(c.Value, c.Count, fmt.Sprintf("%.1f%%", share))
		} else {
			t.Row(c.Value, c.Count)
		}
	}
	return t.String()
}
