package analysis

import (
	"sort"

	"github.com/KaramelBytes/studyloom-cli/internal/stats"
	"github.com/KaramelBytes/studyloom-cli/internal/study"
)

// RegimenSummary describes the tumor volumes of one treatment.
type RegimenSummary struct {
	Regimen string
	stats.Summary
}

// SummarizeByRegimen partitions matched records by regimen and describes each
// partition's tumor volumes. Output is ordered by regimen name.
func SummarizeByRegimen(records []study.JoinedRecord) []RegimenSummary {
	parts := map[string][]float64{}
	for _, r := range records {
		reg, ok := r.Regimen()
		if !ok {
			continue
		}
		parts[reg] = append(parts[reg], r.TumorVolume)
	}
	out := make([]RegimenSummary, 0, len(parts))
	for reg, vals := range parts {
		out = append(out, RegimenSummary{Regimen: reg, Summary: stats.Describe(vals)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Regimen < out[j].Regimen })
	return out
}
