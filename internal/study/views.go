package study

import "sort"

// LastTimepoints returns, per identity, the record with the greatest
// timepoint. The first record wins ties. Output is ordered by identity.
func LastTimepoints(records []JoinedRecord) []JoinedRecord {
	last := map[string]int{}
	for i, r := range records {
		j, ok := last[r.ID]
		if !ok || r.Timepoint > records[j].Timepoint {
			last[r.ID] = i
		}
	}
	out := make([]JoinedRecord, 0, len(last))
	for _, i := range last {
		out = append(out, records[i])
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

// SubjectAverage is the mean weight and mean tumor volume of one subject.
type SubjectAverage struct {
	ID          string
	Weight      float64
	TumorVolume float64
	N           int
}

// SubjectAverages averages weight and tumor volume per identity over the
// matched records of one regimen, ordered by identity.
func SubjectAverages(records []JoinedRecord, regimen string) []SubjectAverage {
	acc := map[string]*SubjectAverage{}
	for _, r := range records {
		reg, ok := r.Regimen()
		if !ok || reg != regimen {
			continue
		}
		a := acc[r.ID]
		if a == nil {
			a = &SubjectAverage{ID: r.ID}
			acc[r.ID] = a
		}
		a.N++
		a.Weight += r.Subject.Weight
		a.TumorVolume += r.TumorVolume
	}
	out := make([]SubjectAverage, 0, len(acc))
	for _, a := range acc {
		a.Weight /= float64(a.N)
		a.TumorVolume /= float64(a.N)
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Point is one measurement on a subject's time axis.
type Point struct {
	Timepoint   int
	TumorVolume float64
}

// Timeline returns the measurements of one identity ordered by timepoint.
func Timeline(records []JoinedRecord, id string) []Point {
	var out []Point
	for _, r := range records {
		if r.ID == id {
			out = append(out, Point{Timepoint: r.Timepoint, TumorVolume: r.TumorVolume})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timepoint < out[j].Timepoint })
	return out
}

// Count is a value and how many records carry it.
type Count struct {
	Value string
	Count int
}

// CountBy counts matched records by the value key returns, highest count
// first and ties by value.
func CountBy(records []JoinedRecord, key func(JoinedRecord) string) []Count {
	m := map[string]int{}
	for _, r := range records {
		if !r.Matched {
			continue
		}
		m[key(r)]++
	}
	out := make([]Count, 0, len(m))
	for v, n := range m {
		out = append(out, Count{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// ByRegimen and BySex are keys for CountBy.
func ByRegimen(r JoinedRecord) string { return r.Subject.Regimen }
func BySex(r JoinedRecord) string     { return r.Subject.Sex }

// DistinctSubjects counts the distinct identities among records.
func DistinctSubjects(records []JoinedRecord) int {
	seen := map[string]struct{}{}
	for _, r := range records {
		seen[r.ID] = struct{}{}
	}
	return len(seen)
}
