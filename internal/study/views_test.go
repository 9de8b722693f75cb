package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastTimepoints(t *testing.T) {
	records := []JoinedRecord{
		rec("b", 0, 45, "X"),
		rec("a", 0, 45, "X"),
		rec("b", 10, 40, "X"),
		rec("a", 5, 47, "X"),
		rec("b", 5, 42, "X"),
	}
	last := LastTimepoints(records)
	require.Len(t, last, 2)
	assert.Equal(t, "a", last[0].ID)
	assert.Equal(t, 5, last[0].Timepoint)
	assert.Equal(t, 47.0, last[0].TumorVolume)
	assert.Equal(t, "b", last[1].ID)
	assert.Equal(t, 10, last[1].Timepoint)
}

func TestSubjectAverages(t *testing.T) {
	mk := func(id string, tp int, vol, w float64, reg string) JoinedRecord {
		r := rec(id, tp, vol, reg)
		r.Subject.Weight = w
		return r
	}
	records := []JoinedRecord{
		mk("s2", 0, 45, 20, "Capomulin"),
		mk("s1", 0, 45, 17, "Capomulin"),
		mk("s1", 5, 41, 17, "Capomulin"),
		mk("r1", 0, 45, 25, "Ramicane"),
		{Observation: Observation{ID: "u1", TumorVolume: 99}},
	}
	avg := SubjectAverages(records, "Capomulin")
	require.Len(t, avg, 2)
	assert.Equal(t, SubjectAverage{ID: "s1", Weight: 17, TumorVolume: 43, N: 2}, avg[0])
	assert.Equal(t, SubjectAverage{ID: "s2", Weight: 20, TumorVolume: 45, N: 1}, avg[1])
	assert.Empty(t, SubjectAverages(records, "Placebo"))
}

func TestTimeline(t *testing.T) {
	records := []JoinedRecord{
		rec("l509", 10, 44, "Capomulin"),
		rec("x", 0, 45, "Capomulin"),
		rec("l509", 0, 45, "Capomulin"),
		rec("l509", 5, 45.8, "Capomulin"),
	}
	got := Timeline(records, "l509")
	assert.Equal(t, []Point{{0, 45}, {5, 45.8}, {10, 44}}, got)
	assert.Empty(t, Timeline(records, "none"))
}

func TestCountBy(t *testing.T) {
	records := []JoinedRecord{
		rec("a", 0, 45, "Ramicane"),
		rec("b", 0, 45, "Capomulin"),
		rec("b", 5, 45, "Capomulin"),
		rec("c", 0, 45, "Placebo"),
		{Observation: Observation{ID: "u"}},
	}
	records[0].Subject.Sex = "Male"
	records[1].Subject.Sex = "Female"
	records[2].Subject.Sex = "Female"
	records[3].Subject.Sex = "Male"

	assert.Equal(t, []Count{{"Capomulin", 2}, {"Placebo", 1}, {"Ramicane", 1}}, CountBy(records, ByRegimen))
	assert.Equal(t, []Count{{"Female", 2}, {"Male", 2}}, CountBy(records, BySex))
	assert.Equal(t, 4, DistinctSubjects(records))
}
