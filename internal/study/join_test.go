package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	joinSubjects = []Subject{
		{ID: "k403", Regimen: "Ramicane", Sex: "Male", Age: 21, Weight: 16},
		{ID: "s185", Regimen: "Capomulin", Sex: "Female", Age: 3, Weight: 17},
	}
	joinObs = []Observation{
		{ID: "k403", Timepoint: 0, TumorVolume: 45},
		{ID: "zz99", Timepoint: 0, TumorVolume: 45},
		{ID: "s185", Timepoint: 0, TumorVolume: 45},
		{ID: "zz99", Timepoint: 5, TumorVolume: 47},
		{ID: "k403", Timepoint: 5, TumorVolume: 38.8},
	}
)

func TestJoinKeepsUnmatched(t *testing.T) {
	res, err := Join(joinObs, joinSubjects, PolicyKeep)
	require.NoError(t, err)
	require.Len(t, res.Records, len(joinObs))
	assert.Equal(t, []string{"zz99"}, res.Unmatched)

	for i, r := range res.Records {
		assert.Equal(t, joinObs[i], r.Observation)
	}
	assert.True(t, res.Records[0].Matched)
	assert.Equal(t, "Ramicane", res.Records[0].Subject.Regimen)
	assert.False(t, res.Records[1].Matched)
	_, ok := res.Records[1].Regimen()
	assert.False(t, ok)
}

func TestJoinDropUnmatched(t *testing.T) {
	res, err := Join(joinObs, joinSubjects, PolicyDrop)
	require.NoError(t, err)
	assert.Len(t, res.Records, 3)
	assert.Equal(t, []string{"zz99"}, res.Unmatched)
	for _, r := range res.Records {
		assert.True(t, r.Matched)
	}
}

func TestJoinFailUnmatched(t *testing.T) {
	_, err := Join(joinObs, joinSubjects, PolicyFail)
	assert.ErrorIs(t, err, ErrUnmatched)
	assert.Contains(t, err.Error(), "zz99")
}

// A repeated identity in the metadata multiplies rows like a relational join,
// and the deduplicator then removes that identity.
func TestJoinRepeatedSubject(t *testing.T) {
	subjects := append([]Subject{{ID: "k403", Regimen: "Ramicane"}}, joinSubjects...)
	res, err := Join(joinObs[:1], subjects, PolicyKeep)
	require.NoError(t, err)
	assert.Len(t, res.Records, 2)
	assert.Equal(t, []string{"k403"}, Clean(res.Records).Excluded)
}

func TestParseUnmatchedPolicy(t *testing.T) {
	for in, want := range map[string]UnmatchedPolicy{"": PolicyKeep, "KEEP": PolicyKeep, "drop": PolicyDrop, " fail ": PolicyFail} {
		got, err := ParseUnmatchedPolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		assert.NotEmpty(t, got.String())
	}
	_, err := ParseUnmatchedPolicy("ignore")
	assert.Error(t, err)
}
