// Package study models the two input tables of a tumor study (subject
// metadata and per-timepoint measurements) and the relational steps that turn
// them into a cleaned, joined table: load, left join, duplicate exclusion and
// the per-subject views derived from it.
package study

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingColumn is returned when a required header cannot be resolved.
	ErrMissingColumn = errors.New("missing column")
	// ErrEmptyTable is returned when a table has a header but no data rows.
	ErrEmptyTable = errors.New("table has no rows")
	// ErrUnmatched is returned by Join under PolicyFail when an observation has
	// no subject.
	ErrUnmatched = errors.New("observation without subject")
)

// Subject is one row of the metadata table.
type Subject struct {
	ID      string
	Regimen string
	Sex     string
	Age     int
	Weight  float64
}

// Observation is one row of the measurement table.
type Observation struct {
	ID              string
	Timepoint       int
	TumorVolume     float64
	MetastaticSites int
}

// JoinedRecord is an observation enriched with its subject. Matched is false
// when no subject carried the observation's identity; Subject is then zero.
type JoinedRecord struct {
	Observation
	Subject Subject
	Matched bool
}

// Regimen returns the subject's treatment and whether the record was matched.
func (r JoinedRecord) Regimen() (string, bool) {
	if !r.Matched {
		return "", false
	}
	return r.Subject.Regimen, true
}

// UnmatchedPolicy decides what Join does with observations lacking a subject.
type UnmatchedPolicy int

const (
	// PolicyKeep keeps unmatched rows with Matched=false.
	PolicyKeep UnmatchedPolicy = iota
	// PolicyDrop removes unmatched rows.
	PolicyDrop
	// PolicyFail aborts the join with ErrUnmatched.
	PolicyFail
)

func (p UnmatchedPolicy) String() string {
	switch p {
	case PolicyDrop:
		return "drop"
	case PolicyFail:
		return "fail"
	default:
		return "keep"
	}
}

// ParseUnmatchedPolicy maps "keep", "drop" or "fail" to a policy. The empty
// string selects PolicyKeep.
func ParseUnmatchedPolicy(s string) (UnmatchedPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "keep":
		return PolicyKeep, nil
	case "drop":
		return PolicyDrop, nil
	case "fail":
		return PolicyFail, nil
	default:
		return PolicyKeep, fmt.Errorf("unknown unmatched policy %q (use keep|drop|fail)", s)
	}
}
