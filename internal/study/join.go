package study

import "fmt"

// JoinResult is the output of a left join of observations onto subjects.
type JoinResult struct {
	Records []JoinedRecord
	// Unmatched lists identities without a subject, in order of first appearance.
	Unmatched []string
}

// Join left-joins observations onto subjects by identity. Every observation
// yields one record per subject sharing its identity, or a single unmatched
// record that the policy then keeps, drops or rejects.
func Join(obs []Observation, subjects []Subject, policy UnmatchedPolicy) (JoinResult, error) {
	byID := make(map[string][]Subject, len(subjects))
	for _, s := range subjects {
		byID[s.ID] = append(byID[s.ID], s)
	}
	res := JoinResult{Records: make([]JoinedRecord, 0, len(obs))}
	seen := map[string]struct{}{}
	for _, o := range obs {
		matches := byID[o.ID]
		if len(matches) == 0 {
			if _, ok := seen[o.ID]; !ok {
				seen[o.ID] = struct{}{}
				res.Unmatched = append(res.Unmatched, o.ID)
			}
			switch policy {
			case PolicyFail:
				return JoinResult{}, fmt.Errorf("%w: %s at timepoint %d", ErrUnmatched, o.ID, o.Timepoint)
			case PolicyDrop:
				continue
			}
			res.Records = append(res.Records, JoinedRecord{Observation: o})
			continue
		}
		for _, s := range matches {
			res.Records = append(res.Records, JoinedRecord{Observation: o, Subject: s, Matched: true})
		}
	}
	return res, nil
}
