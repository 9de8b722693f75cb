package study

// Cleaned is the joined table with every colliding identity removed.
type Cleaned struct {
	Records []JoinedRecord
	// Excluded identities, in order of their first repeated timepoint.
	Excluded []string
	// Dropped is the number of rows removed.
	Dropped int
}

type idTime struct {
	id string
	tp int
}

// DuplicateIDs returns the identities for which two or more records share a
// timepoint, in the order their first repeat appears.
func DuplicateIDs(records []JoinedRecord) []string {
	seen := make(map[idTime]struct{}, len(records))
	flagged := map[string]struct{}{}
	var out []string
	for _, r := range records {
		k := idTime{r.ID, r.Timepoint}
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			continue
		}
		if _, ok := flagged[r.ID]; ok {
			continue
		}
		flagged[r.ID] = struct{}{}
		out = append(out, r.ID)
	}
	return out
}

// Clean drops all records of every identity returned by DuplicateIDs, not
// just the colliding rows. With no collisions the records are returned as is.
func Clean(records []JoinedRecord) Cleaned {
	dups := DuplicateIDs(records)
	if len(dups) == 0 {
		return Cleaned{Records: records}
	}
	bad := make(map[string]struct{}, len(dups))
	for _, id := range dups {
		bad[id] = struct{}{}
	}
	out := make([]JoinedRecord, 0, len(records))
	for _, r := range records {
		if _, ok := bad[r.ID]; ok {
			continue
		}
		out = append(out, r)
	}
	return Cleaned{Records: out, Excluded: dups, Dropped: len(records) - len(out)}
}

// DuplicateRows returns every record belonging to one of ids, in input order.
func DuplicateRows(records []JoinedRecord, ids []string) []JoinedRecord {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []JoinedRecord
	for _, r := range records {
		if _, ok := want[r.ID]; ok {
			out = append(out, r)
		}
	}
	return out
}
