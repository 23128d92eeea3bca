package delta

// Optimize rewrites a change list to keep, for each distinct path, only
// the last operation targeting that exact path. Relative order among the
// retained operations is unchanged, so the compacted list applies to the
// same final value as the original.
//
// Compaction is lossy with respect to history: an add immediately
// followed by a remove on the same path collapses to just the remove.
// Callers needing inverse operations or undo must keep the uncompacted
// list; compaction and history preservation are incompatible.
func Optimize(changes *ChangeList) *ChangeList {
	keep := make([]bool, len(changes.Ops))
	seen := make(map[string]bool, len(changes.Ops))
	for i := len(changes.Ops) - 1; i >= 0; i-- {
		key := changes.Ops[i].Path.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		keep[i] = true
	}
	res := &ChangeList{
		ID:        changes.ID,
		Timestamp: changes.Timestamp,
		Checksum:  changes.Checksum,
		Ops:       make([]Op, 0, len(seen)),
	}
	for i := range changes.Ops {
		if keep[i] {
			res.Ops = append(res.Ops, changes.Ops[i].Clone())
		}
	}
	return res
}
