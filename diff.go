package delta

import (
	"github.com/statetree/delta/debug"
	"github.com/statetree/delta/ir"
)

// Diff computes an ordered list of path-addressed operations transforming
// before into after. It is a total function: every pair of values is
// diffable and the result is deterministic, including object key order,
// which follows insertion order on both sides.
//
// The guarantee paired with [Apply] is
//
//	Apply(before, Diff(before, after)) == after
//
// for all values. The returned change list carries the checksum of after.
//
// Array comparison is positional, not minimal: an element inserted in the
// middle of an array produces a cascade of index-shifted replaces rather
// than a single add. The result is still correct under Apply; callers
// needing minimal diffs for long arrays can swap in an LCS-based array
// differ behind the same contract.
func Diff(before, after *ir.Node) *ChangeList {
	var ops []Op
	switch {
	case isNull(before) && !isNull(after):
		ops = append(ops, Op{Kind: OpAdd, Path: ir.Path{}, Value: after.Clone()})
	case isNull(after) && !isNull(before):
		ops = append(ops, Op{Kind: OpRemove, Path: ir.Path{}, OldValue: before.Clone()})
	default:
		ops = diffAt(ir.Path{}, before, after, nil)
	}
	res := NewChangeList(ops)
	res.Checksum = Checksum(after)
	return res
}

// isNull holds for a missing or explicit-null root. Inside containers null
// is an ordinary scalar: collapsing a null field with an absent one would
// make {"a": null} indistinguishable from {} after a round trip.
func isNull(n *ir.Node) bool {
	return n == nil || n.Type == ir.NullType
}

func diffAt(path ir.Path, before, after *ir.Node, ops []Op) []Op {
	if debug.Diff() {
		debug.Logf("diff at %s\n", pathString(path))
	}
	if ir.Equal(before, after) {
		return ops
	}
	if before == nil {
		return append(ops, Op{Kind: OpAdd, Path: path.Clone(), Value: after.Clone()})
	}
	if after == nil {
		return append(ops, Op{Kind: OpRemove, Path: path.Clone(), OldValue: before.Clone()})
	}
	if before.Type != after.Type || before.Type.IsLeaf() {
		// No partial diff across a shape change.
		return append(ops, Op{
			Kind:     OpReplace,
			Path:     path.Clone(),
			Value:    after.Clone(),
			OldValue: before.Clone(),
		})
	}
	switch before.Type {
	case ir.ObjectType:
		return diffObject(path, before, after, ops)
	case ir.ArrayType:
		return diffArray(path, before, after, ops)
	}
	panic("type")
}

func diffObject(path ir.Path, before, after *ir.Node, ops []Op) []Op {
	for i, k := range before.Keys {
		bv := before.Values[i]
		j := after.IndexOfKey(k)
		if j < 0 {
			ops = append(ops, Op{
				Kind:     OpRemove,
				Path:     path.Key(k),
				OldValue: bv.Clone(),
			})
			continue
		}
		ops = diffAt(path.Key(k), bv, after.Values[j], ops)
	}
	for i, k := range after.Keys {
		if before.IndexOfKey(k) >= 0 {
			continue
		}
		ops = append(ops, Op{
			Kind:  OpAdd,
			Path:  path.Key(k),
			Value: after.Values[i].Clone(),
		})
	}
	return ops
}

func diffArray(path ir.Path, before, after *ir.Node, ops []Op) []Op {
	n := min(len(before.Values), len(after.Values))
	for i := 0; i < n; i++ {
		ops = diffAt(path.Index(i), before.Values[i], after.Values[i], ops)
	}
	for i := n; i < len(after.Values); i++ {
		ops = append(ops, Op{
			Kind:  OpAdd,
			Path:  path.Index(i),
			Value: after.Values[i].Clone(),
		})
	}
	// Trailing removals run highest-index first: operations apply strictly
	// in sequence, and removing a lower index first would shift the
	// remaining targets out of range.
	for i := len(before.Values) - 1; i >= n; i-- {
		ops = append(ops, Op{
			Kind:     OpRemove,
			Path:     path.Index(i),
			OldValue: before.Values[i].Clone(),
		})
	}
	return ops
}
