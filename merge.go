package delta

import (
	"fmt"

	"github.com/statetree/delta/debug"
	"github.com/statetree/delta/ir"
)

// Conflict records a path two change lists modified with different
// resulting values. A and B hold the value each side would leave at the
// path; a nil value means that side removed it. Conflicts are data, not
// errors: a merge always returns a result plus zero or more conflicts.
type Conflict struct {
	Path ir.Path
	A    *ir.Node
	B    *ir.Node
}

func (c *Conflict) String() string {
	return fmt.Sprintf("conflict at %s", pathString(c.Path))
}

type mergeConfig struct {
	resolver Resolver
}

type MergeOpt func(*mergeConfig)

// WithResolver post-processes conflicts with r: each conflict r resolves
// overwrites the default merge result at the conflict's path.
func WithResolver(r Resolver) MergeOpt {
	return func(c *mergeConfig) { c.resolver = r }
}

// Merge reconciles two change lists independently computed against the
// same base. Paths touched by only one side merge cleanly. A path touched
// by both sides conflicts unless the two resulting values are deep-equal.
//
// The result applies deltaA, then deltaB, so deltaB wins on any
// conflicting path ("second-applied wins"). Conflicts are still reported,
// letting a caller reject the result, prompt a user, or resolve
// differently before accepting it.
//
// Merge never errors for conflicting values. A patch error here means the
// two deltas do not share a valid common base, which is an integration
// error in the caller, not a recoverable runtime condition.
func Merge(base *ir.Node, deltaA, deltaB *ChangeList) (*ir.Node, []Conflict, error) {
	return MergeWith(base, deltaA, deltaB)
}

func MergeWith(base *ir.Node, deltaA, deltaB *ChangeList, opts ...MergeOpt) (*ir.Node, []Conflict, error) {
	cfg := &mergeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	// Path-keyed lookups. When one delta touches the same path twice, the
	// last op decides the resulting value, since application is strictly
	// sequential.
	aByPath := opsByPath(deltaA)
	bByPath := opsByPath(deltaB)

	var conflicts []Conflict
	seen := map[string]bool{}
	for i := range deltaA.Ops {
		key := deltaA.Ops[i].Path.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		opB, ok := bByPath[key]
		if !ok {
			continue
		}
		opA := aByPath[key]
		va := resultingValue(base, opA)
		vb := resultingValue(base, opB)
		if ir.Equal(va, vb) {
			// Both sides agreed.
			continue
		}
		if debug.Merge() {
			debug.Logf("merge conflict at %s\n", pathString(opA.Path))
		}
		conflicts = append(conflicts, Conflict{
			Path: opA.Path.Clone(),
			A:    va.Clone(),
			B:    vb.Clone(),
		})
	}

	res, err := Apply(base, deltaA)
	if err != nil {
		return nil, nil, fmt.Errorf("merge: first delta does not apply to base: %w", err)
	}
	res, err = Apply(res, deltaB)
	if err != nil {
		return nil, nil, fmt.Errorf("merge: second delta does not apply: %w", err)
	}

	if cfg.resolver != nil {
		for i := range conflicts {
			v, ok, err := cfg.resolver.Resolve(conflicts[i])
			if err != nil {
				return nil, nil, fmt.Errorf("merge: resolving %s: %w", &conflicts[i], err)
			}
			if !ok {
				continue
			}
			res, err = applyOp(res, &Op{Kind: OpReplace, Path: conflicts[i].Path, Value: v})
			if err != nil {
				return nil, nil, fmt.Errorf("merge: writing resolution at %s: %w", pathString(conflicts[i].Path), err)
			}
		}
	}
	return res, conflicts, nil
}

// ThreeWayMerge reconciles two values that both descend from base: it
// diffs each against the base and merges the two deltas.
func ThreeWayMerge(base, local, remote *ir.Node) (*ir.Node, []Conflict, error) {
	return Merge(base, Diff(base, local), Diff(base, remote))
}

func opsByPath(c *ChangeList) map[string]*Op {
	res := make(map[string]*Op, len(c.Ops))
	for i := range c.Ops {
		res[c.Ops[i].Path.String()] = &c.Ops[i]
	}
	return res
}

// resultingValue is the value an op leaves at its path: the op's value for
// add and replace, nothing for remove, and the base's value at the source
// path for move and copy.
func resultingValue(base *ir.Node, op *Op) *ir.Node {
	switch op.Kind {
	case OpAdd, OpReplace:
		return op.Value
	case OpRemove:
		return nil
	case OpMove, OpCopy:
		v, err := base.GetPath(op.From)
		if err != nil {
			return nil
		}
		return v
	}
	return nil
}
