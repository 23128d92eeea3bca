package delta

import (
	"fmt"
	"slices"

	"github.com/statetree/delta/debug"
	"github.com/statetree/delta/ir"
)

// Apply applies a change list to base and returns the resulting value.
// base is never mutated. Operations apply strictly in order, each against
// the result of all prior operations in this call. Intermediate containers
// are created as needed: a missing step becomes an array when the next
// segment is an index and an object otherwise.
//
// Any path failure aborts the whole call: no partial result is returned,
// and the error wraps [ir.ErrPathNotFound] or [ir.ErrPathTraversal]
// together with the offending operation index and path, so callers can
// log, retry, or reject deterministically.
func Apply(base *ir.Node, changes *ChangeList) (*ir.Node, error) {
	res := base.Clone()
	if res == nil {
		res = ir.Null()
	}
	for i := range changes.Ops {
		op := &changes.Ops[i]
		if debug.Patch() {
			debug.Logf("patch op %d: %s\n", i, op)
		}
		var err error
		res, err = applyOp(res, op)
		if err != nil {
			return nil, fmt.Errorf("op %d (%s): %w", i, op, err)
		}
	}
	return res, nil
}

func applyOp(root *ir.Node, op *Op) (*ir.Node, error) {
	switch op.Kind {
	case OpAdd, OpReplace:
		return setPath(root, op.Path, cloneOrNull(op.Value))

	case OpRemove:
		if op.Path.IsRoot() {
			return ir.Null(), nil
		}
		return root, removePath(root, op.Path)

	case OpMove:
		v, err := root.GetPath(op.From)
		if err != nil {
			return nil, err
		}
		if op.From.IsRoot() {
			// Moving the root relocates the whole document.
			return setPath(ir.Null(), op.Path, v)
		}
		if err := removePath(root, op.From); err != nil {
			return nil, err
		}
		return setPath(root, op.Path, v)

	case OpCopy:
		v, err := root.GetPath(op.From)
		if err != nil {
			return nil, err
		}
		return setPath(root, op.Path, v.Clone())
	}
	return nil, fmt.Errorf("unrecognized op kind %q", op.Kind)
}

func cloneOrNull(v *ir.Node) *ir.Node {
	if v == nil {
		return ir.Null()
	}
	return v.Clone()
}

// setPath writes v at path, creating intermediate containers, and returns
// the (possibly replaced) root.
func setPath(root *ir.Node, path ir.Path, v *ir.Node) (*ir.Node, error) {
	if path.IsRoot() {
		return v, nil
	}
	parent, err := descend(root, path)
	if err != nil {
		return nil, err
	}
	last := path[len(path)-1]
	if last.IsIndex() {
		idx := *last.Index
		if parent.Type != ir.ArrayType {
			return nil, traversalErr(parent, path[:len(path)-1])
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: negative index %d", ir.ErrPathNotFound, idx)
		}
		if idx < len(parent.Values) {
			parent.Values[idx] = v
			return root, nil
		}
		// An index at or beyond the current length appends, matching the
		// adds the differencer emits for a grown array.
		parent.Values = append(parent.Values, v)
		return root, nil
	}
	if parent.Type != ir.ObjectType {
		return nil, traversalErr(parent, path[:len(path)-1])
	}
	parent.Set(*last.Field, v)
	return root, nil
}

// removePath deletes the value at path. The target must exist.
func removePath(root *ir.Node, path ir.Path) error {
	parent, err := descend(root, path)
	if err != nil {
		return err
	}
	last := path[len(path)-1]
	if last.IsIndex() {
		idx := *last.Index
		if parent.Type != ir.ArrayType {
			return traversalErr(parent, path[:len(path)-1])
		}
		if idx < 0 || idx >= len(parent.Values) {
			return fmt.Errorf("%w: index %d out of bounds (len %d) at %s",
				ir.ErrPathNotFound, idx, len(parent.Values), pathString(path[:len(path)-1]))
		}
		parent.Values = slices.Delete(parent.Values, idx, idx+1)
		return nil
	}
	if parent.Type != ir.ObjectType {
		return traversalErr(parent, path[:len(path)-1])
	}
	if !parent.Delete(*last.Field) {
		return fmt.Errorf("%w: field %q at %s",
			ir.ErrPathNotFound, *last.Field, pathString(path[:len(path)-1]))
	}
	return nil
}

// descend walks root down all but the last segment of path, creating empty
// containers at missing steps. The container kind at a created step is
// chosen by the following segment: a numeric next segment means an array.
func descend(root *ir.Node, path ir.Path) (*ir.Node, error) {
	node := root
	for i := 0; i < len(path)-1; i++ {
		seg := path[i]
		next := path[i+1]
		if seg.IsIndex() {
			if node.Type != ir.ArrayType {
				return nil, traversalErr(node, path[:i])
			}
			idx := *seg.Index
			if idx >= 0 && idx < len(node.Values) {
				node = node.Values[idx]
				continue
			}
			created := emptyContainer(next)
			node.Values = append(node.Values, created)
			node = created
			continue
		}
		if node.Type != ir.ObjectType {
			return nil, traversalErr(node, path[:i])
		}
		child := ir.Get(node, *seg.Field)
		if child == nil {
			child = emptyContainer(next)
			node.Set(*seg.Field, child)
		}
		node = child
	}
	return node, nil
}

func emptyContainer(next ir.Segment) *ir.Node {
	if next.IsIndex() {
		return &ir.Node{Type: ir.ArrayType}
	}
	return &ir.Node{Type: ir.ObjectType}
}

func traversalErr(node *ir.Node, at ir.Path) error {
	if node.Type.IsLeaf() {
		return fmt.Errorf("%w: %s at %s", ir.ErrPathTraversal, node.Type, pathString(at))
	}
	return fmt.Errorf("%w: cannot step a %s segment into %s at %s",
		ir.ErrPathTraversal, segKind(node), node.Type, pathString(at))
}

func segKind(node *ir.Node) string {
	if node.Type == ir.ArrayType {
		return "field"
	}
	return "index"
}
