package ir

import (
	"maps"
	"slices"
)

// Node is the value model: a finite tree of JSON-like values. Exactly one
// variant is active, selected by Type. Object keys live in Keys, parallel to
// Values, in insertion order; keys are unique. Arrays use Values alone.
type Node struct {
	Type Type

	Bool   bool
	Number float64
	String string

	Keys   []string
	Values []*Node
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromFloat(v float64) *Node {
	return &Node{Type: NumberType, Number: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Number: float64(v)}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromSlice(vs []*Node) *Node {
	res := &Node{Type: ArrayType}
	res.Values = make([]*Node, len(vs))
	copy(res.Values, vs)
	return res
}

// FromMap builds an object node with keys in sorted order so that repeated
// calls over equal maps produce identical nodes.
func FromMap(m map[string]*Node) *Node {
	res := &Node{Type: ObjectType}
	res.Keys = slices.Sorted(maps.Keys(m))
	res.Values = make([]*Node, len(res.Keys))
	for i, k := range res.Keys {
		res.Values[i] = m[k]
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds an object node preserving the given key order.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Type: ObjectType}
	res.Keys = make([]string, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		res.Keys[i] = kvs[i].Key
		res.Values[i] = kvs[i].Val
	}
	return res
}

func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	res := &Node{}
	return n.CloneTo(res)
}

func (n *Node) CloneTo(dst *Node) *Node {
	dst.Type = n.Type
	dst.Bool = n.Bool
	dst.Number = n.Number
	dst.String = n.String
	if n.Keys != nil {
		dst.Keys = make([]string, len(n.Keys))
		copy(dst.Keys, n.Keys)
	}
	if n.Values != nil {
		dst.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			dst.Values[i] = v.Clone()
		}
	}
	return dst
}

// IndexOfKey returns the position of field in an object node, or -1.
func (n *Node) IndexOfKey(field string) int {
	for i, k := range n.Keys {
		if k == field {
			return i
		}
	}
	return -1
}

// Get returns the value of field in an object node, or nil if absent or if
// n is not an object.
func Get(n *Node, field string) *Node {
	if n.Type != ObjectType {
		return nil
	}
	i := n.IndexOfKey(field)
	if i < 0 {
		return nil
	}
	return n.Values[i]
}

// Set sets field to v, keeping the position of an existing key and
// appending a new one.
func (n *Node) Set(field string, v *Node) {
	if i := n.IndexOfKey(field); i >= 0 {
		n.Values[i] = v
		return
	}
	n.Keys = append(n.Keys, field)
	n.Values = append(n.Values, v)
}

// Delete removes field from an object node, reporting whether it was present.
func (n *Node) Delete(field string) bool {
	i := n.IndexOfKey(field)
	if i < 0 {
		return false
	}
	n.Keys = slices.Delete(n.Keys, i, i+1)
	n.Values = slices.Delete(n.Values, i, i+1)
	return true
}

// ToMap returns the fields of an object node, or nil for other types.
func ToMap(n *Node) map[string]*Node {
	if n.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(n.Keys))
	for i, k := range n.Keys {
		res[k] = n.Values[i]
	}
	return res
}

func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, v := range n.Values {
			if err := v.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}
