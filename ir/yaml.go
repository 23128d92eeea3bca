package ir

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// ParseYAML decodes a YAML document into a node, preserving mapping key
// order.
func ParseYAML(d []byte) (*Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return fromYAML(v)
}

func fromYAML(v any) (*Node, error) {
	switch t := v.(type) {
	case yaml.MapSlice:
		res := &Node{Type: ObjectType}
		for _, item := range t {
			k, ok := item.Key.(string)
			if !ok {
				return nil, fmt.Errorf("mapping key is %T, not string", item.Key)
			}
			val, err := fromYAML(item.Value)
			if err != nil {
				return nil, err
			}
			res.Set(k, val)
		}
		return res, nil
	case []any:
		res := &Node{Type: ArrayType, Values: make([]*Node, len(t))}
		for i, e := range t {
			val, err := fromYAML(e)
			if err != nil {
				return nil, err
			}
			res.Values[i] = val
		}
		return res, nil
	default:
		return FromAny(v)
	}
}

// MarshalYAML renders the node as YAML, preserving object key order.
func MarshalYAML(n *Node) ([]byte, error) {
	return yaml.Marshal(toYAML(n))
}

func toYAML(n *Node) any {
	if n == nil {
		return nil
	}
	switch n.Type {
	case ObjectType:
		res := make(yaml.MapSlice, len(n.Keys))
		for i, k := range n.Keys {
			res[i] = yaml.MapItem{Key: k, Value: toYAML(n.Values[i])}
		}
		return res
	case ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = toYAML(v)
		}
		return res
	default:
		return ToAny(n)
	}
}
