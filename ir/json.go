package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
)

// MarshalJSON renders the node as a plain JSON value, not as a struct
// encoding of Node itself. Object keys keep their insertion order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := appendJSON(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendJSON(buf *bytes.Buffer, n *Node) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}
	switch n.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(n.Bool))
	case NumberType:
		if math.IsNaN(n.Number) || math.IsInf(n.Number, 0) {
			return fmt.Errorf("number %v is not representable in JSON", n.Number)
		}
		buf.WriteString(formatNumber(n.Number))
	case StringType:
		d, err := json.Marshal(n.String)
		if err != nil {
			return err
		}
		buf.Write(d)
	case ArrayType:
		buf.WriteByte('[')
		for i, v := range n.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendJSON(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		for i, k := range n.Keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			d, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			if err := appendJSON(buf, n.Values[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unrecognized node type %d", n.Type)
	}
	return nil
}

// formatNumber formats a float with the shortest representation that
// round-trips, so equal numbers always render identically.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// UnmarshalJSON decodes any JSON value into the node. The stdlib map
// decoding would lose object key order, so this walks the token stream
// instead.
func (n *Node) UnmarshalJSON(d []byte) error {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return err
	}
	*n = *v
	return nil
}

// ParseJSON decodes a JSON document into a fresh node.
func ParseJSON(d []byte) (*Node, error) {
	n := &Node{}
	if err := n.UnmarshalJSON(d); err != nil {
		return nil, err
	}
	return n, nil
}

func decodeValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (*Node, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(t), nil
	case string:
		return FromString(t), nil
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q: %w", t.String(), err)
		}
		return FromFloat(f), nil
	case json.Delim:
		switch t {
		case '[':
			res := &Node{Type: ArrayType}
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				res.Values = append(res.Values, v)
			}
			if _, err := dec.Token(); err != nil { // ']'
				return nil, err
			}
			return res, nil
		case '{':
			res := &Node{Type: ObjectType}
			for dec.More() {
				kTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				k, ok := kTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, not string", kTok)
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				res.Set(k, v)
			}
			if _, err := dec.Token(); err != nil { // '}'
				return nil, err
			}
			return res, nil
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// AppendCanonical appends a canonical byte encoding of n to dst: every
// value is type-tagged and length-delimited, object keys are sorted, and
// numbers use the shortest round-tripping form. Two nodes yield the same
// bytes iff they are Equal, which makes the encoding fit for checksums.
func AppendCanonical(dst []byte, n *Node) []byte {
	if n == nil {
		return append(dst, 'z')
	}
	switch n.Type {
	case NullType:
		return append(dst, 'z')
	case BoolType:
		if n.Bool {
			return append(dst, 'b', '1')
		}
		return append(dst, 'b', '0')
	case NumberType:
		s := formatNumber(n.Number)
		dst = append(dst, 'n')
		return appendLenPrefixed(dst, s)
	case StringType:
		dst = append(dst, 's')
		return appendLenPrefixed(dst, n.String)
	case ArrayType:
		dst = append(dst, 'a')
		dst = strconv.AppendInt(dst, int64(len(n.Values)), 10)
		dst = append(dst, ':')
		for _, v := range n.Values {
			dst = AppendCanonical(dst, v)
		}
		return dst
	case ObjectType:
		dst = append(dst, 'o')
		dst = strconv.AppendInt(dst, int64(len(n.Keys)), 10)
		dst = append(dst, ':')
		for _, i := range sortedKeyOrder(n) {
			dst = appendLenPrefixed(dst, n.Keys[i])
			dst = AppendCanonical(dst, n.Values[i])
		}
		return dst
	}
	panic("type")
}

func appendLenPrefixed(dst []byte, s string) []byte {
	dst = strconv.AppendInt(dst, int64(len(s)), 10)
	dst = append(dst, ':')
	return append(dst, s...)
}

// FromAny converts plain Go values (the shapes produced by encoding/json
// and friends) into nodes. Map keys come out sorted; use FromKeyVals for
// explicit ordering.
func FromAny(v any) (*Node, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return t, nil
	case bool:
		return FromBool(t), nil
	case string:
		return FromString(t), nil
	case float64:
		return FromFloat(t), nil
	case float32:
		return FromFloat(float64(t)), nil
	case int:
		return FromInt(int64(t)), nil
	case int64:
		return FromInt(t), nil
	case int32:
		return FromInt(int64(t)), nil
	case uint64:
		return FromFloat(float64(t)), nil
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return nil, err
		}
		return FromFloat(f), nil
	case []any:
		res := &Node{Type: ArrayType, Values: make([]*Node, len(t))}
		for i, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			res.Values[i] = v
		}
		return res, nil
	case map[string]any:
		res := &Node{Type: ObjectType}
		for _, k := range slices.Sorted(maps.Keys(t)) {
			v, err := FromAny(t[k])
			if err != nil {
				return nil, err
			}
			res.Set(k, v)
		}
		return res, nil
	default:
		return nil, fmt.Errorf("cannot represent %T as a value", v)
	}
}

// ToAny converts a node into plain Go values: nil, bool, float64, string,
// []any, map[string]any. Object key order is lost.
func ToAny(n *Node) any {
	if n == nil {
		return nil
	}
	switch n.Type {
	case NullType:
		return nil
	case BoolType:
		return n.Bool
	case NumberType:
		return n.Number
	case StringType:
		return n.String
	case ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = ToAny(v)
		}
		return res
	case ObjectType:
		m := make(map[string]any, len(n.Keys))
		for i, k := range n.Keys {
			m[k] = ToAny(n.Values[i])
		}
		return m
	}
	panic("type")
}
