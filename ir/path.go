package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment addresses one step into a tree: exactly one of Field or Index is
// set. Field steps into an object by key, Index into an array by position.
type Segment struct {
	Field *string
	Index *int
}

func Key(f string) Segment {
	return Segment{Field: &f}
}

func Index(i int) Segment {
	return Segment{Index: &i}
}

func (s Segment) IsIndex() bool {
	return s.Index != nil
}

func (s Segment) String() string {
	if s.Index != nil {
		return strconv.Itoa(*s.Index)
	}
	return escapeSegment(*s.Field)
}

// Path addresses a unique location in a Node tree. The root is the empty
// path. Paths are built once by the differencer and consumed directly, so
// a numeric-looking object key and an array index stay distinct in memory;
// the distinction is lost only in the slash-delimited wire form, where an
// all-digit segment parses as an index.
type Path []Segment

// Child returns a new path extended by seg. The receiver is not modified;
// the returned path never aliases the receiver's backing array.
func (p Path) Child(seg Segment) Path {
	res := make(Path, len(p)+1)
	copy(res, p)
	res[len(p)] = seg
	return res
}

func (p Path) Key(f string) Path {
	return p.Child(Key(f))
}

func (p Path) Index(i int) Path {
	return p.Child(Index(i))
}

func (p Path) IsRoot() bool {
	return len(p) == 0
}

func (p Path) Clone() Path {
	res := make(Path, len(p))
	copy(res, p)
	return res
}

func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i].IsIndex() != q[i].IsIndex() {
			return false
		}
		if p[i].IsIndex() {
			if *p[i].Index != *q[i].Index {
				return false
			}
			continue
		}
		if *p[i].Field != *q[i].Field {
			return false
		}
	}
	return true
}

// String renders the path slash-delimited, JSON-Pointer style: the root is
// "", /a/0/b steps into field "a", index 0, field "b". "~" and "/" in field
// names escape to "~0" and "~1".
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, seg := range p {
		sb.WriteByte('/')
		sb.WriteString(seg.String())
	}
	return sb.String()
}

// ParsePath parses the slash-delimited form. All-digit segments become
// indices, everything else a field.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return Path{}, nil
	}
	if s[0] != '/' {
		return nil, fmt.Errorf("path %q should start with '/'", s)
	}
	parts := strings.Split(s[1:], "/")
	res := make(Path, 0, len(parts))
	for _, part := range parts {
		if isDigits(part) {
			i, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("path %q: bad index %q: %w", s, part, err)
			}
			res = append(res, Index(i))
			continue
		}
		f, err := unescapeSegment(part)
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", s, err)
		}
		res = append(res, Key(f))
	}
	return res, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func escapeSegment(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

func unescapeSegment(s string) (string, error) {
	if !strings.Contains(s, "~") {
		return s, nil
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '~' {
			sb.WriteByte(s[i])
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("dangling '~' in segment %q", s)
		}
		i++
		switch s[i] {
		case '0':
			sb.WriteByte('~')
		case '1':
			sb.WriteByte('/')
		default:
			return "", fmt.Errorf("bad escape '~%c' in segment %q", s[i], s)
		}
	}
	return sb.String(), nil
}

// GetPath navigates from n down p and returns the node there. It returns
// ErrPathNotFound if the target or any intermediate container entry is
// absent, and ErrPathTraversal if an intermediate node is a scalar.
func (n *Node) GetPath(p Path) (*Node, error) {
	res := n
	for i, seg := range p {
		if seg.IsIndex() {
			if res.Type != ArrayType {
				if res.Type.IsLeaf() {
					return nil, fmt.Errorf("%w: %s at %s", ErrPathTraversal, res.Type, p[:i])
				}
				return nil, fmt.Errorf("%w: index segment into %s at %s", ErrPathTraversal, res.Type, p[:i])
			}
			idx := *seg.Index
			if idx < 0 || idx >= len(res.Values) {
				return nil, fmt.Errorf("%w: index %d out of bounds (len %d) at %s", ErrPathNotFound, idx, len(res.Values), p[:i])
			}
			res = res.Values[idx]
			continue
		}
		if res.Type != ObjectType {
			if res.Type.IsLeaf() {
				return nil, fmt.Errorf("%w: %s at %s", ErrPathTraversal, res.Type, p[:i])
			}
			return nil, fmt.Errorf("%w: field segment into %s at %s", ErrPathTraversal, res.Type, p[:i])
		}
		v := Get(res, *seg.Field)
		if v == nil {
			return nil, fmt.Errorf("%w: field %q at %s", ErrPathNotFound, *seg.Field, p[:i])
		}
		res = v
	}
	return res, nil
}
