package delta

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/statetree/delta/ir"
)

type OpKind string

const (
	OpAdd     OpKind = "add"
	OpRemove  OpKind = "remove"
	OpReplace OpKind = "replace"
	OpMove    OpKind = "move"
	OpCopy    OpKind = "copy"
)

// Op is one addressable edit at a path. From is set only for move and
// copy. OldValue is advisory: it is carried for conflict display and
// inverse-operation support and is not required for application.
type Op struct {
	Kind     OpKind
	Path     ir.Path
	From     ir.Path
	Value    *ir.Node
	OldValue *ir.Node
}

func (op *Op) Clone() Op {
	return Op{
		Kind:     op.Kind,
		Path:     op.Path.Clone(),
		From:     op.From.Clone(),
		Value:    op.Value.Clone(),
		OldValue: op.OldValue.Clone(),
	}
}

func (op *Op) String() string {
	if op.Kind == OpMove || op.Kind == OpCopy {
		return fmt.Sprintf("%s %s from %s", op.Kind, pathString(op.Path), pathString(op.From))
	}
	return fmt.Sprintf("%s %s", op.Kind, pathString(op.Path))
}

// pathString renders the root path visibly. "/" would collide with a
// one-segment path whose field name is empty, which renders as "/".
func pathString(p ir.Path) string {
	if p.IsRoot() {
		return "(root)"
	}
	return p.String()
}

// ChangeList is an ordered sequence of operations plus a creation
// timestamp and an optional checksum of the post-apply value. Operations
// apply strictly in sequence: later operations observe the effects of
// earlier ones. A ChangeList is an opaque, serializable artifact with no
// owner beyond the caller.
type ChangeList struct {
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Checksum  string    `json:"checksum,omitempty"`
	Ops       []Op      `json:"ops"`
}

// NewChangeList wraps ops with a fresh ID and a UTC creation timestamp.
func NewChangeList(ops []Op) *ChangeList {
	return &ChangeList{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Ops:       ops,
	}
}

func (c *ChangeList) IsEmpty() bool {
	return len(c.Ops) == 0
}

func (c *ChangeList) Clone() *ChangeList {
	res := &ChangeList{
		ID:        c.ID,
		Timestamp: c.Timestamp,
		Checksum:  c.Checksum,
		Ops:       make([]Op, len(c.Ops)),
	}
	for i := range c.Ops {
		res.Ops[i] = c.Ops[i].Clone()
	}
	return res
}

// ParseChangeList decodes the JSON wire form of a change list.
func ParseChangeList(d []byte) (*ChangeList, error) {
	c := &ChangeList{}
	if err := json.Unmarshal(d, c); err != nil {
		return nil, err
	}
	return c, nil
}

// wireOp is the wire form of an operation: paths render slash-delimited,
// values as plain JSON.
type wireOp struct {
	Op       OpKind   `json:"op"`
	Path     string   `json:"path"`
	From     *string  `json:"from,omitempty"`
	Value    *ir.Node `json:"value,omitempty"`
	OldValue *ir.Node `json:"oldValue,omitempty"`
}

func (op Op) MarshalJSON() ([]byte, error) {
	w := wireOp{
		Op:       op.Kind,
		Path:     op.Path.String(),
		Value:    op.Value,
		OldValue: op.OldValue,
	}
	if op.Kind == OpMove || op.Kind == OpCopy {
		from := op.From.String()
		w.From = &from
	}
	return json.Marshal(w)
}

func (op *Op) UnmarshalJSON(d []byte) error {
	// Value and oldValue decode from the raw bytes: unmarshaling a JSON
	// null into a *ir.Node field would nil the pointer without calling the
	// node's decoder, erasing the difference between an absent field and
	// an explicit null value.
	w := struct {
		Op       OpKind          `json:"op"`
		Path     string          `json:"path"`
		From     *string         `json:"from"`
		Value    json.RawMessage `json:"value"`
		OldValue json.RawMessage `json:"oldValue"`
	}{}
	if err := json.Unmarshal(d, &w); err != nil {
		return err
	}
	switch w.Op {
	case OpAdd, OpRemove, OpReplace, OpMove, OpCopy:
	default:
		return fmt.Errorf("unrecognized op %q", w.Op)
	}
	p, err := ir.ParsePath(w.Path)
	if err != nil {
		return err
	}
	v, err := parseWireValue(w.Value)
	if err != nil {
		return err
	}
	ov, err := parseWireValue(w.OldValue)
	if err != nil {
		return err
	}
	op.Kind = w.Op
	op.Path = p
	op.Value = v
	op.OldValue = ov
	op.From = nil
	if w.Op == OpMove || w.Op == OpCopy {
		if w.From == nil {
			return fmt.Errorf("%s op at %q has no from path", w.Op, w.Path)
		}
		from, err := ir.ParsePath(*w.From)
		if err != nil {
			return err
		}
		op.From = from
	}
	return nil
}

// parseWireValue keeps an absent field absent and decodes everything else,
// a literal null included, into a node.
func parseWireValue(d json.RawMessage) (*ir.Node, error) {
	if d == nil {
		return nil, nil
	}
	return ir.ParseJSON(d)
}
