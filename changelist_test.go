package delta

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/statetree/delta/ir"
)

func TestChangeListWireRoundTrip(t *testing.T) {
	before := mustParse(t, `{"a": 1, "m": {"k": [1, 2]}, "gone": true}`)
	after := mustParse(t, `{"a": 2, "m": {"k": [1]}, "fresh": null}`)
	c := Diff(before, after)
	c.Ops = append(c.Ops, Op{Kind: OpMove, Path: mustPath(t, "/x"), From: mustPath(t, "/a")})

	d, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	back, err := ParseChangeList(d)
	if err != nil {
		t.Fatalf("reparsing %s: %v", d, err)
	}
	if back.ID != c.ID || back.Checksum != c.Checksum || !back.Timestamp.Equal(c.Timestamp) {
		t.Error("metadata lost on the wire")
	}
	if diff := cmp.Diff(opStrings(c), opStrings(back)); diff != "" {
		t.Errorf("ops (-want +got):\n%s", diff)
	}
	for i := range c.Ops {
		if !ir.Equal(c.Ops[i].Value, back.Ops[i].Value) {
			t.Errorf("op %d value changed on the wire", i)
		}
	}
}

func TestOpWireForm(t *testing.T) {
	op := Op{Kind: OpReplace, Path: mustPath(t, "/a/0"), Value: ir.FromInt(1), OldValue: ir.FromInt(0)}
	d, err := json.Marshal(op)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"op":"replace","path":"/a/0","value":1,"oldValue":0}`
	if string(d) != want {
		t.Errorf("wire form %s, want %s", d, want)
	}
}

func TestOpWireExplicitNullValue(t *testing.T) {
	// A literal null value is a value, not an absent field: it must come
	// off the wire as a null node, or a round-tripped add of null would
	// compare unequal to the delta it was marshaled from.
	var op Op
	if err := json.Unmarshal([]byte(`{"op":"add","path":"/fresh","value":null}`), &op); err != nil {
		t.Fatal(err)
	}
	if op.Value == nil || op.Value.Type != ir.NullType {
		t.Fatalf("explicit null value decoded to %v, want a null node", op.Value)
	}
	if !ir.Equal(op.Value, ir.Null()) {
		t.Error("decoded value not equal to a null node")
	}

	var rm Op
	if err := json.Unmarshal([]byte(`{"op":"remove","path":"/a","oldValue":null}`), &rm); err != nil {
		t.Fatal(err)
	}
	if rm.Value != nil {
		t.Errorf("absent value decoded to %v, want nil", rm.Value)
	}
	if rm.OldValue == nil || rm.OldValue.Type != ir.NullType {
		t.Errorf("explicit null oldValue decoded to %v, want a null node", rm.OldValue)
	}
}

func TestOpStringRootUnambiguous(t *testing.T) {
	root := Op{Kind: OpRemove, Path: ir.Path{}}
	emptyField := Op{Kind: OpRemove, Path: mustPath(t, "/")}
	if root.String() == emptyField.String() {
		t.Errorf("root and empty-field paths render alike: %q", root.String())
	}
	if got := root.String(); got != "remove (root)" {
		t.Errorf("root op renders as %q", got)
	}
}

func TestOpUnmarshalRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "unknown op",
			in:   `{"op": "teleport", "path": "/a"}`,
			want: "unrecognized op",
		},
		{
			name: "move without from",
			in:   `{"op": "move", "path": "/a"}`,
			want: "no from path",
		},
		{
			name: "bad path escape",
			in:   `{"op": "add", "path": "/a~2", "value": 1}`,
			want: "escape",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var op Op
			err := json.Unmarshal([]byte(tc.in), &op)
			if err == nil {
				t.Fatal("bad op accepted")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("err = %v, want it to mention %q", err, tc.want)
			}
		})
	}
}

func TestNewChangeListMetadata(t *testing.T) {
	c := NewChangeList(nil)
	if c.ID == "" {
		t.Error("missing id")
	}
	if c.Timestamp.IsZero() || c.Timestamp.Location() != time.UTC {
		t.Errorf("timestamp %v, want a UTC creation time", c.Timestamp)
	}
	if !c.IsEmpty() {
		t.Error("fresh list not empty")
	}
}

func TestChangeListCloneIndependence(t *testing.T) {
	c := Diff(mustParse(t, `{"a": [1]}`), mustParse(t, `{"a": [2]}`))
	dup := c.Clone()
	dup.Ops[0].Value.Number = 99
	if c.Ops[0].Value.Number == 99 {
		t.Error("clone shares op values")
	}
}
