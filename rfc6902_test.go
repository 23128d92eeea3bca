package delta

import (
	"encoding/json"
	"testing"

	"github.com/statetree/delta/ir"
)

func TestRFC6902Export(t *testing.T) {
	before := mustParse(t, `{"name": "Alice", "age": 30, "old": true}`)
	after := mustParse(t, `{"name": "Alice", "age": 31, "city": "NYC"}`)
	c := Diff(before, after)

	d, err := c.RFC6902()
	if err != nil {
		t.Fatal(err)
	}
	var raw []map[string]any
	if err := json.Unmarshal(d, &raw); err != nil {
		t.Fatalf("export is not a JSON array: %v", err)
	}
	for _, op := range raw {
		if _, ok := op["oldValue"]; ok {
			t.Error("export carries the advisory oldValue field")
		}
		if op["op"] == "remove" {
			if _, ok := op["value"]; ok {
				t.Error("remove op carries a value")
			}
		}
	}

	// The exported document must be applicable by a stock RFC 6902
	// implementation and reach the same result as Apply.
	external, err := ApplyJSONPatch(before, d)
	if err != nil {
		t.Fatal(err)
	}
	internal, err := Apply(before, c)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(external, internal) {
		ed, _ := external.MarshalJSON()
		id, _ := internal.MarshalJSON()
		t.Errorf("external apply %s != internal apply %s", ed, id)
	}
	if !ir.Equal(external, after) {
		t.Error("external apply missed the target value")
	}
}

func TestRFC6902ExportMoveHasFrom(t *testing.T) {
	c := &ChangeList{Ops: []Op{
		{Kind: OpMove, Path: mustPath(t, "/b"), From: mustPath(t, "/a")},
	}}
	d, err := c.RFC6902()
	if err != nil {
		t.Fatal(err)
	}
	var raw []map[string]any
	if err := json.Unmarshal(d, &raw); err != nil {
		t.Fatal(err)
	}
	if raw[0]["from"] != "/a" {
		t.Errorf("from = %v", raw[0]["from"])
	}
}

func TestApplyJSONPatchExternalDocument(t *testing.T) {
	base := mustParse(t, `{"a": {"b": 1}, "l": [1, 2]}`)
	patch := []byte(`[
		{"op": "replace", "path": "/a/b", "value": 2},
		{"op": "remove", "path": "/l/0"},
		{"op": "add", "path": "/c", "value": [true]}
	]`)
	got, err := ApplyJSONPatch(base, patch)
	if err != nil {
		t.Fatal(err)
	}
	want := mustParse(t, `{"a": {"b": 2}, "l": [2], "c": [true]}`)
	if !ir.Equal(got, want) {
		d, _ := got.MarshalJSON()
		t.Errorf("got %s", d)
	}
}

func TestApplyJSONPatchRejectsMalformed(t *testing.T) {
	base := mustParse(t, `{}`)
	if _, err := ApplyJSONPatch(base, []byte(`{"not": "an array"}`)); err == nil {
		t.Error("malformed patch accepted")
	}
}
