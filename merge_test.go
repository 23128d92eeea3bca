package delta

import (
	"testing"

	"github.com/statetree/delta/ir"
)

func TestMergeDisjointPaths(t *testing.T) {
	base := mustParse(t, `{"a": 1, "b": 2}`)
	dA := Diff(base, mustParse(t, `{"a": 10, "b": 2}`))
	dB := Diff(base, mustParse(t, `{"a": 1, "b": 20, "c": 3}`))

	res, conflicts, err := Merge(base, dA, dB)
	if err != nil {
		t.Fatal(err)
	}
	if len(conflicts) != 0 {
		t.Fatalf("conflicts: %v", conflicts)
	}
	want := mustParse(t, `{"a": 10, "b": 20, "c": 3}`)
	if !ir.Equal(res, want) {
		d, _ := res.MarshalJSON()
		t.Errorf("got %s", d)
	}

	// Disjoint merges commute.
	res2, _, err := Merge(base, dB, dA)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(res, res2) {
		t.Error("disjoint merge is order dependent")
	}
}

func TestMergeIdenticalChangesAgree(t *testing.T) {
	base := mustParse(t, `{"items": ["a"]}`)
	after := mustParse(t, `{"items": ["a", "b"]}`)
	dA := Diff(base, after)
	dB := Diff(base, after)

	res, conflicts, err := Merge(base, dA, dB)
	if err != nil {
		t.Fatal(err)
	}
	if len(conflicts) != 0 {
		t.Fatalf("identical edits conflicted: %v", conflicts)
	}
	// Applying both deltas must not append twice.
	if !ir.Equal(res, after) {
		d, _ := res.MarshalJSON()
		t.Errorf("got %s", d)
	}
}

func TestMergeConflictSecondWins(t *testing.T) {
	base := mustParse(t, `{"status": "draft"}`)
	dA := Diff(base, mustParse(t, `{"status": "published"}`))
	dB := Diff(base, mustParse(t, `{"status": "archived"}`))

	res, conflicts, err := Merge(base, dA, dB)
	if err != nil {
		t.Fatal(err)
	}
	if len(conflicts) != 1 {
		t.Fatalf("conflicts = %v, want exactly one", conflicts)
	}
	c := conflicts[0]
	if c.Path.String() != "/status" {
		t.Errorf("conflict path %s", c.Path.String())
	}
	if c.A.String != "published" || c.B.String != "archived" {
		t.Errorf("conflict sides %q / %q", c.A.String, c.B.String)
	}
	if got := ir.Get(res, "status").String; got != "archived" {
		t.Errorf("result status %q, want the second delta to win", got)
	}
}

func TestMergeRemoveVersusEdit(t *testing.T) {
	base := mustParse(t, `{"a": 1}`)
	dA := Diff(base, mustParse(t, `{}`))
	dB := Diff(base, mustParse(t, `{"a": 2}`))

	res, conflicts, err := Merge(base, dA, dB)
	if err != nil {
		t.Fatal(err)
	}
	if len(conflicts) != 1 {
		t.Fatalf("conflicts = %v, want exactly one", conflicts)
	}
	if conflicts[0].A != nil {
		t.Error("removing side should report a nil value")
	}
	if conflicts[0].B == nil || conflicts[0].B.Number != 2 {
		t.Errorf("editing side reported %v", conflicts[0].B)
	}
	if got := ir.Get(res, "a"); got == nil || got.Number != 2 {
		t.Errorf("result %v, want the edit to win by order", got)
	}
}

func TestMergeSamePathEqualValues(t *testing.T) {
	base := mustParse(t, `{"v": 1}`)
	after := mustParse(t, `{"v": 2}`)
	_, conflicts, err := Merge(base, Diff(base, after), Diff(base, after))
	if err != nil {
		t.Fatal(err)
	}
	if len(conflicts) != 0 {
		t.Errorf("equal resulting values conflicted: %v", conflicts)
	}
}

func TestMergeConflictsInFirstDeltaOrder(t *testing.T) {
	base := mustParse(t, `{"x": 1, "y": 2, "z": 3}`)
	dA := Diff(base, mustParse(t, `{"x": 10, "y": 20, "z": 30}`))
	dB := Diff(base, mustParse(t, `{"x": 11, "y": 21, "z": 31}`))
	_, conflicts, err := Merge(base, dA, dB)
	if err != nil {
		t.Fatal(err)
	}
	if len(conflicts) != 3 {
		t.Fatalf("conflicts = %d, want 3", len(conflicts))
	}
	for i, want := range []string{"/x", "/y", "/z"} {
		if got := conflicts[i].Path.String(); got != want {
			t.Errorf("conflict %d at %s, want %s", i, got, want)
		}
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := mustParse(t, `{"a": {"b": 1}}`)
	baseOrig := base.Clone()
	dA := Diff(base, mustParse(t, `{"a": {"b": 2}}`))
	dB := Diff(base, mustParse(t, `{"a": {"b": 3}}`))
	aOps := opStrings(dA)
	bOps := opStrings(dB)

	if _, _, err := Merge(base, dA, dB); err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(base, baseOrig) {
		t.Error("merge mutated the base")
	}
	if len(opStrings(dA)) != len(aOps) || len(opStrings(dB)) != len(bOps) {
		t.Error("merge mutated its deltas")
	}
}

func TestThreeWayMerge(t *testing.T) {
	base := mustParse(t, `{"title": "Draft", "tags": []}`)
	local := mustParse(t, `{"title": "Final", "tags": []}`)
	remote := mustParse(t, `{"title": "Draft", "tags": ["x"]}`)

	res, conflicts, err := ThreeWayMerge(base, local, remote)
	if err != nil {
		t.Fatal(err)
	}
	if len(conflicts) != 0 {
		t.Fatalf("conflicts: %v", conflicts)
	}
	if !ir.Equal(res, mustParse(t, `{"title": "Final", "tags": ["x"]}`)) {
		d, _ := res.MarshalJSON()
		t.Errorf("got %s", d)
	}
}

func TestMergeWithPreferA(t *testing.T) {
	base := mustParse(t, `{"status": "draft"}`)
	dA := Diff(base, mustParse(t, `{"status": "published"}`))
	dB := Diff(base, mustParse(t, `{"status": "archived"}`))

	res, conflicts, err := MergeWith(base, dA, dB, WithResolver(PreferA()))
	if err != nil {
		t.Fatal(err)
	}
	if len(conflicts) != 1 {
		t.Fatalf("conflicts = %d, want the conflict still reported", len(conflicts))
	}
	if got := ir.Get(res, "status").String; got != "published" {
		t.Errorf("result status %q, want side A", got)
	}
}

func TestMergeWithExprResolver(t *testing.T) {
	base := mustParse(t, `{"count": 1, "label": "x"}`)
	dA := Diff(base, mustParse(t, `{"count": 5, "label": "a"}`))
	dB := Diff(base, mustParse(t, `{"count": 3, "label": "b"}`))

	// Numbers resolve to the larger side; everything else keeps the default.
	r, err := ExprResolver(`type(a) == "float" ? (a > b ? a : b) : nil`)
	if err != nil {
		t.Fatal(err)
	}
	res, conflicts, err := MergeWith(base, dA, dB, WithResolver(r))
	if err != nil {
		t.Fatal(err)
	}
	if len(conflicts) != 2 {
		t.Fatalf("conflicts = %d, want 2", len(conflicts))
	}
	if got := ir.Get(res, "count").Number; got != 5 {
		t.Errorf("count = %v, want the larger side", got)
	}
	if got := ir.Get(res, "label").String; got != "b" {
		t.Errorf("label = %q, want the default second-wins result", got)
	}
}

func TestExprResolverCompileError(t *testing.T) {
	if _, err := ExprResolver(`a >`); err == nil {
		t.Fatal("bad program compiled")
	}
}

func TestMergeBadBaseErrors(t *testing.T) {
	base := mustParse(t, `{"a": 1}`)
	bogus := &ChangeList{Ops: []Op{
		{Kind: OpRemove, Path: mustPath(t, "/missing")},
	}}
	_, _, err := Merge(base, bogus, &ChangeList{})
	if err == nil {
		t.Fatal("expected an error for a delta that does not apply")
	}
}
