package delta

import (
	"hash"
	"hash/fnv"
	"testing"
)

func TestChecksumStableAcrossKeyOrder(t *testing.T) {
	a := mustParse(t, `{"x": 1, "y": [true, null], "z": {"p": "q"}}`)
	b := mustParse(t, `{"z": {"p": "q"}, "x": 1, "y": [true, null]}`)
	if Checksum(a) != Checksum(b) {
		t.Error("checksum depends on object key order")
	}
	if Checksum(a) != Checksum(a.Clone()) {
		t.Error("checksum differs between a value and its clone")
	}
}

func TestChecksumDistinguishesValues(t *testing.T) {
	pairs := [][2]string{
		{`{"a": 1}`, `{"a": 2}`},
		{`{"a": 1}`, `{"a": "1"}`},
		{`[1, 2]`, `[2, 1]`},
		{`null`, `{}`},
	}
	for _, p := range pairs {
		if Checksum(mustParse(t, p[0])) == Checksum(mustParse(t, p[1])) {
			t.Errorf("checksums collide for %s and %s", p[0], p[1])
		}
	}
}

func TestChecksumWithInjectedHash(t *testing.T) {
	v := mustParse(t, `{"a": 1}`)
	got := ChecksumWith(func() hash.Hash { return fnv.New64a() }, v)
	if len(got) != 16 {
		t.Errorf("fnv-64 digest is %d hex chars, want 16", len(got))
	}
	if got == Checksum(v) {
		t.Error("injected hash ignored")
	}
}
