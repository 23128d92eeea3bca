package delta

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"

	"github.com/statetree/delta/ir"
)

// Checksum returns the SHA-256 hex digest of the canonical encoding of v.
// Equal values always produce the same digest regardless of object key
// order, which makes the digest usable as an optimistic-concurrency
// token: a caller compares the expected base checksum against its own
// value's checksum before applying a remotely produced change list, and a
// mismatch means the list was computed against a stale base and needs a
// three-way merge instead of a blind apply.
func Checksum(v *ir.Node) string {
	return ChecksumWith(sha256.New, v)
}

// ChecksumWith computes the digest with an injected hash constructor, for
// callers needing a different digest or a deterministic test stub.
func ChecksumWith(newHash func() hash.Hash, v *ir.Node) string {
	h := newHash()
	h.Write(ir.AppendCanonical(nil, v))
	return hex.EncodeToString(h.Sum(nil))
}
