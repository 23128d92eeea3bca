package delta

import (
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/statetree/delta/ir"
)

// RFC6902 renders the operations as a standard JSON Patch document (an
// array of op objects, RFC 6902). The advisory oldValue fields are
// dropped; the five op kinds and the slash-delimited paths map directly.
func (c *ChangeList) RFC6902() ([]byte, error) {
	ops := make([]wireOp, len(c.Ops))
	for i := range c.Ops {
		op := &c.Ops[i]
		ops[i] = wireOp{
			Op:    op.Kind,
			Path:  op.Path.String(),
			Value: op.Value,
		}
		if op.Kind == OpMove || op.Kind == OpCopy {
			from := op.From.String()
			ops[i].From = &from
		}
	}
	return json.Marshal(ops)
}

// ApplyJSONPatch applies a standard RFC 6902 JSON Patch document to base,
// round-tripping through the value's JSON encoding. It accepts patches
// from external producers that were not built by [Diff].
func ApplyJSONPatch(base *ir.Node, patch []byte) (*ir.Node, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, err
	}
	d, err := json.Marshal(base)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, err
	}
	return ir.ParseJSON(out)
}
