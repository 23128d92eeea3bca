// Package render writes human-readable renderings of change lists and
// conflicts, one line per operation, optionally colored. It is a display
// aid for collaborators (CLIs, conflict-resolution UIs); the wire form of
// a change list is its JSON encoding, not this.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/statetree/delta"
	"github.com/statetree/delta/ir"
)

type Config struct {
	Color bool
}

type Opt func(*Config)

func Colors(v bool) Opt {
	return func(c *Config) { c.Color = v }
}

type styles struct {
	add     *color.Color
	remove  *color.Color
	replace *color.Color
	movec   *color.Color
	enabled bool
}

func newStyles(cfg *Config) *styles {
	s := &styles{
		add:     color.New(color.FgGreen),
		remove:  color.New(color.FgRed),
		replace: color.New(color.FgYellow),
		movec:   color.New(color.FgCyan),
		enabled: cfg.Color,
	}
	if s.enabled {
		// Color is an explicit caller decision here; override the
		// package-level tty autodetection.
		for _, c := range []*color.Color{s.add, s.remove, s.replace, s.movec} {
			c.EnableColor()
		}
	}
	return s
}

func (s *styles) paint(c *color.Color, text string) string {
	if !s.enabled {
		return text
	}
	return c.Sprint(text)
}

// ChangeList writes one line per operation.
func ChangeList(w io.Writer, c *delta.ChangeList, opts ...Opt) error {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	st := newStyles(cfg)
	for i := range c.Ops {
		if _, err := io.WriteString(w, opLine(st, &c.Ops[i])+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func opLine(st *styles, op *delta.Op) string {
	path := pathString(op.Path)
	switch op.Kind {
	case delta.OpAdd:
		return st.paint(st.add, fmt.Sprintf("add %s %s", path, valueString(op.Value)))
	case delta.OpRemove:
		if op.OldValue != nil {
			return st.paint(st.remove, fmt.Sprintf("remove %s %s", path, valueString(op.OldValue)))
		}
		return st.paint(st.remove, "remove "+path)
	case delta.OpReplace:
		if op.OldValue != nil && op.OldValue.Type == ir.StringType &&
			op.Value != nil && op.Value.Type == ir.StringType {
			// The inline diff carries its own colors, so only the prefix
			// is painted.
			return st.paint(st.replace, "replace "+path) + " " +
				stringDiff(st, op.OldValue.String, op.Value.String)
		}
		return st.paint(st.replace, fmt.Sprintf("replace %s %s -> %s",
			path, valueString(op.OldValue), valueString(op.Value)))
	case delta.OpMove:
		return st.paint(st.movec, fmt.Sprintf("move %s from %s", path, fromString(op)))
	case delta.OpCopy:
		return st.paint(st.movec, fmt.Sprintf("copy %s from %s", path, fromString(op)))
	}
	return fmt.Sprintf("%s %s", op.Kind, path)
}

func fromString(op *delta.Op) string {
	return pathString(op.From)
}

// pathString matches the root rendering of delta.Op.String: "/" would be
// ambiguous with a one-segment empty-field path.
func pathString(p ir.Path) string {
	if p.IsRoot() {
		return "(root)"
	}
	return p.String()
}

func valueString(v *ir.Node) string {
	if v == nil {
		return "null"
	}
	d, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<%s>", v.Type)
	}
	return string(d)
}

// stringDiff renders an inline character diff of two strings, deletions
// as [-...] and insertions as [+...], colored when enabled. Multi-line
// strings diff line-aware.
func stringDiff(st *styles, from, to string) string {
	dmp := diffpatch.New()
	multiLine := strings.Contains(from, "\n") && strings.Contains(to, "\n")
	diffs := dmp.DiffMain(from, to, multiLine)
	var sb strings.Builder
	sb.WriteByte('"')
	for i := range diffs {
		d := &diffs[i]
		switch d.Type {
		case diffpatch.DiffEqual:
			sb.WriteString(d.Text)
		case diffpatch.DiffDelete:
			sb.WriteString(st.paint(st.remove, "[-"+d.Text+"]"))
		case diffpatch.DiffInsert:
			sb.WriteString(st.paint(st.add, "[+"+d.Text+"]"))
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// Conflicts writes one block per conflict with the two sides' values.
func Conflicts(w io.Writer, cs []delta.Conflict, opts ...Opt) error {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	st := newStyles(cfg)
	for i := range cs {
		c := &cs[i]
		path := pathString(c.Path)
		if _, err := fmt.Fprintf(w, "conflict %s\n  a: %s\n  b: %s\n",
			path,
			st.paint(st.remove, valueString(c.A)),
			st.paint(st.add, valueString(c.B))); err != nil {
			return err
		}
	}
	return nil
}
