// Package debug provides env-var-gated debug logging for the delta engine.
// Set DELTA_DEBUG_DIFF, DELTA_DEBUG_PATCH, or DELTA_DEBUG_MERGE to a truthy
// value to trace the corresponding component on stderr.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Diff  bool
	Patch bool
	Merge bool
}

var d *debug

func init() {
	d = &debug{}
	d.Diff = boolEnv("DELTA_DEBUG_DIFF")
	d.Patch = boolEnv("DELTA_DEBUG_PATCH")
	d.Merge = boolEnv("DELTA_DEBUG_MERGE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Diff() bool {
	return d.Diff
}
func Patch() bool {
	return d.Patch
}
func Merge() bool {
	return d.Merge
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
