// Package delta is a structural delta engine over JSON-like values. It
// computes the difference between two trees as an ordered list of
// path-addressed operations ([Diff]), re-applies such a list to
// reconstruct the target from the original ([Apply]), compacts redundant
// operations ([Optimize]), reconciles two independently produced change
// lists against a common ancestor while surfacing conflicts ([Merge],
// [ThreeWayMerge]), and fingerprints values for staleness checks
// ([Checksum]).
//
// All entry points are pure functions over immutable inputs: no call
// mutates its arguments, performs I/O, or shares state, so they are safe
// to invoke concurrently without synchronization. Recursion depth equals
// tree depth; callers handling untrusted input should bound input size
// themselves.
package delta
