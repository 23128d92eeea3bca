// Package ir contains the value model of the delta engine: a finite,
// JSON-like tree of nodes, structured paths addressing locations in a
// tree, deep equality and cloning, and codecs between nodes and
// JSON/YAML/plain Go values.
package ir
