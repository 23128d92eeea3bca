package ir

import "errors"

var (
	// ErrPathNotFound reports a path whose target does not exist in the
	// tree being navigated.
	ErrPathNotFound = errors.New("path not found")

	// ErrPathTraversal reports a path segment that does not fit the node
	// it addresses: descending into a scalar, or an index segment against
	// an object (and vice versa).
	ErrPathTraversal = errors.New("path does not traverse")
)
