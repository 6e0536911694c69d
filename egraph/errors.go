package egraph

import "errors"

// Sentinel errors for e-graph operations.
var (
	// ErrClassNotFound indicates GetClass was asked for an id whose
	// root has no backing e-class, which should never happen for an id
	// this Graph itself produced.
	ErrClassNotFound = errors.New("egraph: class not found")
)
