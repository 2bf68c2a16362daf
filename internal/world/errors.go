package world

import "errors"

var (
	// ErrNilWorld indicates Extract was called without a world.
	ErrNilWorld = errors.New("world: nil world")

	// ErrBadEdges indicates non-positive or non-finite edge lengths.
	ErrBadEdges = errors.New("world: edge lengths must be positive")

	// ErrMalformed indicates a snapshot file that could not be decoded.
	ErrMalformed = errors.New("world: malformed snapshot")
)
