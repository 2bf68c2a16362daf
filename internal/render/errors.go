package render

import "errors"

var (
	// ErrUnknownFormat indicates an output format that is not supported for
	// the widget being rendered.
	ErrUnknownFormat = errors.New("render: unknown format")

	// ErrNotFound indicates an artifact id with no stored artifact.
	ErrNotFound = errors.New("render: artifact not found")
)
