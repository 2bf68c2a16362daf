package scene

import "errors"

var (
	// ErrNoWorlds indicates a movie without frames.
	ErrNoWorlds = errors.New("scene: no worlds to render")

	// ErrUnknownShape indicates a debug object type other than box, plane,
	// sphere or cylinder.
	ErrUnknownShape = errors.New("scene: unknown debug shape")

	// ErrTextureSize indicates a volume texture length without an integer
	// square root.
	ErrTextureSize = errors.New("scene: texture length must be a perfect square")

	// ErrNoSeries indicates a chart with nothing to plot.
	ErrNoSeries = errors.New("scene: no series selected")
)
