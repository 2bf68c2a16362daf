// Package scene assembles the plot models handed to the renderer.
//
// A model is a plain record: a list of [Plot] entries (particles, lines,
// volume textures, debug shapes) plus global [Options] such as canvas size,
// axis ranges and camera pose. The package never interprets a model after
// building it; [Widget] pairs a model with an id and the template that
// displays it.
//
// Builders:
//
//   - [World]: one Particles plot per species, framed by the world edges
//   - [Movie]: per-species frames of several worlds for the player widget
//   - [Trajectory]: one Line plot per trajectory, framed by the data
//   - [DenseArray]: a volume texture of per-species point densities
//   - [NumberChart]: a 2D line chart model of scalar time series
//
// Every builder takes a [colorscale.Scale] so species keep their colors across
// calls that share one color mapping.
package scene
