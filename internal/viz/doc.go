// Package viz draws scene models in the terminal.
//
//   - [Canvas]: Braille sub-pixel canvas with per-cell color
//   - [Camera]: rotation and zoom of the framed scene onto the canvas
//   - [Viewer]: Bubble Tea program around a particles or movie model
//   - [Graph]: asciigraph plot of number observer series
//
// # Key Bindings
//
//	arrows - rotate about x and y
//	z/x    - rotate about z
//	+/-    - zoom
//	g      - toggle the bounding box
//	n/p    - next/previous movie frame
//	q      - quit
package viz
