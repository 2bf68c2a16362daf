// Package colorscale assigns stable, distinct display colors to string keys.
//
// A [Scale] hands out colors from a fixed 17-entry palette. Keys that already
// have a color (pinned by the caller or assigned earlier) always get the same
// color back, and colors pinned at construction are held back from new keys
// until the rest of the palette has been used once.
//
// # Sharing assignments
//
// The mapping passed to [New] is kept by reference and updated in place, so a
// caller that threads one mapping through several renders gets consistent
// colors for the same species:
//
//	colors := map[string]string{"A": "#e31a1c"}
//	s := colorscale.New(colors)
//	s.Color("B") // "#a6cee3", and colors["B"] is now set
//
// # Thread Safety
//
// Scale performs no locking. Do not call [Scale.Color] concurrently on one
// instance or on instances sharing a mapping.
package colorscale
