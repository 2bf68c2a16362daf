// Package world adapts particle snapshots produced by an external simulation
// engine into per-species coordinate arrays.
//
// The engine is reached only through two narrow interfaces:
//
//   - [World]: lists particles (optionally per species) and reports its edge lengths
//   - [Particle]: exposes a position, a radius and a species name
//
// [Extract] aggregates the particles of each species, applying an optional
// allow-list, inclusion predicate and per-species sample limit. [Snapshot] is an
// in-memory World loaded from JSON or CSV files.
//
// # Example
//
//	w, _ := world.LoadSnapshot("t0.json", geom.Vec3{})
//	species, _ := world.Extract(w, world.Options{MaxCount: 1000})
package world
