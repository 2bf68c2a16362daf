// Package render turns scene widgets into displayable artifacts and hands
// them to a display sink.
//
// Formats:
//
//   - HTML: an embeddable WebGL/chart widget with a color legend ([HTML], [Page])
//   - JSON: the raw scene model
//   - SVG: a static orthographic snapshot of particles and lines ([Snapshot])
//   - PNG/SVG charts of number observers ([Chart])
//
// Sinks implement [Sink]. [FileSink] writes files, [WriterSink] streams to an
// io.Writer and [Gallery] keeps artifacts in memory behind an HTTP server.
package render
