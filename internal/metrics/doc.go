// Package metrics provides Prometheus instrumentation for spinframe runs.
//
// spinframe is a batch tool, so nothing is served over HTTP. Collectors live
// in a private Registry and, when a metrics file is configured, are written
// once at the end of a run with WriteTextfile in the format read by
// node_exporter's textfile collector. All metrics are prefixed with
// "spinframe_".
//
// # Metric Categories
//
// ## Encoding
//   - EncodeAttemptsTotal: trial encodes by format and outcome (fit, over, error)
//   - EncodeDuration: duration of a trial encode including the write
//   - ResultsTotal: accepted encodings by format
//   - ResultBytes: byte size distribution of accepted encodings
//   - BudgetViolationsTotal: frames accepted over the byte budget
//
// ## Frames
//   - FramesLoadedTotal / FramesFailedTotal: per pipeline
//   - DecodeByFormat: which decoder handled each source
//
// ## Animation
//   - AnimationBytes / AnimationFrames: last assembled animation
//
// ## Filesystem
//   - Operation durations, errors and NFS retry counters, recorded through
//     the filesystem.Observer returned by NewFilesystemObserver.
//
// Call InitializeMetrics once per process so that zero-valued series are
// present in the output.
package metrics
