// Package frames turns a directory of product photos into normalized frames:
// opaque, fixed-size canvases with the photo scaled to fit and centered on a
// solid background.
//
// Scan finds the sources in filename order. A Loader walks them lazily, one
// decoded frame per Next call, and reports per-file failures as *LoadError so
// the caller can skip them and keep going.
package frames
