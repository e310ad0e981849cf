// Package memory sets the Go heap soft limit for containerized runs.
//
// spinframe decodes full-size product photos and hands them to libvips,
// whose allocations live outside the Go heap. In a container the Go runtime
// does not know the cgroup memory limit, so Configure derives GOMEMLIMIT
// from it:
//
//   - GOMEMLIMIT set: left untouched and reported.
//   - MEMORY_LIMIT set (bytes, e.g. from the Kubernetes Downward API): the
//     heap limit becomes MEMORY_LIMIT * MEMORY_RATIO.
//   - neither: nothing is configured.
//
// MEMORY_RATIO defaults to DefaultRatio and must lie in (0, 1].
package memory
