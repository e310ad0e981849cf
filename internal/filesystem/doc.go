/*
Package filesystem provides filesystem operations with retry logic for NFS
stale file handle errors.

spinframe measures every trial encode by stat-ing the file it just wrote, and
it deletes abandoned trial artifacts. Source and output directories often live
on network shares, so these calls go through the helpers here:

	info, err := filesystem.StatWithRetry(path, filesystem.DefaultRetryConfig())
	size, err := filesystem.SizeWithRetry(path, filesystem.DefaultRetryConfig())
	removed, err := filesystem.RemoveIfExists(path, filesystem.DefaultRetryConfig())

# Retry Behavior

Only ESTALE triggers retries. The defaults are 3 retries with exponential
backoff from 50ms capped at 500ms. All other errors return immediately.

# Metrics

Operations are reported to the package-level Observer when one is installed
with SetObserver. Labels come from a VolumeResolver that maps paths to the
"input" and "output" volumes of the current run.
*/
package filesystem
