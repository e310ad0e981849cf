package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every series appears in the textfile even when its value is zero.
func InitializeMetrics() {
	for _, format := range []string{"webp", "jpeg"} {
		for _, outcome := range []string{"fit", "over", "error"} {
			EncodeAttemptsTotal.WithLabelValues(format, outcome)
		}
		EncodeDuration.WithLabelValues(format)
		ResultsTotal.WithLabelValues(format)
	}

	for _, pipeline := range []string{"thumbnails", "animation"} {
		FramesLoadedTotal.WithLabelValues(pipeline)
		for _, stage := range []string{"load", "encode"} {
			FramesFailedTotal.WithLabelValues(pipeline, stage)
		}
		RunDuration.WithLabelValues(pipeline)
		RunTimestamp.WithLabelValues(pipeline)
	}

	volumes := []string{"input", "output", "unknown"}
	for _, op := range []string{"stat", "open", "remove"} {
		for _, vol := range volumes {
			FilesystemOperationDuration.WithLabelValues(vol, op)
			FilesystemOperationErrors.WithLabelValues(vol, op)
			FilesystemRetryAttempts.WithLabelValues(op, vol)
			FilesystemRetrySuccess.WithLabelValues(op, vol)
			FilesystemRetryFailures.WithLabelValues(op, vol)
			FilesystemRetryDuration.WithLabelValues(op, vol)
			FilesystemStaleErrors.WithLabelValues(op, vol)
		}
	}
}
