package metrics

import "spinframe/internal/filesystem"

// filesystemObserver implements filesystem.Observer on top of the
// filesystem collectors in metrics.go.
type filesystemObserver struct{}

// NewFilesystemObserver returns the observer to install with
// filesystem.SetObserver.
func NewFilesystemObserver() filesystem.Observer {
	return &filesystemObserver{}
}

func (o *filesystemObserver) ObserveOperation(volume, operation string, durationSeconds float64, err error) {
	FilesystemOperationDuration.WithLabelValues(volume, operation).Observe(durationSeconds)
	if err != nil {
		FilesystemOperationErrors.WithLabelValues(volume, operation).Inc()
	}
}

func (o *filesystemObserver) ObserveRetryAttempt(retryOp, volume string) {
	FilesystemRetryAttempts.WithLabelValues(retryOp, volume).Inc()
}

func (o *filesystemObserver) ObserveRetrySuccess(retryOp, volume string) {
	FilesystemRetrySuccess.WithLabelValues(retryOp, volume).Inc()
}

func (o *filesystemObserver) ObserveRetryFailure(retryOp, volume string) {
	FilesystemRetryFailures.WithLabelValues(retryOp, volume).Inc()
}

func (o *filesystemObserver) ObserveRetryDuration(retryOp, volume string, durationSeconds float64) {
	FilesystemRetryDuration.WithLabelValues(retryOp, volume).Observe(durationSeconds)
}

func (o *filesystemObserver) ObserveStaleError(retryOp, volume string) {
	FilesystemStaleErrors.WithLabelValues(retryOp, volume).Inc()
}

// ObserveEncode records one trial encode. outcome is "fit" when the encoded
// size met the budget, "over" when it did not and "error" on failure.
func ObserveEncode(format, outcome string, durationSeconds float64) {
	EncodeAttemptsTotal.WithLabelValues(format, outcome).Inc()
	EncodeDuration.WithLabelValues(format).Observe(durationSeconds)
}

// ObserveResult records the encoding accepted for a frame.
func ObserveResult(format string, size int64, overBudget bool) {
	ResultsTotal.WithLabelValues(format).Inc()
	ResultBytes.Observe(float64(size))
	if overBudget {
		BudgetViolationsTotal.Inc()
	}
}
