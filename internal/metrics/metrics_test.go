package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveEncode(t *testing.T) {
	before := testutil.ToFloat64(EncodeAttemptsTotal.WithLabelValues("webp", "over"))

	ObserveEncode("webp", "over", 0.01)
	ObserveEncode("webp", "over", 0.02)

	after := testutil.ToFloat64(EncodeAttemptsTotal.WithLabelValues("webp", "over"))
	if after-before != 2 {
		t.Errorf("EncodeAttemptsTotal delta = %v, want 2", after-before)
	}
}

func TestObserveResult(t *testing.T) {
	resultsBefore := testutil.ToFloat64(ResultsTotal.WithLabelValues("jpeg"))
	violationsBefore := testutil.ToFloat64(BudgetViolationsTotal)

	ObserveResult("jpeg", 30_000, true)
	ObserveResult("jpeg", 10_000, false)

	if got := testutil.ToFloat64(ResultsTotal.WithLabelValues("jpeg")) - resultsBefore; got != 2 {
		t.Errorf("ResultsTotal delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(BudgetViolationsTotal) - violationsBefore; got != 1 {
		t.Errorf("BudgetViolationsTotal delta = %v, want 1", got)
	}
}

func TestFilesystemObserver(t *testing.T) {
	obs := NewFilesystemObserver()

	errsBefore := testutil.ToFloat64(FilesystemOperationErrors.WithLabelValues("output", "stat"))
	staleBefore := testutil.ToFloat64(FilesystemStaleErrors.WithLabelValues("stat", "output"))

	obs.ObserveOperation("output", "stat", 0.001, errors.New("boom"))
	obs.ObserveOperation("output", "stat", 0.001, nil)
	obs.ObserveStaleError("stat", "output")
	obs.ObserveRetryAttempt("stat", "output")
	obs.ObserveRetrySuccess("stat", "output")
	obs.ObserveRetryFailure("stat", "output")
	obs.ObserveRetryDuration("stat", "output", 0.05)

	if got := testutil.ToFloat64(FilesystemOperationErrors.WithLabelValues("output", "stat")) - errsBefore; got != 1 {
		t.Errorf("FilesystemOperationErrors delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(FilesystemStaleErrors.WithLabelValues("stat", "output")) - staleBefore; got != 1 {
		t.Errorf("FilesystemStaleErrors delta = %v, want 1", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	InitializeMetrics()

	t.Run("empty path is a no-op", func(t *testing.T) {
		if err := WriteTextfile(""); err != nil {
			t.Errorf("WriteTextfile(\"\") error = %v", err)
		}
	})

	t.Run("writes exposition format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "spinframe.prom")
		AnimationFrames.Set(12)

		if err := WriteTextfile(path); err != nil {
			t.Fatalf("WriteTextfile() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read textfile: %v", err)
		}
		out := string(data)

		for _, want := range []string{
			"spinframe_animation_frames 12",
			`spinframe_encode_attempts_total{format="jpeg",outcome="error"}`,
			"spinframe_budget_violations_total",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("Textfile missing %q", want)
			}
		}
		if strings.Contains(out, "go_goroutines") {
			t.Error("Textfile should not contain Go runtime metrics")
		}
	})

	t.Run("unwritable directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "spinframe.prom")
		if err := WriteTextfile(path); err == nil {
			t.Error("Expected error writing into a missing directory")
		}
	})
}
