package metrics

import (
	"fmt"

	"spinframe/internal/logging"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile writes the current value of every collector in Registry to
// path in the Prometheus text exposition format, for node_exporter's textfile
// collector. An empty path disables the export.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	logging.Debug("Metrics written to %s", path)
	return nil
}
