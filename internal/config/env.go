package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by ApplyEnv.
const (
	EnvInputDir        = "SPINFRAME_INPUT_DIR"
	EnvOutputDir       = "SPINFRAME_OUTPUT_DIR"
	EnvBudgetBytes     = "SPINFRAME_BUDGET_BYTES"
	EnvAnimationOutput = "SPINFRAME_ANIMATION_OUTPUT"
	EnvMetricsFile     = "SPINFRAME_METRICS_FILE"
)

// ApplyEnv overrides values from SPINFRAME_* environment variables. Unset
// or empty variables leave the current value alone.
func (c *Config) ApplyEnv() error {
	c.Source.InputDir = getEnv(EnvInputDir, c.Source.InputDir)
	c.Thumbnails.OutputDir = getEnv(EnvOutputDir, c.Thumbnails.OutputDir)
	c.Animation.Output = getEnv(EnvAnimationOutput, c.Animation.Output)
	c.MetricsFile = getEnv(EnvMetricsFile, c.MetricsFile)

	budget, err := getEnvInt64(EnvBudgetBytes, c.Thumbnails.BudgetBytes)
	if err != nil {
		return err
	}
	c.Thumbnails.BudgetBytes = budget
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
