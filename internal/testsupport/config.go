package testsupport

import (
	"testing"

	"quotaprobe/internal/config"
)

// NewConfig returns defaults with every stage timeout cut to one second so
// failing-path tests do not stall the suite.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Process.ScanTimeout = 1
	cfg.Ports.ListTimeout = 1
	cfg.Probe.Timeout = 1
	cfg.Fetch.Timeout = 1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}
