package config

import "fmt"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateProcess(); err != nil {
		return err
	}
	if err := c.validateTimeouts(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateProcess() error {
	if c.Process.NameMatch == "" {
		return fmt.Errorf("process.name_match must not be empty")
	}
	return nil
}

func (c *Config) validateTimeouts() error {
	checks := []struct {
		name  string
		value int
	}{
		{"process.scan_timeout", c.Process.ScanTimeout},
		{"ports.list_timeout", c.Ports.ListTimeout},
		{"probe.timeout", c.Probe.Timeout},
		{"fetch.timeout", c.Fetch.Timeout},
	}
	for _, check := range checks {
		if check.value < 1 {
			return fmt.Errorf("%s must be at least 1 second, got %d", check.name, check.value)
		}
		if check.value > maxStageTimeout {
			return fmt.Errorf("%s must be at most %d seconds for interactive use, got %d", check.name, maxStageTimeout, check.value)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
