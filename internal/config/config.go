package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Process controls how the target language server process is located.
type Process struct {
	// NameMatch is the substring matched against process names.
	NameMatch string `toml:"name_match"`
	// ScanTimeout bounds process enumeration, in seconds.
	ScanTimeout int `toml:"scan_timeout"`
}

// Ports controls listening-port enumeration for the located process.
type Ports struct {
	// ListTimeout bounds the OS connection-table query, in seconds.
	ListTimeout int `toml:"list_timeout"`
}

// Probe controls the per-port endpoint probe.
type Probe struct {
	Timeout int `toml:"timeout"`
}

// Fetch controls the final quota request.
type Fetch struct {
	Timeout int `toml:"timeout"`
}

// Client identifies this tool to the language server. The values are opaque
// pass-through metadata on the wire, not behavior switches.
type Client struct {
	IDEName       string `toml:"ide_name"`
	ExtensionName string `toml:"extension_name"`
	Locale        string `toml:"locale"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for quotaprobe.
//
// Sections by subsystem:
//   - Process: target process discovery (name match, scan timeout)
//   - Ports: listening-port enumeration timeout
//   - Probe: per-port endpoint probe timeout
//   - Fetch: quota request timeout
//   - Client: IDE identity metadata sent with every request
//   - Logging: log format and level
type Config struct {
	Process Process `toml:"process"`
	Ports   Ports   `toml:"ports"`
	Probe   Probe   `toml:"probe"`
	Fetch   Fetch   `toml:"fetch"`
	Client  Client  `toml:"client"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/quotaprobe/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error: the returned config carries defaults and the bool reports
// whether a file was actually read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("quotaprobe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() {
	c.Process.NameMatch = strings.TrimSpace(c.Process.NameMatch)
	if c.Process.NameMatch == "" {
		c.Process.NameMatch = defaultProcessNameMatch
	}
	if c.Process.ScanTimeout <= 0 {
		c.Process.ScanTimeout = defaultProcessScanTimeout
	}
	if c.Ports.ListTimeout <= 0 {
		c.Ports.ListTimeout = defaultPortListTimeout
	}
	if c.Probe.Timeout <= 0 {
		c.Probe.Timeout = defaultProbeTimeout
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = defaultFetchTimeout
	}
	c.Client.IDEName = strings.TrimSpace(c.Client.IDEName)
	if c.Client.IDEName == "" {
		c.Client.IDEName = defaultClientIDEName
	}
	c.Client.ExtensionName = strings.TrimSpace(c.Client.ExtensionName)
	if c.Client.ExtensionName == "" {
		c.Client.ExtensionName = defaultClientExtensionName
	}
	c.Client.Locale = strings.TrimSpace(c.Client.Locale)
	if c.Client.Locale == "" {
		c.Client.Locale = defaultClientLocale
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// ScanTimeout returns the process enumeration bound as a duration.
func (c *Config) ScanTimeout() time.Duration {
	return time.Duration(c.Process.ScanTimeout) * time.Second
}

// PortListTimeout returns the connection-table query bound as a duration.
func (c *Config) PortListTimeout() time.Duration {
	return time.Duration(c.Ports.ListTimeout) * time.Second
}

// ProbeTimeout returns the per-port probe bound as a duration.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.Probe.Timeout) * time.Second
}

// FetchTimeout returns the quota request bound as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.Timeout) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
