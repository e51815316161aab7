// Package config loads and validates quotaprobe configuration.
//
// Configuration lives in a single TOML file. Every field has a working
// default, so the tool runs with no config file present at all; the file
// exists to tune timeouts, the process-name match, and logging output.
package config
