// Package testsupport provides shared fixtures for quotaprobe tests: a fake
// language server speaking the loopback wire protocol over TLS, and config
// values tuned for fast test runs.
package testsupport
