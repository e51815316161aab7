// Package main hosts the quotaprobe CLI entrypoint.
//
// The default invocation takes no arguments: it discovers the local
// Antigravity language server, recovers its credentials from the running
// process, probes for the live API port, and prints a model quota report.
// Diagnostics go to stderr; the report goes to stdout. Exit code 0 means a
// report was printed, 1 means the pipeline failed at some stage.
//
// Keep this package lean: discovery and protocol logic lives in the internal
// packages; this package only wires configuration, logging, and rendering.
package main
