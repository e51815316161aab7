// Package pipeline orchestrates the discovery-and-handshake chain: locate
// the target process, enumerate its listening ports, probe for the live API
// endpoint, and fetch the quota report.
//
// The stages run strictly in sequence and each fails closed; the pipeline
// stops at the first terminal failure and tags it with a sentinel from the
// error taxonomy so the CLI can name the failed stage. Endpoint selection is
// an ordered list of strategies (probe discovered listeners, then fall back
// to the command-line port hint) rather than nested conditionals, so the
// fallback policy is testable on its own.
package pipeline
