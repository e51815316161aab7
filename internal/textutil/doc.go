// Package textutil provides small text helpers shared across the pipeline.
//
// The primary use cases are:
//   - Masking secrets (CSRF tokens) before they reach logs or diagnostics
//   - Truncating untrusted response bodies for error messages
//   - Generic conditional selection (Ternary)
package textutil
