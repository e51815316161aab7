// Package langserver speaks the Antigravity language server's loopback API.
//
// The server listens on localhost over HTTPS with a self-signed, per-instance
// certificate, so the client disables TLS verification; that relaxation is
// scoped to 127.0.0.1 and never applies to remote hosts. Every request
// carries the CSRF token recovered from the server's launch arguments plus a
// fixed protocol-version header.
//
// Two operations exist: a side-effect-free probe (GetUnleashData) used to
// find the live API port, and the quota fetch (GetUserStatus). The quota
// payload's schema is not contractually guaranteed, so parsing into a
// Report defaults every missing field instead of failing.
package langserver
