package textutil

import "strings"

// MaskSecret returns a preview of a secret safe for diagnostics: the first six
// and last four characters with the middle elided. Secrets of ten characters
// or fewer are fully masked.
func MaskSecret(secret string) string {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return ""
	}
	if len(secret) <= 10 {
		return "****"
	}
	return secret[:6] + "..." + secret[len(secret)-4:]
}

// Truncate shortens value to at most max bytes, appending an ellipsis marker
// when anything was cut. Used to bound untrusted response bodies in error
// messages.
func Truncate(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "..."
}
