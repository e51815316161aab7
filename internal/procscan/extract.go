package procscan

import (
	"regexp"
	"strconv"
)

// The target advertises its credentials in launch arguments. Two independent
// captures: the CSRF token is required, the extension-server port is an
// optional hint used as a last-resort endpoint.
var (
	portPattern  = regexp.MustCompile(`--extension_server_port[=\s]+(\d+)`)
	tokenPattern = regexp.MustCompile(`(?i)--csrf[_-]token[=\s]+(\S+)`)
)

// ExtractCredential parses a full command line for the CSRF token and the
// extension-server port hint. ok is false when no token is present; the port
// is 0 when absent or unparseable.
func ExtractCredential(cmdline string) (token string, portHint int, ok bool) {
	match := tokenPattern.FindStringSubmatch(cmdline)
	if match == nil {
		return "", 0, false
	}
	token = match[1]

	if portMatch := portPattern.FindStringSubmatch(cmdline); portMatch != nil {
		if port, err := strconv.Atoi(portMatch[1]); err == nil {
			portHint = port
		}
	}
	return token, portHint, true
}
