// Package procscan locates the target language server process and recovers
// its embedded credentials.
//
// The locator enumerates host processes, filters them by a name substring,
// and applies a small extraction grammar to each candidate's command line:
// a required CSRF token flag and an optional extension-server port flag.
// The argument format is not a documented API, so the grammar is isolated in
// ExtractCredential and covered by its own tests; format drift only requires
// updating the patterns there.
package procscan
