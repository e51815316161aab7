package procscan

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"quotaprobe/internal/logging"
	"quotaprobe/internal/textutil"
)

// Credential holds everything recovered from a qualifying process. Values
// live only for the current run; nothing is ever persisted.
type Credential struct {
	PID      int32
	PortHint int
	Token    string
}

// MaskedToken returns a diagnostic-safe preview of the token.
func (c Credential) MaskedToken() string {
	return textutil.MaskSecret(c.Token)
}

// processEntry is the minimal process view the locator consumes.
type processEntry struct {
	pid     int32
	name    string
	cmdline string
}

// listFunc enumerates live processes. Swappable in tests.
type listFunc func(ctx context.Context) ([]processEntry, error)

// Locator finds the target process by name substring and extracts its
// credentials from the command line.
type Locator struct {
	match   string
	timeout time.Duration
	logger  *slog.Logger
	list    listFunc
}

// NewLocator constructs a Locator matching process names against the given
// substring, bounding enumeration by timeout.
func NewLocator(match string, timeout time.Duration, logger *slog.Logger) *Locator {
	return &Locator{
		match:   strings.TrimSpace(match),
		timeout: timeout,
		logger:  logging.NewComponentLogger(logger, "procscan"),
		list:    listProcesses,
	}
}

// Locate scans live processes for one matching the name substring with an
// extractable token. Candidates are visited in ascending PID order so the
// result is deterministic when multiple servers run; a candidate without a
// token is skipped, not fatal. Returns false when no process qualifies or
// enumeration itself fails.
func (l *Locator) Locate(ctx context.Context) (Credential, bool) {
	if l == nil || l.match == "" {
		return Credential{}, false
	}

	scanCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		scanCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	entries, err := l.list(scanCtx)
	if err != nil {
		l.logger.Error("process enumeration failed", logging.Args(logging.Error(err))...)
		return Credential{}, false
	}

	matched := 0
	sort.Slice(entries, func(i, j int) bool { return entries[i].pid < entries[j].pid })
	for _, entry := range entries {
		if !strings.Contains(entry.name, l.match) {
			continue
		}
		matched++
		token, portHint, ok := ExtractCredential(entry.cmdline)
		if !ok {
			l.logger.Debug("candidate has no token flag, skipping",
				logging.Args(logging.Int(logging.FieldPID, int(entry.pid)))...)
			continue
		}
		cred := Credential{PID: entry.pid, PortHint: portHint, Token: token}
		l.logger.Info("target process located", logging.Args(
			logging.Int(logging.FieldPID, int(cred.PID)),
			logging.Int("port_hint", cred.PortHint),
			logging.String("token", cred.MaskedToken()),
		)...)
		return cred, true
	}

	if matched > 0 {
		l.logger.Error("matching processes found but none carried a token",
			logging.Args(logging.Int("matched", matched))...)
	} else {
		l.logger.Error("no process matched", logging.Args(logging.String("match", l.match))...)
	}
	return Credential{}, false
}

func listProcesses(ctx context.Context) ([]processEntry, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]processEntry, 0, len(procs))
	for _, proc := range procs {
		name, err := proc.NameWithContext(ctx)
		if err != nil {
			// Process may have exited mid-scan or be unreadable.
			continue
		}
		cmdline, err := proc.CmdlineWithContext(ctx)
		if err != nil {
			continue
		}
		entries = append(entries, processEntry{pid: proc.Pid, name: name, cmdline: cmdline})
	}
	return entries, nil
}
