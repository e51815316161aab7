package portscan

import (
	"context"
	"log/slog"
	"sort"
	"time"

	gnet "github.com/shirou/gopsutil/v4/net"

	"quotaprobe/internal/logging"
)

// connFunc queries the OS connection table for a PID. Swappable in tests.
type connFunc func(ctx context.Context, pid int32) ([]gnet.ConnectionStat, error)

// Listener reports the listening TCP ports owned by a process.
type Listener struct {
	timeout time.Duration
	logger  *slog.Logger
	conns   connFunc
}

// NewListener constructs a Listener bounding each query by timeout.
func NewListener(timeout time.Duration, logger *slog.Logger) *Listener {
	return &Listener{
		timeout: timeout,
		logger:  logging.NewComponentLogger(logger, "portscan"),
		conns:   tcpConnections,
	}
}

// ListeningPorts returns the deduplicated, ascending list of TCP ports the
// given process is listening on. Any failure returns an empty slice.
func (l *Listener) ListeningPorts(ctx context.Context, pid int32) []int {
	if l == nil {
		return nil
	}

	queryCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	stats, err := l.conns(queryCtx, pid)
	if err != nil {
		l.logger.Debug("connection query failed", logging.Args(
			logging.Int(logging.FieldPID, int(pid)),
			logging.Error(err),
		)...)
		return nil
	}

	seen := make(map[int]struct{})
	ports := make([]int, 0, len(stats))
	for _, stat := range stats {
		if stat.Status != "LISTEN" {
			continue
		}
		port := int(stat.Laddr.Port)
		if port == 0 {
			continue
		}
		if _, ok := seen[port]; ok {
			continue
		}
		seen[port] = struct{}{}
		ports = append(ports, port)
	}
	sort.Ints(ports)

	if len(ports) == 0 {
		l.logger.Debug("no listening ports", logging.Args(logging.Int(logging.FieldPID, int(pid)))...)
	} else {
		l.logger.Info("listening ports found", logging.Args(
			logging.Int(logging.FieldPID, int(pid)),
			logging.Any("ports", ports),
		)...)
	}
	return ports
}

func tcpConnections(ctx context.Context, pid int32) ([]gnet.ConnectionStat, error) {
	return gnet.ConnectionsPidWithContext(ctx, "tcp", pid)
}
