package pipeline

import (
	"context"
	"log/slog"

	"quotaprobe/internal/logging"
)

// portProber finds the first candidate port answering an authenticated probe.
// Satisfied by *langserver.Client.
type portProber interface {
	FindWorking(ctx context.Context, ports []int) (int, bool)
}

// endpointStrategy is one way of producing a confirmed endpoint. Strategies
// are tried in order; the first success wins.
type endpointStrategy struct {
	name    string
	resolve func(ctx context.Context) (int, bool)
}

// endpointStrategies builds the ordered fallback chain for endpoint
// selection: probe the discovered listeners first, then trust the
// command-line port hint without probing. The hint survives cases where the
// discovery endpoint is disabled but the main API is still live, so it is
// handed straight to the quota fetch as a last resort.
func endpointStrategies(prober portProber, ports []int, hint int) []endpointStrategy {
	strategies := []endpointStrategy{
		{
			name: "probe-listeners",
			resolve: func(ctx context.Context) (int, bool) {
				if len(ports) == 0 {
					return 0, false
				}
				return prober.FindWorking(ctx, ports)
			},
		},
	}
	if hint > 0 {
		strategies = append(strategies, endpointStrategy{
			name: "port-hint",
			resolve: func(context.Context) (int, bool) {
				return hint, true
			},
		})
	}
	return strategies
}

// resolveEndpoint walks the strategy chain and returns the confirmed port
// plus the name of the strategy that produced it.
func resolveEndpoint(ctx context.Context, strategies []endpointStrategy, logger *slog.Logger) (int, string, bool) {
	for _, strategy := range strategies {
		port, ok := strategy.resolve(ctx)
		if ok {
			logger.Debug("endpoint resolved", logging.Args(
				logging.String("strategy", strategy.name),
				logging.Int(logging.FieldPort, port),
			)...)
			return port, strategy.name, true
		}
		logger.Debug("endpoint strategy exhausted", logging.Args(logging.String("strategy", strategy.name))...)
	}
	return 0, "", false
}
