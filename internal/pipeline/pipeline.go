package pipeline

import (
	"context"
	"log/slog"

	"quotaprobe/internal/config"
	"quotaprobe/internal/langserver"
	"quotaprobe/internal/logging"
	"quotaprobe/internal/portscan"
	"quotaprobe/internal/procscan"
)

// serverClient is the slice of *langserver.Client the pipeline consumes.
type serverClient interface {
	portProber
	FetchUserStatus(ctx context.Context, port int) (langserver.UserStatusPayload, error)
}

// Pipeline runs the four discovery stages in order. Construction wires the
// real collaborators; the function fields exist so tests can substitute
// stage implementations without touching the OS or network.
type Pipeline struct {
	logger *slog.Logger

	locate    func(ctx context.Context) (procscan.Credential, bool)
	listPorts func(ctx context.Context, pid int32) []int
	newClient func(token string) serverClient
}

// New builds a Pipeline from configuration.
func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	identity := langserver.Identity{
		IDEName:       cfg.Client.IDEName,
		ExtensionName: cfg.Client.ExtensionName,
		Locale:        cfg.Client.Locale,
	}
	return &Pipeline{
		logger: logging.NewComponentLogger(logger, "pipeline"),
		locate: func(ctx context.Context) (procscan.Credential, bool) {
			return procscan.NewLocator(cfg.Process.NameMatch, cfg.ScanTimeout(), logger).Locate(ctx)
		},
		listPorts: func(ctx context.Context, pid int32) []int {
			return portscan.NewListener(cfg.PortListTimeout(), logger).ListeningPorts(ctx, pid)
		},
		newClient: func(token string) serverClient {
			return langserver.NewClient(token, identity, cfg.ProbeTimeout(), cfg.FetchTimeout(), logger)
		},
	}
}

// Run executes the full discovery-and-fetch chain and returns the parsed
// quota report. Credentials and endpoints derived along the way live only in
// this call; every run starts from live OS state.
func (p *Pipeline) Run(ctx context.Context) (langserver.Report, error) {
	cred, ok := p.locate(ctx)
	if !ok {
		return langserver.Report{}, Wrap(ErrProcessNotFound, "locate",
			"no process with an extractable token; is the IDE running?", nil)
	}

	ports := p.listPorts(ctx, cred.PID)
	if len(ports) == 0 && cred.PortHint <= 0 {
		return langserver.Report{}, Wrap(ErrNoListeningPorts, "enumerate",
			"process has no listening ports and advertised no port hint", nil)
	}

	client := p.newClient(cred.Token)

	port, strategy, ok := resolveEndpoint(ctx, endpointStrategies(client, ports, cred.PortHint), p.logger)
	if !ok {
		return langserver.Report{}, Wrap(ErrNoWorkingEndpoint, "probe",
			"no candidate port answered the discovery probe", nil)
	}

	p.logger.Info("fetching quota", logging.Args(
		logging.Int(logging.FieldPort, port),
		logging.String("strategy", strategy),
	)...)

	payload, err := client.FetchUserStatus(ctx, port)
	if err != nil {
		return langserver.Report{}, Wrap(ErrFetchFailed, "fetch", "quota request failed", err)
	}

	return langserver.ParseReport(payload), nil
}
