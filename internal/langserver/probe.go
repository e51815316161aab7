package langserver

import (
	"context"
	"net/http"

	"quotaprobe/internal/logging"
)

type probeRequest struct {
	Context probeContext `json:"context"`
}

type probeContext struct {
	Properties map[string]string `json:"properties"`
}

func (c *Client) probeBody() probeRequest {
	return probeRequest{
		Context: probeContext{
			Properties: map[string]string{
				"devMode":  "false",
				"ide":      c.identity.IDEName,
				"language": "UNSPECIFIED",
			},
		},
	}
}

// Probe sends the side-effect-free feature-discovery request to a candidate
// port. Success is strictly an HTTP 200 within the probe timeout; every
// other outcome (non-200, refused connection, TLS failure, timeout) reads
// as failure for that port.
func (c *Client) Probe(ctx context.Context, port int) bool {
	status, _, err := c.post(ctx, port, probePath, c.probeBody(), c.probeTimeout)
	if err != nil {
		c.logger.Debug("probe failed", logging.Args(
			logging.Int(logging.FieldPort, port),
			logging.Error(err),
		)...)
		return false
	}
	c.logger.Debug("probe response", logging.Args(
		logging.Int(logging.FieldPort, port),
		logging.Int("status", status),
	)...)
	return status == http.StatusOK
}

// FindWorking probes candidate ports in the order given and returns the
// first that answers. Probing is sequential: it bounds resource usage and
// keeps failure attribution per-port, at the cost of latency proportional
// to the candidate count. No ports are probed after the first success.
func (c *Client) FindWorking(ctx context.Context, ports []int) (int, bool) {
	for _, port := range ports {
		if c.Probe(ctx, port) {
			c.logger.Info("working endpoint found", logging.Args(logging.Int(logging.FieldPort, port))...)
			return port, true
		}
	}
	return 0, false
}
