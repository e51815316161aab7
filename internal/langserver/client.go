package langserver

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"quotaprobe/internal/logging"
)

const (
	servicePrefix = "/exa.language_server_pb.LanguageServerService/"
	probePath     = servicePrefix + "GetUnleashData"
	statusPath    = servicePrefix + "GetUserStatus"

	headerProtocolVersion = "Connect-Protocol-Version"
	headerCSRFToken       = "X-Codeium-Csrf-Token"
	protocolVersion       = "1"

	loopbackHost = "127.0.0.1"

	// maxResponseBytes bounds how much of a response is read into memory.
	maxResponseBytes = 1 << 20
)

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Identity is the client metadata sent with every request. The server treats
// it as opaque pass-through data.
type Identity struct {
	IDEName       string
	ExtensionName string
	Locale        string
}

// Client issues authenticated requests against the language server on a
// caller-supplied loopback port.
type Client struct {
	token        string
	identity     Identity
	probeTimeout time.Duration
	fetchTimeout time.Duration
	client       HTTPDoer
	logger       *slog.Logger
}

// NewClient constructs a language server client authenticating with token.
func NewClient(token string, identity Identity, probeTimeout, fetchTimeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		token:        token,
		identity:     identity,
		probeTimeout: probeTimeout,
		fetchTimeout: fetchTimeout,
		client:       newLoopbackHTTPClient(),
		logger:       logging.NewComponentLogger(logger, "langserver"),
	}
}

// newLoopbackHTTPClient builds an HTTP client that accepts the server's
// self-signed ephemeral certificate. Only loopback targets are ever dialed,
// so skipping verification does not extend to remote hosts.
func newLoopbackHTTPClient() *http.Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
	return &http.Client{Transport: transport}
}

// SetHTTPDoer replaces the underlying HTTP client. Intended for tests.
func (c *Client) SetHTTPDoer(doer HTTPDoer) {
	if doer != nil {
		c.client = doer
	}
}

// post sends an authenticated JSON POST to the given loopback port and reads
// the full response before the per-request timeout is released.
func (c *Client) post(ctx context.Context, port int, path string, payload any, timeout time.Duration) (int, []byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encode request body: %w", err)
	}

	url := fmt.Sprintf("https://%s:%d%s", loopbackHost, port, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerProtocolVersion, protocolVersion)
	req.Header.Set(headerCSRFToken, c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body: %w", err)
	}
	return resp.StatusCode, data, nil
}
