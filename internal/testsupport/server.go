package testsupport

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

const (
	probePath  = "/exa.language_server_pb.LanguageServerService/GetUnleashData"
	statusPath = "/exa.language_server_pb.LanguageServerService/GetUserStatus"
)

// QuotaServer is a fake language server bound to a loopback TLS port. It
// enforces the CSRF token header on both endpoints and records call counts
// so tests can assert probe and fetch behavior.
type QuotaServer struct {
	*httptest.Server

	Port int

	mu          sync.Mutex
	probeCalls  int
	statusCalls int
}

// NewQuotaServer starts a fake server accepting token and answering
// GetUserStatus with statusBody. When probeOK is false the discovery probe
// returns 503 while the status endpoint stays live, mirroring a server whose
// discovery surface is disabled.
func NewQuotaServer(t *testing.T, token string, probeOK bool, statusBody string) *QuotaServer {
	t.Helper()

	qs := &QuotaServer{}
	qs.Server = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("X-Codeium-Csrf-Token") != token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case probePath:
			qs.mu.Lock()
			qs.probeCalls++
			qs.mu.Unlock()
			if !probeOK {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		case statusPath:
			qs.mu.Lock()
			qs.statusCalls++
			qs.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, statusBody)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(qs.Server.Close)

	addr, ok := qs.Server.Listener.Addr().(*net.TCPAddr)
	if !ok {
		t.Fatalf("unexpected listener address type %T", qs.Server.Listener.Addr())
	}
	qs.Port = addr.Port
	return qs
}

// ProbeCalls reports how many discovery probes the server has seen.
func (qs *QuotaServer) ProbeCalls() int {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	return qs.probeCalls
}

// StatusCalls reports how many quota fetches the server has seen.
func (qs *QuotaServer) StatusCalls() int {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	return qs.statusCalls
}

// ClosedPort returns a loopback port that refuses connections.
func ClosedPort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()
	return port
}
