package langserver

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"quotaprobe/internal/logging"
)

func testIdentity() Identity {
	return Identity{IDEName: "antigravity", ExtensionName: "antigravity", Locale: "en"}
}

func newTestClient(token string) *Client {
	return NewClient(token, testIdentity(), 3*time.Second, 10*time.Second, logging.NewNop())
}

// serverPort extracts the listening port from an httptest server.
func serverPort(t *testing.T, srv *httptest.Server) int {
	t.Helper()
	addr, ok := srv.Listener.Addr().(*net.TCPAddr)
	if !ok {
		t.Fatalf("unexpected listener address type %T", srv.Listener.Addr())
	}
	return addr.Port
}

func TestProbeSendsWireContract(t *testing.T) {
	var gotPath, gotToken, gotVersion, gotContentType string
	var gotBody map[string]any

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Codeium-Csrf-Token")
		gotVersion = r.Header.Get("Connect-Protocol-Version")
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode probe body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newTestClient("secret-token-0123456789")
	if !client.Probe(context.Background(), serverPort(t, srv)) {
		t.Fatal("expected probe success against 200 server")
	}

	if gotPath != "/exa.language_server_pb.LanguageServerService/GetUnleashData" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotToken != "secret-token-0123456789" {
		t.Fatalf("unexpected token header: %q", gotToken)
	}
	if gotVersion != "1" {
		t.Fatalf("unexpected protocol version header: %q", gotVersion)
	}
	if gotContentType != "application/json" {
		t.Fatalf("unexpected content type: %q", gotContentType)
	}

	ctxObj, _ := gotBody["context"].(map[string]any)
	props, _ := ctxObj["properties"].(map[string]any)
	if props["devMode"] != "false" || props["ide"] != "antigravity" || props["language"] != "UNSPECIFIED" {
		t.Fatalf("unexpected probe properties: %v", props)
	}
}

func TestProbeNon200IsFailure(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	if newTestClient("tok").Probe(context.Background(), serverPort(t, srv)) {
		t.Fatal("expected probe failure on 401")
	}
}

func TestProbeConnectionRefusedIsFailure(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	port := serverPort(t, srv)
	srv.Close()

	if newTestClient("tok").Probe(context.Background(), port) {
		t.Fatal("expected probe failure against closed port")
	}
}

func TestFetchUserStatusSendsMetadata(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode status body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"userStatus":{"name":"Ada"}}`)
	}))
	defer srv.Close()

	payload, err := newTestClient("tok").FetchUserStatus(context.Background(), serverPort(t, srv))
	if err != nil {
		t.Fatalf("FetchUserStatus returned error: %v", err)
	}
	if gotPath != "/exa.language_server_pb.LanguageServerService/GetUserStatus" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	meta, _ := gotBody["metadata"].(map[string]any)
	if meta["ideName"] != "antigravity" || meta["extensionName"] != "antigravity" || meta["locale"] != "en" {
		t.Fatalf("unexpected metadata: %v", meta)
	}
	if payload.UserStatus == nil || payload.UserStatus.Name != "Ada" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestFetchUserStatusHTTPErrorCarriesTruncatedBody(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, strings.Repeat("x", 600))
	}))
	defer srv.Close()

	_, err := newTestClient("tok").FetchUserStatus(context.Background(), serverPort(t, srv))
	if err == nil {
		t.Fatal("expected error on 403")
	}
	msg := err.Error()
	if !strings.Contains(msg, "HTTP 403") {
		t.Fatalf("error does not name status: %q", msg)
	}
	if !strings.Contains(msg, strconv.Itoa(http.StatusForbidden)) {
		t.Fatalf("error does not carry status code: %q", msg)
	}
	if len(msg) > 400 {
		t.Fatalf("error body not truncated, length %d", len(msg))
	}
}

func TestFetchUserStatusMalformedJSONIsError(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json at all")
	}))
	defer srv.Close()

	if _, err := newTestClient("tok").FetchUserStatus(context.Background(), serverPort(t, srv)); err == nil {
		t.Fatal("expected decode error")
	}
}
