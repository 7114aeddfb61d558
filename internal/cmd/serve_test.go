package cmd

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dslh/lodestar-mcp/internal/gateway"
	"github.com/dslh/lodestar-mcp/internal/tools"
	"github.com/dslh/lodestar-mcp/internal/upstream"
)

func newTestLodeStar(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/Login/login.php":
			w.Write([]byte(`{"status":1,"session_id":"shared-token-42"}`))
		default:
			w.Write([]byte(`{"status":1}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestDispatcher(t *testing.T, baseURL string) *tools.Dispatcher {
	t.Helper()
	gw := gateway.New(upstream.NewClient(baseURL), gateway.Credentials{Username: "alice", Password: "secret"})
	d, err := tools.NewDispatcher(gw)
	require.NoError(t, err)
	return d
}

func TestFrontendsShareSession(t *testing.T) {
	lodestar := newTestLodeStar(t)
	mcpServer, httpServer := newFrontends(newTestDispatcher(t, lodestar.URL), "127.0.0.1:0")
	require.NotNil(t, httpServer)

	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := mcpServer.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })

	sessionStatus := func() map[string]any {
		result, err := cs.CallTool(ctx, &mcp.CallToolParams{
			Name:      tools.ToolSessionStatus,
			Arguments: map[string]any{},
		})
		require.NoError(t, err)
		require.False(t, result.IsError)
		require.Len(t, result.Content, 1)
		text, ok := result.Content[0].(*mcp.TextContent)
		require.True(t, ok)

		var status map[string]any
		require.NoError(t, json.Unmarshal([]byte(text.Text), &status))
		return status
	}

	assert.Equal(t, false, sessionStatus()["authenticated"])

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tools/"+tools.ToolLogin, nil)
	w := httptest.NewRecorder()
	httpServer.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	status := sessionStatus()
	assert.Equal(t, true, status["authenticated"], "login over HTTP is visible over MCP")
	assert.Equal(t, "shared-t...", status["session_id"])
}

func TestFrontendsWithoutHTTP(t *testing.T) {
	mcpServer, httpServer := newFrontends(newTestDispatcher(t, "http://127.0.0.1:1/"), "")

	assert.NotNil(t, mcpServer)
	assert.Nil(t, httpServer)
}

// captureStdout redirects os.Stdout, and gin's writer that defaults to it,
// for the duration of fn
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	oldStdout, oldGinWriter := os.Stdout, gin.DefaultWriter
	os.Stdout, gin.DefaultWriter = w, w
	defer func() {
		os.Stdout, gin.DefaultWriter = oldStdout, oldGinWriter
	}()

	out := make(chan string, 1)
	go func() {
		data, _ := io.ReadAll(r)
		out <- string(data)
	}()

	fn()
	w.Close()
	return <-out
}

func TestHTTPProxyKeepsStdoutClean(t *testing.T) {
	t.Setenv(gin.EnvGinMode, "")
	os.Unsetenv(gin.EnvGinMode)
	oldMode := gin.Mode()
	gin.SetMode(gin.DebugMode)
	t.Cleanup(func() { gin.SetMode(oldMode) })

	d := newTestDispatcher(t, newTestLodeStar(t).URL)

	output := captureStdout(t, func() {
		_, httpServer := newFrontends(d, "127.0.0.1:0")
		for _, path := range []string{"/health", "/api/v1/tools", "/api/v1/session"} {
			w := httptest.NewRecorder()
			httpServer.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code, path)
		}
	})

	assert.Empty(t, output, "stdout is reserved for the MCP stream")
	assert.Equal(t, gin.ReleaseMode, gin.Mode())
}

func TestRunServeStopsOnCancel(t *testing.T) {
	d, err := tools.NewDispatcher(gateway.New(nil, gateway.Credentials{}))
	require.NoError(t, err)

	mcpServer, httpServer := newFrontends(d, "127.0.0.1:0")
	serverTransport, _ := mcp.NewInMemoryTransports()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- runServe(ctx, mcpServer, serverTransport, httpServer)
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("runServe did not stop after cancellation")
	}
}
