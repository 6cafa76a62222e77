package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/BlogWriter/backend/internal/dialog"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/shared/types"
)

// instantPicker answers every dialog immediately with path.
type instantPicker struct{ path string }

func (p instantPicker) PickFile(_ dialog.Options, done dialog.Completion) { done(dialog.Chosen(p.path)) }
func (p instantPicker) SaveFile(_ dialog.Options, done dialog.Completion) { done(dialog.Chosen(p.path)) }

type invokeResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
}

func newTestServer(t *testing.T, cfg *config.Config, opts ...Option) *Server {
	t.Helper()
	opts = append([]Option{WithLogger(logging.NewNop())}, opts...)
	srv, err := New(cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })
	return srv
}

func post(t *testing.T, url, body string) invokeResponse {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res invokeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return res
}

func TestNewRegistersEditorCommands(t *testing.T) {
	srv := newTestServer(t, config.Default(), WithPicker(instantPicker{}))

	var ids []string
	for _, tool := range srv.Registry().Commands() {
		ids = append(ids, tool.ID)
	}
	assert.ElementsMatch(t, []string{
		"greet", "save_file", "open_file", "check_file_exists", "get_file_info", "create_directory",
	}, ids)
}

func TestDefaultConfigAdmitsWebviewOrigin(t *testing.T) {
	srv := newTestServer(t, config.Default())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "tauri://localhost")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tauri://localhost", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestInjectedPickerRoundTrip(t *testing.T) {
	target := filepath.Join(t.TempDir(), "post.md")
	srv := newTestServer(t, config.Default(), WithPicker(instantPicker{path: target}))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	res := post(t, ts.URL+"/invoke/save_file", `{"content":"# Saved"}`)
	require.True(t, res.Success)

	res = post(t, ts.URL+"/invoke/open_file", ``)
	require.True(t, res.Success)
	assert.JSONEq(t, `"# Saved"`, string(res.Data))
}

func TestMetricsEndpointIsCompressed(t *testing.T) {
	srv := newTestServer(t, config.Default(), WithPicker(instantPicker{}))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
}

func TestDialogStreamOnlyWithFrontendBackend(t *testing.T) {
	srv := newTestServer(t, config.Default())

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, dialogStreamPath, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFrontendDialogBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Dialog.Backend = "frontend"
	srv := newTestServer(t, cfg)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+dialogStreamPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var welcome types.DialogMessage
	require.NoError(t, conn.ReadJSON(&welcome))
	require.Equal(t, "system", welcome.Type)

	target := filepath.Join(t.TempDir(), "from-webview.md")
	done := make(chan invokeResponse, 1)
	go func() {
		resp, err := http.Post(ts.URL+"/invoke/save_file", "application/json", strings.NewReader(`{"content":"hosted"}`))
		if err != nil {
			done <- invokeResponse{}
			return
		}
		defer resp.Body.Close()
		var res invokeResponse
		_ = json.NewDecoder(resp.Body).Decode(&res)
		done <- res
	}()

	var req types.DialogMessage
	require.NoError(t, conn.ReadJSON(&req))
	assert.Equal(t, "dialog_request", req.Type)
	assert.Equal(t, "save", req.Mode)
	assert.Equal(t, "Save Markdown File", req.Title)
	assert.Equal(t, []string{"md"}, req.Extensions)
	require.NoError(t, conn.WriteJSON(types.DialogMessage{Type: "dialog_result", ID: req.ID, Path: &target}))

	select {
	case res := <-done:
		assert.True(t, res.Success)
	case <-time.After(5 * time.Second):
		t.Fatal("save_file did not return")
	}

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hosted", string(data))
}

func TestHealthReportsDialogBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Dialog.Backend = "frontend"
	srv := newTestServer(t, cfg)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"backend":"frontend"`)
	assert.Contains(t, w.Body.String(), `"connected":false`)
}
