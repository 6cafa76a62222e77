package dialog

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/BlogWriter/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/shared/types"
)

func newHubServer(t *testing.T, hub *Hub) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/dialog/stream", hub.HandleConnection)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/dialog/stream"
}

func connectHost(t *testing.T, hub *Hub, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var welcome types.DialogMessage
	require.NoError(t, conn.ReadJSON(&welcome))
	require.Equal(t, "system", welcome.Type)
	require.Eventually(t, hub.Connected, 2*time.Second, 10*time.Millisecond)
	return conn
}

// answerNext reads the next dialog request and replies with path.
func answerNext(t *testing.T, conn *websocket.Conn, path *string) types.DialogMessage {
	t.Helper()
	var req types.DialogMessage
	require.NoError(t, conn.ReadJSON(&req))
	require.Equal(t, "dialog_request", req.Type)
	require.NoError(t, conn.WriteJSON(types.DialogMessage{Type: "dialog_result", ID: req.ID, Path: path}))
	return req
}

func awaitBridge(t *testing.T, fn func() Result) chan Result {
	t.Helper()
	ch := make(chan Result, 1)
	go func() { ch <- fn() }()
	return ch
}

func receive(t *testing.T, ch chan Result) Result {
	t.Helper()
	select {
	case res := <-ch:
		return res
	case <-time.After(3 * time.Second):
		t.Fatal("dialog did not complete")
		return Result{}
	}
}

func strPtr(s string) *string { return &s }

func TestHubWithoutFrontendDismisses(t *testing.T) {
	hub := NewHub(nil, nil)
	res := NewBridge(hub, nil).Open(markdown)
	assert.Equal(t, NoSelection(), res)
}

func TestHubRoundTrip(t *testing.T) {
	metrics := monitoring.NewMetrics()
	hub := NewHub(nil, nil).WithMetrics(metrics)
	conn := connectHost(t, hub, newHubServer(t, hub))
	bridge := NewBridge(hub, nil)

	ch := awaitBridge(t, func() Result { return bridge.Save(markdown) })
	req := answerNext(t, conn, strPtr("/home/me/post.md"))

	assert.Equal(t, "save", req.Mode)
	assert.Equal(t, "Open Markdown File", req.Title)
	assert.Equal(t, "Markdown", req.Label)
	assert.Equal(t, []string{"md"}, req.Extensions)
	assert.NotEmpty(t, req.ID)

	assert.Equal(t, Chosen("/home/me/post.md"), receive(t, ch))
	assert.Equal(t, 0, hub.Pending())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WSConnections))
}

func TestHubDismissedByFrontend(t *testing.T) {
	hub := NewHub(nil, nil)
	conn := connectHost(t, hub, newHubServer(t, hub))
	bridge := NewBridge(hub, nil)

	ch := awaitBridge(t, func() Result { return bridge.Open(markdown) })
	answerNext(t, conn, nil)

	assert.Equal(t, NoSelection(), receive(t, ch))
}

func TestHubRejectsPathOutsideFilter(t *testing.T) {
	hub := NewHub(nil, nil)
	conn := connectHost(t, hub, newHubServer(t, hub))
	bridge := NewBridge(hub, nil)

	ch := awaitBridge(t, func() Result { return bridge.Open(markdown) })
	answerNext(t, conn, strPtr("/etc/passwd"))

	assert.Equal(t, NoSelection(), receive(t, ch))
}

func TestHubDisconnectDismissesPending(t *testing.T) {
	hub := NewHub(nil, nil)
	conn := connectHost(t, hub, newHubServer(t, hub))
	bridge := NewBridge(hub, nil)

	ch := awaitBridge(t, func() Result { return bridge.Open(markdown) })

	var req types.DialogMessage
	require.NoError(t, conn.ReadJSON(&req))
	require.Equal(t, 1, hub.Pending())
	conn.Close()

	assert.Equal(t, NoSelection(), receive(t, ch))
	require.Eventually(t, func() bool { return !hub.Connected() }, 2*time.Second, 10*time.Millisecond)
}

func TestHubPingAndUnknownMessages(t *testing.T) {
	hub := NewHub(nil, nil)
	conn := connectHost(t, hub, newHubServer(t, hub))

	require.NoError(t, conn.WriteJSON(types.DialogMessage{Type: "ping"}))
	var msg types.DialogMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "pong", msg.Type)

	require.NoError(t, conn.WriteJSON(types.DialogMessage{Type: "bogus"}))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg.Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg.Type)

	// a result nobody asked for is ignored
	raw, err := json.Marshal(types.DialogMessage{Type: "dialog_result", ID: "missing", Path: strPtr("/a.md")})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, raw))
	require.NoError(t, conn.WriteJSON(types.DialogMessage{Type: "ping"}))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "pong", msg.Type)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"tauri://localhost"})

	req := httptest.NewRequest("GET", "/dialog/stream", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "tauri://localhost")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, check(req))

	assert.True(t, originChecker([]string{"*"})(req))
	assert.True(t, originChecker(nil)(req))
}
