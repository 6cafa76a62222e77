package dialog

import (
	"net/http"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/BlogWriter/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/shared/types"
)

const (
	msgDialogRequest = "dialog_request"
	msgDialogResult  = "dialog_result"
	msgSystem        = "system"
	msgError         = "error"
	msgPing          = "ping"
	msgPong          = "pong"
)

// Hub is a Picker hosted by the front-end: the web view keeps a WebSocket
// open, receives dialog requests and answers with the chosen path.
// Completions run on the socket's reader goroutine.
type Hub struct {
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	upgrader websocket.Upgrader

	mu      sync.Mutex
	current *hostSession
}

type hostSession struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]pendingDialog
	closed  bool
}

type pendingDialog struct {
	mode   Mode
	filter Filter
	done   Completion
}

// NewHub creates a front-end dialog host. An empty allowOrigins, or one
// containing "*", accepts any origin.
func NewHub(logger *logging.Logger, allowOrigins []string) *Hub {
	if logger == nil {
		logger = logging.NewNop()
	}
	h := &Hub{logger: logger}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowOrigins),
	}
	return h
}

// WithMetrics records connections and frames on m.
func (h *Hub) WithMetrics(m *monitoring.Metrics) *Hub {
	h.metrics = m
	return h
}

// Connected reports whether a front-end is attached.
func (h *Hub) Connected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current != nil
}

// Pending returns the number of dialogs awaiting an answer.
func (h *Hub) Pending() int {
	h.mu.Lock()
	s := h.current
	h.mu.Unlock()
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// PickFile implements Picker.
func (h *Hub) PickFile(opts Options, done Completion) {
	h.request(ModeOpen, opts, done)
}

// SaveFile implements Picker.
func (h *Hub) SaveFile(opts Options, done Completion) {
	h.request(ModeSave, opts, done)
}

func (h *Hub) request(mode Mode, opts Options, done Completion) {
	h.mu.Lock()
	s := h.current
	h.mu.Unlock()

	if s == nil {
		h.logger.Warn("No front-end connected to host the file dialog", zap.String("mode", string(mode)))
		done(NoSelection())
		return
	}

	id := uuid.NewString()
	if !s.add(id, pendingDialog{mode: mode, filter: opts.Filter, done: done}) {
		done(NoSelection())
		return
	}

	err := h.send(s, types.DialogMessage{
		Type:       msgDialogRequest,
		ID:         id,
		Mode:       string(mode),
		Title:      opts.Title,
		Label:      opts.Filter.Label,
		Extensions: opts.Filter.normalized(),
	})
	if err != nil {
		h.logger.Error("Failed to send dialog request", zap.String("id", id), zap.Error(err))
		if p, ok := s.take(id); ok {
			p.done(NoSelection())
		}
	}
}

// HandleConnection upgrades the front-end's WebSocket and serves it until it closes.
// A newer connection replaces the current one.
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	s := &hostSession{conn: conn, pending: make(map[string]pendingDialog)}

	h.mu.Lock()
	prev := h.current
	h.current = s
	h.mu.Unlock()
	if prev != nil {
		h.logger.Info("Replacing previous dialog host connection")
		prev.conn.Close()
	}

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}
	h.logger.Info("Front-end dialog host connected", zap.String("remote", conn.RemoteAddr().String()))

	h.send(s, types.DialogMessage{Type: msgSystem, Message: "dialog host connected"})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("Dialog host read error", zap.Error(err))
			}
			break
		}

		var msg types.DialogMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.send(s, types.DialogMessage{Type: msgError, Message: "invalid message"})
			continue
		}
		if h.metrics != nil {
			h.metrics.RecordWSMessage("in", msg.Type)
		}

		switch msg.Type {
		case msgDialogResult:
			h.resolve(s, msg)
		case msgPing:
			h.send(s, types.DialogMessage{Type: msgPong})
		default:
			h.send(s, types.DialogMessage{Type: msgError, Message: "unknown message type"})
		}
	}

	h.mu.Lock()
	if h.current == s {
		h.current = nil
	}
	h.mu.Unlock()

	conn.Close()
	if n := s.close(); n > 0 {
		h.logger.Warn("Dialog host disconnected with open dialogs", zap.Int("dismissed", n))
	}
	h.logger.Info("Front-end dialog host disconnected")
}

func (h *Hub) resolve(s *hostSession, msg types.DialogMessage) {
	p, ok := s.take(msg.ID)
	if !ok {
		h.logger.Warn("Result for unknown dialog", zap.String("id", msg.ID))
		return
	}

	if msg.Path == nil || *msg.Path == "" {
		p.done(NoSelection())
		return
	}

	path := *msg.Path
	if !p.filter.Matches(path) {
		h.logger.Warn("Front-end returned a path outside the dialog filter",
			zap.String("path", path),
			zap.String("filter", p.filter.Pattern()),
		)
		p.done(NoSelection())
		return
	}
	p.done(Chosen(path))
}

func (h *Hub) send(s *hostSession, msg types.DialogMessage) error {
	data, err := sonic.Marshal(msg)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	if h.metrics != nil {
		h.metrics.RecordWSMessage("out", msg.Type)
	}
	return nil
}

func (s *hostSession) add(id string, p pendingDialog) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.pending[id] = p
	return true
}

func (s *hostSession) take(id string) (pendingDialog, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	return p, ok
}

// close dismisses every dialog still waiting and returns how many there were.
func (s *hostSession) close() int {
	s.mu.Lock()
	s.closed = true
	pending := s.pending
	s.pending = make(map[string]pendingDialog)
	s.mu.Unlock()

	for _, p := range pending {
		p.done(NoSelection())
	}
	return len(pending)
}

func originChecker(allowOrigins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(allowOrigins))
	for _, o := range allowOrigins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[o] = true
	}
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}
