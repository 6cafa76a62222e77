package http

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/BlogWriter/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/service"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/shared/types"
)

const (
	headerRequestID = tracing.HeaderRequestID
	headerWindowID  = "X-Window-ID"
)

// DialogStatus reports on the front-end dialog host, when one is in use
type DialogStatus interface {
	Connected() bool
	Pending() int
}

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	dialogs  DialogStatus
	backend  string
	started  time.Time
	version  string
}

// Options configures optional handler dependencies
type Options struct {
	Metrics       *monitoring.Metrics
	Dialogs       DialogStatus
	DialogBackend string
	Version       string
}

// NewHandlers creates a new handler set
func NewHandlers(registry *service.Registry, logger *logging.Logger, opts Options) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	if opts.Version == "" {
		opts.Version = "0.1.0"
	}
	return &Handlers{
		registry: registry,
		logger:   logger,
		metrics:  opts.Metrics,
		dialogs:  opts.Dialogs,
		backend:  opts.DialogBackend,
		started:  time.Now(),
		version:  opts.Version,
	}
}

// Root handles the liveness check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "BlogWriter backend (Go)",
		"version": h.version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	dialog := gin.H{"backend": h.backend}
	if h.dialogs != nil {
		dialog["connected"] = h.dialogs.Connected()
		dialog["pending"] = h.dialogs.Pending()
	}

	body := gin.H{
		"status":         "healthy",
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"registry":       h.registry.Stats(),
		"dialog":         dialog,
	}
	if h.metrics != nil {
		body["commands"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}

// ListCommands lists every invocable command
func (h *Handlers) ListCommands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(nil),
		"commands": h.registry.Commands(),
	})
}

// Invoke runs a command. The JSON body carries its arguments; an empty body means none.
// Command failures are reported in the result, not the status code.
func (h *Handlers) Invoke(c *gin.Context) {
	command := c.Param("command")
	requestID := c.GetHeader(headerRequestID)
	if requestID == "" {
		requestID = string(tracing.GetTraceID(c.Request.Context()))
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header(headerRequestID, requestID)

	if _, ok := h.registry.Lookup(command); !ok {
		c.JSON(http.StatusNotFound, types.Failure("command not found: "+command))
		return
	}

	params, err := bindArguments(c)
	if err != nil {
		h.logger.Warn("Rejected malformed command arguments",
			zap.String("command", command),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, types.Failure("invalid arguments: "+err.Error()))
		return
	}

	appCtx := &types.Context{RequestID: &requestID}
	if window := c.GetHeader(headerWindowID); window != "" {
		appCtx.WindowID = &window
	}

	h.logger.Debug("Invoking command", zap.String("command", command), zap.String("request_id", requestID))
	result, err := h.registry.Execute(c.Request.Context(), command, params, appCtx)
	if errors.Is(err, service.ErrCommandNotFound) {
		c.JSON(http.StatusNotFound, types.Failure(err.Error()))
		return
	}
	if err != nil {
		h.logger.Error("Command execution failed", zap.String("command", command), zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.Failure(err.Error()))
		return
	}

	if !result.Success && result.Error != nil {
		h.logger.Info("Command reported failure",
			zap.String("command", command),
			zap.String("request_id", requestID),
			zap.String("error", *result.Error),
		)
	}
	c.JSON(http.StatusOK, result)
}

// bindArguments decodes the request body as a JSON object
func bindArguments(c *gin.Context) (types.InvokeRequest, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	params := types.InvokeRequest{}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return params, nil
	}
	if err := sonic.Unmarshal(raw, &params); err != nil {
		return nil, err
	}
	return params, nil
}
