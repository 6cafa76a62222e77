package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/BlogWriter/backend/internal/api/http"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/api/middleware"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/dialog"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/providers/editor"
	"github.com/GriffinCanCode/BlogWriter/backend/internal/service"
)

const dialogStreamPath = "/dialog/stream"

// Server wraps the HTTP server and dependencies
type Server struct {
	config   *config.Config
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
	registry *service.Registry
	hub      *dialog.Hub
	router   *gin.Engine
	handler  http.Handler
	httpSrv  *http.Server
}

// Option customises server construction
type Option func(*options)

type options struct {
	logger *logging.Logger
	picker dialog.Picker
}

// WithLogger replaces the logger built from configuration
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithPicker replaces the configured dialog backend
func WithPicker(p dialog.Picker) Option {
	return func(o *options) { o.picker = p }
}

// New creates a new server instance
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		l, err := logging.New(logging.Config{Level: cfg.Logging.Level, Development: cfg.Logging.Development})
		if err != nil {
			return nil, fmt.Errorf("failed to build logger: %w", err)
		}
		logger = l
	}

	logger.Info("Initializing BlogWriter backend",
		zap.String("addr", net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)),
		zap.String("dialog_backend", cfg.Dialog.Backend),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("backend", logger.Named("trace").Logger)

	// dialog backend
	var hub *dialog.Hub
	picker := o.picker
	if picker == nil {
		switch cfg.Dialog.Backend {
		case "frontend":
			hub = dialog.NewHub(logger.Named("dialog"), cfg.Server.AllowOrigins).WithMetrics(metrics)
			picker = hub
		default:
			picker = dialog.NewNativePicker(logger.Named("dialog"))
		}
	}
	bridge := dialog.NewBridge(picker, logger.Named("dialog")).WithMetrics(metrics)

	// command providers
	registry := service.NewRegistry()
	editorProvider := editor.NewProvider(bridge, editor.Config{
		Filter: dialog.Filter{
			Label:      cfg.Files.FilterLabel,
			Extensions: []string{cfg.Files.Extension},
		},
		MaxOpenBytes: cfg.Files.MaxOpenBytes,
	}, logger.Named("editor")).WithMetrics(metrics)
	if err := registry.Register(editorProvider); err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to register editor provider: %w", err)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig().WithOrigins(cfg.Server.AllowOrigins)))

	handlerOpts := apihttp.Options{Metrics: metrics, DialogBackend: cfg.Dialog.Backend}
	if hub != nil {
		handlerOpts.Dialogs = hub
	}
	handlers := apihttp.NewHandlers(registry, logger.Named("api"), handlerOpts)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/commands", handlers.ListCommands)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.POST("/logs", handlers.StreamLogs)

	invoke := router.Group("/invoke")
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		invoke.Use(middleware.RateLimit(rl))
	}
	invoke.POST("/:command", handlers.Invoke)

	if hub != nil {
		router.GET(dialogStreamPath, hub.HandleConnection)
	}

	// websocket upgrades need the raw writer
	compressed := gzhttp.GzipHandler(router)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == dialogStreamPath {
			router.ServeHTTP(w, r)
			return
		}
		compressed.ServeHTTP(w, r)
	})

	logger.Info("Server initialized successfully", zap.Int("commands", len(registry.Commands())))

	return &Server{
		config:   cfg,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		registry: registry,
		hub:      hub,
		router:   router,
		handler:  handler,
		httpSrv:  &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Registry returns the command registry
func (s *Server) Registry() *service.Registry {
	return s.registry
}

// Run starts the HTTP server and blocks until it stops.
// A graceful Shutdown is not reported as an error.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpSrv.Addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx ends
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		s.logger.Error("Graceful shutdown failed", zap.Error(err))
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

// Close releases the remaining resources. Call it after Shutdown.
func (s *Server) Close() error {
	s.tracer.Close()
	// stderr sync fails on some platforms
	_ = s.logger.Sync()
	return nil
}
