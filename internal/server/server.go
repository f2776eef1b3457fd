// Package server wires the validation, sanitization and privacy pipeline
// behind the HTTP API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/socialscope/socialscope/internal/analysis"
	"github.com/socialscope/socialscope/internal/audit"
	"github.com/socialscope/socialscope/internal/cache"
	"github.com/socialscope/socialscope/internal/config"
	"github.com/socialscope/socialscope/internal/events"
	"github.com/socialscope/socialscope/internal/logger"
	"github.com/socialscope/socialscope/internal/privacy"
	"github.com/socialscope/socialscope/internal/sanitize"
	"github.com/socialscope/socialscope/internal/urlcheck"
)

// Version is stamped at build time via -ldflags.
var Version = "0.1.0"

// sweepInterval drives the background erasure of expired tracking entries.
const sweepInterval = time.Minute

// Server is the HTTP front of the analysis pipeline.
type Server struct {
	config    *config.Config
	logger    *logger.Logger
	validator *urlcheck.Validator
	sanitizer *sanitize.Sanitizer
	reporter  *privacy.Reporter
	provider  analysis.Provider
	cache     *cache.ValidationCache
	audit     audit.Store
	hub       *events.Hub
	auth      *AuthService
	limiter   *rateLimiter

	router *mux.Router
	server *http.Server

	sweepDone chan struct{}
}

// New assembles the server and all pipeline components from configuration.
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	store, err := newTrackingStore(cfg.Sanitizer, log.WithComponent("registry"))
	if err != nil {
		return nil, fmt.Errorf("failed to create tracking store: %w", err)
	}

	provider, err := analysis.NewProvider(cfg.Analysis, log.WithComponent("analysis"))
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create analysis provider: %w", err)
	}

	var auditStore audit.Store = audit.NewNoopStore()
	if cfg.Audit.Enabled {
		auditStore, err = audit.NewPostgresStore(cfg.Audit, log.WithComponent("audit"))
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to create audit store: %w", err)
		}
	}

	catalog := privacy.NewCatalog(log.WithComponent("privacy"))

	s := &Server{
		config:    cfg,
		logger:    log.WithComponent("server"),
		validator: urlcheck.New(log.WithComponent("urlcheck")),
		sanitizer: sanitize.New(store, log.WithComponent("sanitize"), sanitize.Options{
			MaxTextLength: cfg.Sanitizer.MaxTextLength,
		}),
		reporter:  privacy.NewReporter(catalog, privacy.NewScorer(), log.WithComponent("privacy")),
		provider:  provider,
		audit:     auditStore,
		hub:       events.NewHub(cfg.WebSocket, log.WithComponent("events")),
		auth:      NewAuthService(cfg.Auth),
		limiter:   newRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		router:    mux.NewRouter(),
		sweepDone: make(chan struct{}),
	}

	if cfg.Cache.Enabled {
		s.cache = cache.NewValidationCache(cfg.Cache.TTL)
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s, nil
}

func newTrackingStore(cfg config.SanitizerConfig, log *logger.Logger) (sanitize.Store, error) {
	switch cfg.Registry.Backend {
	case "redis":
		return sanitize.NewRedisStore(cfg.Registry.RedisURL, cfg.Registry.KeyPrefix, cfg.TrackingTTL, log)
	default:
		return sanitize.NewMemoryStore(cfg.TrackingTTL), nil
	}
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/info", s.handleInfo).Methods("GET")

	if s.config.WebSocket.Enabled {
		path := s.config.WebSocket.Path
		if path == "" {
			path = "/ws"
		}
		s.router.HandleFunc(path, s.hub.HandleWS).Methods("GET")
	}

	api := s.router.PathPrefix("/v1").Subrouter()
	api.Use(s.loggingMiddleware)
	api.Use(s.rateLimitMiddleware)
	api.Use(s.authMiddleware)
	api.HandleFunc("/validate-url", s.handleValidateURL).Methods("POST")
	api.HandleFunc("/sanitize", s.handleSanitize).Methods("POST")
	api.HandleFunc("/sanitize/report", s.handleSanitizeReport).Methods("GET")
	api.HandleFunc("/analyze", s.handleAnalyze).Methods("POST")
	api.HandleFunc("/data/{tracking_id}", s.handleDataDeletion).Methods("DELETE")
}

// Start runs the event hub, the sweep loop and the HTTP listener. It blocks
// until the listener stops.
func (s *Server) Start() error {
	s.logger.Info("Starting server",
		zap.Int("port", s.config.Server.Port),
		zap.String("registry_backend", s.config.Sanitizer.Registry.Backend),
		zap.String("analysis_provider", s.provider.Name()),
		zap.Bool("audit_enabled", s.config.Audit.Enabled),
	)

	go s.hub.Run()
	go s.sweepLoop()

	return s.server.ListenAndServe()
}

// sweepLoop periodically erases expired tracking entries.
func (s *Server) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			removed, err := s.sanitizer.Store().Sweep(ctx)
			cancel()
			if err != nil {
				s.logger.Error("Tracking sweep failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				s.logger.Info("Expired tracking data erased", zap.Int("removed", removed))
			}
		case <-s.sweepDone:
			return
		}
	}
}

// Stop shuts the listener down gracefully and releases every component.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping server")

	close(s.sweepDone)
	err := s.server.Shutdown(ctx)

	s.hub.Close()
	if cerr := s.sanitizer.Store().Close(); cerr != nil && err == nil {
		err = cerr
	}
	if cerr := s.audit.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Hub exposes the event hub for pipeline components.
func (s *Server) Hub() *events.Hub {
	return s.hub
}
