// Package server provides the HTTP API for candidate evaluations.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/panelhire/hiring-agent/internal/agents"
	"github.com/panelhire/hiring-agent/internal/config"
	"github.com/panelhire/hiring-agent/internal/db"
	"github.com/panelhire/hiring-agent/internal/llm"
	"github.com/panelhire/hiring-agent/internal/pipeline"
	"github.com/panelhire/hiring-agent/internal/preprocess"
)

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	log        *zap.Logger
	tasks      []agents.ScoringTask
	enricher   *preprocess.Enricher
	db         *db.DB
	llmClient  llm.Client
}

// New creates a server instance. The database is optional: when it is not
// configured or unreachable, the server runs without persistence.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}

	llmClient, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		log:       log,
		tasks:     agents.Panel(llmClient),
		enricher:  preprocess.NewEnricher(preprocess.NewGitHubClient(os.Getenv("GITHUB_TOKEN")), log),
		llmClient: llmClient,
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Warn("failed to connect to database, continuing without persistence", zap.Error(err))
		} else if err := database.EnsureSchema(ctx); err != nil {
			log.Warn("failed to ensure database schema, continuing without persistence", zap.Error(err))
			database.Close()
		} else {
			s.db = database
		}
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 600 * time.Second, // evaluations stream for minutes
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /evaluate", s.handleEvaluate)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /evaluations", s.handleListEvaluations)
	mux.HandleFunc("GET /evaluations/{id}", s.handleGetEvaluation)
	mux.HandleFunc("GET /evaluations/{id}/results", s.handleListTaskResults)
	return mux
}

// Start begins listening and blocks until an interrupt or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.db != nil {
		s.db.Close()
	}
	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// recorder returns the pipeline recorder, or nil when persistence is off.
func (s *Server) recorder() pipeline.Recorder {
	if s.db == nil {
		return nil
	}
	return s.db
}
