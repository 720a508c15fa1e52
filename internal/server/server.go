// Package server provides the web UI and JSON API for resume fit analysis.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/career-copilot/internal/analysis"
	"github.com/jonathan/career-copilot/internal/assets"
	"github.com/jonathan/career-copilot/internal/config"
	"github.com/jonathan/career-copilot/internal/extraction"
	"github.com/jonathan/career-copilot/internal/feedback"
	"github.com/jonathan/career-copilot/internal/llm"
	"github.com/jonathan/career-copilot/internal/report"
	"github.com/jonathan/career-copilot/internal/retrieval"
	"github.com/jonathan/career-copilot/internal/server/ratelimit"
	"github.com/jonathan/career-copilot/internal/session"
)

// Analyzer runs one resume-to-role analysis.
type Analyzer interface {
	Run(ctx context.Context, resumeText, targetRole string) (*analysis.Result, error)
}

// AssetMaker generates downloadable assets from a completed analysis.
type AssetMaker interface {
	CoverLetter(ctx context.Context, req assets.CoverLetterRequest) (string, error)
	Questions(ctx context.Context, req assets.QuestionsRequest) ([]assets.Question, error)
}

// Indexer indexes resume text for passage retrieval.
type Indexer interface {
	IndexText(ctx context.Context, sessionID, text string) (retrieval.Handle, error)
}

// Server is the HTTP server and its dependencies.
type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    session.Store
	analyzer Analyzer
	assets   AssetMaker
	indexer  Indexer
	feedback *feedback.Store
	limiter  *ratelimit.Limiter

	httpServer *http.Server
	closers    []io.Closer

	// Indirections for tests; defaulted in New.
	extract  func(filename string, data []byte) (string, error)
	printPDF func(ctx context.Context, html string, timeout time.Duration) ([]byte, error)
}

// demoAnalyzer adapts the deterministic keyword analysis to the Analyzer
// interface for offline deployments.
type demoAnalyzer struct{}

func (demoAnalyzer) Run(_ context.Context, resumeText, targetRole string) (*analysis.Result, error) {
	return analysis.Demo(resumeText, targetRole), nil
}

// New wires the full server from configuration.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		limiter:  ratelimit.NewLimiter(ratelimit.LoadConfig()),
		extract: func(filename string, data []byte) (string, error) {
			return extraction.ExtractText(filename, data, cfg.MaxUploadBytes)
		},
		printPDF: report.PrintPDF,
	}

	// Session store: PostgreSQL when configured, local files otherwise.
	if cfg.DatabaseURL != "" {
		store, err := session.NewPGStore(context.Background(), cfg.DatabaseURL, cfg.SessionTTL)
		if err != nil {
			return nil, err
		}
		s.store = store
	} else {
		store, err := session.NewFileStore(cfg.DataDir, cfg.SessionTTL)
		if err != nil {
			return nil, err
		}
		s.store = store
	}
	s.closers = append(s.closers, s.store)

	fb, err := feedback.NewStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	s.feedback = fb

	if err := s.wireGeneration(); err != nil {
		return nil, err
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // pipeline runs are slow
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// wireGeneration builds the provider chain, analyzer, retriever, and asset
// generator. Without any API key the server falls back to the deterministic
// keyword analysis and assets are unavailable.
func (s *Server) wireGeneration() error {
	if s.cfg.Offline() {
		s.logger.Warn("no generation provider configured, running in offline mode")
		s.analyzer = demoAnalyzer{}
		return nil
	}

	var providers []llm.Generator
	if s.cfg.GroqAPIKey != "" {
		groq, err := llm.NewGroqClient(s.cfg.GroqAPIKey, s.cfg.GroqModel)
		if err != nil {
			return fmt.Errorf("init groq client: %w", err)
		}
		providers = append(providers, groq)
	}
	if s.cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiClient(context.Background(), s.cfg.GeminiAPIKey, s.cfg.GeminiModel)
		if err != nil {
			return fmt.Errorf("init gemini client: %w", err)
		}
		providers = append(providers, gemini)
	}
	chain, err := llm.NewChain(s.logger, s.cfg.LLMTimeout, providers...)
	if err != nil {
		return err
	}
	s.closers = append(s.closers, closerFunc(chain.Close))
	s.analyzer = analysis.NewPipeline(chain, s.logger)

	if s.cfg.GeminiAPIKey != "" {
		embedder, err := retrieval.NewGeminiEmbedder(context.Background(), s.cfg.GeminiAPIKey, "")
		if err != nil {
			return fmt.Errorf("init embedder: %w", err)
		}
		s.closers = append(s.closers, closerFunc(embedder.Close))
		index := retrieval.NewIndex(embedder)
		s.indexer = index
		s.assets = assets.NewGenerator(chain, index, s.logger)
	} else {
		s.assets = assets.NewGenerator(chain, nil, s.logger)
	}
	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// routes builds the mux and wraps it with the middleware stack.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("GET /results", s.handleResults)
	mux.HandleFunc("GET /cover-letter", s.handleCoverLetterPage)
	mux.HandleFunc("POST /generate-cover-letter", s.handleGenerateCoverLetter)
	mux.HandleFunc("GET /download-cover-letter", s.handleDownloadCoverLetter)
	mux.HandleFunc("GET /generate-resume-questions", s.handleQuestions)
	mux.HandleFunc("GET /download-report", s.handleDownloadReport)
	mux.HandleFunc("GET /export/analysis.tsv", s.handleExportTSV)
	mux.HandleFunc("POST /submit-feedback", s.handleSubmitFeedback)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withLogging(s.withRateLimit(s.withIdentity(mux)))
}

// Start listens until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	s.logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.limiter.Stop()
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			s.logger.Warn("close failed", zap.Error(err))
		}
	}
	s.logger.Info("server stopped")
	return nil
}
