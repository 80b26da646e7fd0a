// Package app initializes and orchestrates the main components of the review
// service. It wires together the configuration, storage, pipeline, and server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/luxmikant/ryzl/internal/analyzers"
	"github.com/luxmikant/ryzl/internal/comments"
	"github.com/luxmikant/ryzl/internal/config"
	"github.com/luxmikant/ryzl/internal/db"
	"github.com/luxmikant/ryzl/internal/github"
	"github.com/luxmikant/ryzl/internal/jobs"
	"github.com/luxmikant/ryzl/internal/llm"
	"github.com/luxmikant/ryzl/internal/pipeline"
	"github.com/luxmikant/ryzl/internal/server"
	"github.com/luxmikant/ryzl/internal/storage"
)

// App holds the main application components.
type App struct {
	ctx        context.Context
	cfg        *config.Config
	server     *server.Server
	logger     *slog.Logger
	dispatcher jobs.Dispatcher
	dbCleanup  func()
}

// NewApp sets up the application with all its dependencies.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	logger.Info("initializing review service",
		"pipeline_mode", cfg.PipelineMode,
		"llm_provider", cfg.LLMProvider,
		"max_workers", cfg.MaxWorkers)

	dbConn, dbCleanup, err := db.NewDatabase(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := dbConn.RunMigrations(); err != nil {
		dbCleanup()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	store := storage.NewStore(dbConn.DB)

	set, err := buildAnalyzerSet(cfg, logger)
	if err != nil {
		dbCleanup()
		return nil, err
	}

	var model llm.Client
	if cfg.PipelineMode == "llm" {
		model, err = llm.NewFromConfig(cfg, logger)
		if err != nil {
			dbCleanup()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
	}

	strategy := pipeline.ForMode(cfg.PipelineMode, set, model, logger)
	logger.Info("pipeline strategy selected", "strategy", strategy.Name())

	var ghClient github.Client
	if cfg.GitHubConfigured() {
		ghClient, err = github.NewFromConfig(ctx, cfg, logger)
		if err != nil {
			dbCleanup()
			return nil, fmt.Errorf("failed to create GitHub client: %w", err)
		}
	} else {
		logger.Info("no GitHub credentials configured; diff fetching and comment sync disabled")
	}

	syncer := comments.NewSyncer(cfg.CommentSyncEnabled, cfg.CommentMaxInline, ghClient, logger)
	reviewJob := jobs.NewReviewJob(store, strategy, ghClient, syncer, logger)
	dispatcher := jobs.NewDispatcher(reviewJob, cfg.MaxWorkers, logger)
	httpServer := server.NewServer(ctx, cfg, store, dispatcher, logger)

	logger.Info("review service initialized successfully")
	return &App{
		ctx:        ctx,
		cfg:        cfg,
		server:     httpServer,
		logger:     logger,
		dispatcher: dispatcher,
		dbCleanup:  dbCleanup,
	}, nil
}

// Start runs the HTTP server.
func (a *App) Start() error {
	a.logger.Info("starting review service",
		"server_port", a.cfg.ServerPort,
		"max_workers", a.cfg.MaxWorkers)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}

	return nil
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.logger.Info("shutting down review service")

	// Stop the HTTP server first to prevent new incoming requests.
	serverErr := a.server.Stop()
	if serverErr != nil {
		a.logger.Error("error during HTTP server shutdown", "error", serverErr)
		// Continue to stop other components even if the server failed.
	}

	// Stop the job dispatcher, allowing in-flight jobs to finish.
	a.dispatcher.Stop()

	a.logger.Info("closing database connection")
	a.dbCleanup()

	if serverErr != nil {
		a.logger.Error("review service stopped with errors", "error", serverErr)
		return serverErr
	}

	a.logger.Info("review service stopped successfully")
	return nil
}

// buildAnalyzerSet loads the optional analyzer policy and applies it to the
// default analyzer set. A missing policy file is not an error when no path
// was configured.
func buildAnalyzerSet(cfg *config.Config, logger *slog.Logger) ([]analyzers.Analyzer, error) {
	set := analyzers.DefaultSet()
	if cfg.AnalyzerPolicyPath == "" {
		return set, nil
	}

	policy, err := analyzers.LoadPolicy(cfg.AnalyzerPolicyPath)
	if err != nil {
		if errors.Is(err, analyzers.ErrPolicyNotFound) {
			logger.Warn("analyzer policy file not found; using defaults", "path", cfg.AnalyzerPolicyPath)
			return set, nil
		}
		return nil, fmt.Errorf("failed to load analyzer policy: %w", err)
	}

	set = policy.Apply(set)
	logger.Info("analyzer policy applied", "path", cfg.AnalyzerPolicyPath, "analyzers", analyzers.Names(set))
	return set, nil
}
