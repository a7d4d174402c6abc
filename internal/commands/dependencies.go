package commands

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/diogo/folio/internal/assistant"
	"github.com/diogo/folio/internal/config"
	"github.com/diogo/folio/internal/content"
	apierrors "github.com/diogo/folio/internal/errors"
	"github.com/diogo/folio/internal/logging"
	"github.com/diogo/folio/internal/models"
	"github.com/diogo/folio/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	Run(opts tui.Options) error
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

// Run starts the full-screen application
func (DefaultTUI) Run(opts tui.Options) error {
	return tui.Run(opts)
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// TUI is the terminal user interface.
	TUI TUIInterface

	// Generator overrides the backend built from config.
	Generator assistant.Generator
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI: DefaultTUI{},
	}
}

// app is everything a command needs, built from config and the environment
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	registry  *content.Registry
	assistant *assistant.Client
}

// loadApp reads .env and the config file, then builds the logger, the
// catalog and the assistant client. A missing API key is not fatal: the
// assistant answers with the connection fallback instead.
func loadApp(ctx context.Context, deps *Dependencies) (*app, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if modelFlag != "" {
		cfg.DefaultModel = modelFlag
	}
	if verboseFlag {
		cfg.Verbose = true
	}

	logger, err := logging.New(logging.Options{File: cfg.LogFile, Verbose: cfg.Verbose})
	if err != nil {
		return nil, err
	}

	registry, err := content.LoadOrDefault(cfg.ContentFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	gen := deps.Generator
	if gen == nil {
		gen, err = assistant.NewGenerator(ctx, cfg, config.APIKey())
		switch {
		case errors.Is(err, apierrors.ErrNoAPIKey):
			logger.Warn("no API key, assistant runs offline")
			gen = assistant.Static{Err: err}
		case err != nil:
			return nil, err
		}
	}

	client := assistant.NewClient(gen, assistant.Briefing(registry),
		assistant.WithModel(models.ModelFromName(cfg.DefaultModel)),
		assistant.WithLogger(logger),
	)

	logger.Debug("app loaded",
		zap.String("backend", client.Backend()),
		zap.String("model", client.Model().APIID),
		zap.Int("projects", len(registry.Projects())),
	)

	return &app{cfg: cfg, logger: logger, registry: registry, assistant: client}, nil
}
