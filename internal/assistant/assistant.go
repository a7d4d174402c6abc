// Package assistant forwards portfolio questions to Gemini and turns every
// outcome into displayable text.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/diogo/folio/internal/config"
	apierrors "github.com/diogo/folio/internal/errors"
	"github.com/diogo/folio/internal/models"
)

// Request is one generate call as seen by a backend
type Request struct {
	Model       string
	System      string
	History     []models.Turn
	Message     string
	Temperature float32
}

// Generator is a Gemini backend. Implementations return the raw reply text
// or an error; fallback handling lives in Client.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Name() string
}

// Client is the stateless boundary between the widget and the model service
type Client struct {
	gen      Generator
	model    models.Model
	briefing string
	logger   *zap.Logger
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithModel sets the model sent with each request
func WithModel(model models.Model) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithLogger sets the logger used to record recovered failures
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client around gen using briefing as system instruction
func NewClient(gen Generator, briefing string, opts ...ClientOption) *Client {
	c := &Client{
		gen:      gen,
		model:    models.DefaultModel,
		briefing: briefing,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the model used for requests
func (c *Client) Model() models.Model {
	return c.model
}

// Backend names the generator in use
func (c *Client) Backend() string {
	return c.gen.Name()
}

// Send asks the model to answer userText given priorHistory, oldest first.
// It never fails: an empty reply and any error map to fixed fallback strings.
func (c *Client) Send(ctx context.Context, userText string, priorHistory []models.Turn) string {
	req := Request{
		Model:       c.model.APIID,
		System:      c.briefing,
		History:     priorHistory,
		Message:     userText,
		Temperature: models.Temperature,
	}

	c.logger.Debug("assistant request",
		zap.String("backend", c.gen.Name()),
		zap.String("model", req.Model),
		zap.Int("history", len(priorHistory)),
	)

	text, err := c.gen.Generate(ctx, req)
	if err != nil {
		c.logger.Error("assistant request failed",
			zap.String("backend", c.gen.Name()),
			zap.Int("status", apierrors.GetHTTPStatus(err)),
			zap.Error(err),
		)
		return models.FallbackConnection
	}
	if strings.TrimSpace(text) == "" {
		c.logger.Warn("assistant returned no text", zap.String("backend", c.gen.Name()))
		return models.FallbackEmptyReply
	}
	return text
}

// NewGenerator builds the backend selected by cfg. A missing API key yields
// ErrNoAPIKey; callers may fall back to Static.
func NewGenerator(ctx context.Context, cfg config.Config, apiKey string) (Generator, error) {
	if apiKey == "" {
		return nil, apierrors.ErrNoAPIKey
	}

	switch cfg.Assistant.Backend {
	case config.BackendGenAI, "":
		return NewGenAI(ctx, apiKey, cfg.Assistant.BaseURL)
	case config.BackendREST:
		return NewREST(apiKey, cfg.Assistant.BaseURL)
	default:
		return nil, apierrors.NewConfigError("assistant.backend", fmt.Sprintf("unknown value %q", cfg.Assistant.Backend))
	}
}

// Static is a generator that always fails with Err. It keeps the assistant
// usable (every reply becomes the connection fallback) when no backend can
// be built.
type Static struct {
	Err error
}

// Generate implements Generator
func (s Static) Generate(ctx context.Context, req Request) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return "", apierrors.ErrNoAPIKey
}

// Name implements Generator
func (Static) Name() string { return "offline" }
