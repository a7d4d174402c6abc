package contact

import (
	"context"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/diogo/folio/internal/config"
	apierrors "github.com/diogo/folio/internal/errors"
	"github.com/diogo/folio/internal/models"
	"github.com/diogo/folio/internal/transport"
)

// EmailJS delivers forms through the EmailJS REST API
type EmailJS struct {
	httpClient tls_client.HttpClient
	cfg        config.ContactConfig
	endpoint   string
	logger     *zap.Logger
}

// NewEmailJS creates a mailer for cfg. An unconfigured mailer is still
// returned; its Send fails with ErrMailerNotConfigured.
func NewEmailJS(cfg config.ContactConfig, logger *zap.Logger) (*EmailJS, error) {
	client, err := transport.New(transport.DefaultOptions())
	if err != nil {
		return nil, err
	}
	return NewEmailJSWithClient(client, cfg, logger), nil
}

// NewEmailJSWithClient creates a mailer around an existing client
func NewEmailJSWithClient(client tls_client.HttpClient, cfg config.ContactConfig, logger *zap.Logger) *EmailJS {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailJS{
		httpClient: client,
		cfg:        cfg,
		endpoint:   models.EndpointEmailJS,
		logger:     logger,
	}
}

type templateParams struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Message   string `json:"message"`
	ToEmail   string `json:"to_email"`
}

type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams templateParams `json:"template_params"`
}

// Send implements Mailer
func (e *EmailJS) Send(ctx context.Context, form Form) error {
	if !e.cfg.Configured() {
		return apierrors.ErrMailerNotConfigured
	}

	payload := sendRequest{
		ServiceID:  e.cfg.ServiceID,
		TemplateID: e.cfg.TemplateID,
		UserID:     e.cfg.PublicKey,
		TemplateParams: templateParams{
			FromName:  form.Name,
			FromEmail: form.Email,
			Message:   form.Message,
			ToEmail:   e.cfg.Recipient,
		},
	}

	resp, err := transport.PostJSON(ctx, e.httpClient, e.endpoint, models.JSONHeaders(), payload)
	if err != nil {
		e.logger.Error("contact delivery failed", zap.Error(err))
		return apierrors.NewNetworkError(e.endpoint, err)
	}

	if resp.StatusCode != 200 {
		msg := string(resp.Body)
		if gjson.ValidBytes(resp.Body) {
			msg = gjson.GetBytes(resp.Body, "error").String()
		}
		if msg == "" {
			msg = "email delivery failed"
		}
		e.logger.Warn("contact delivery rejected", zap.Int("status", resp.StatusCode), zap.String("message", msg))
		return apierrors.NewAPIError(resp.StatusCode, e.endpoint, msg)
	}

	e.logger.Info("contact message sent")
	return nil
}
