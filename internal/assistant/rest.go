package assistant

import (
	"context"
	"fmt"
	"strings"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/folio/internal/errors"
	"github.com/diogo/folio/internal/models"
	"github.com/diogo/folio/internal/transport"
)

// REST is the backend that calls the generateContent endpoint directly
type REST struct {
	httpClient tls_client.HttpClient
	apiKey     string
	baseURL    string
}

// NewREST creates a REST backend. An empty baseURL targets the public API.
func NewREST(apiKey, baseURL string) (*REST, error) {
	client, err := transport.New(transport.DefaultOptions())
	if err != nil {
		return nil, err
	}
	return newRESTWithClient(client, apiKey, baseURL), nil
}

func newRESTWithClient(client tls_client.HttpClient, apiKey, baseURL string) *REST {
	if baseURL == "" {
		baseURL = models.EndpointGenerativeLanguage
	}
	return &REST{
		httpClient: client,
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Name implements Generator
func (r *REST) Name() string { return "rest" }

type restPart struct {
	Text string `json:"text"`
}

type restContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []restPart `json:"parts"`
}

type restGenerationConfig struct {
	Temperature float32 `json:"temperature"`
}

type restRequest struct {
	SystemInstruction restContent          `json:"systemInstruction"`
	Contents          []restContent        `json:"contents"`
	GenerationConfig  restGenerationConfig `json:"generationConfig"`
}

func buildRESTRequest(req Request) restRequest {
	contents := make([]restContent, 0, len(req.History)+1)
	for _, turn := range req.History {
		role := "user"
		if turn.Role == models.RoleAssistant {
			role = "model"
		}
		contents = append(contents, restContent{Role: role, Parts: []restPart{{Text: turn.Text}}})
	}
	contents = append(contents, restContent{Role: "user", Parts: []restPart{{Text: req.Message}}})

	return restRequest{
		SystemInstruction: restContent{Parts: []restPart{{Text: req.System}}},
		Contents:          contents,
		GenerationConfig:  restGenerationConfig{Temperature: req.Temperature},
	}
}

func (r *REST) endpoint(model string) string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent", r.baseURL, model)
}

// Generate implements Generator
func (r *REST) Generate(ctx context.Context, req Request) (string, error) {
	endpoint := r.endpoint(req.Model)

	headers := models.JSONHeaders()
	headers["x-goog-api-key"] = r.apiKey

	resp, err := transport.PostJSON(ctx, r.httpClient, endpoint, headers, buildRESTRequest(req))
	if err != nil {
		return "", apierrors.NewNetworkError(endpoint, err)
	}

	if resp.StatusCode != 200 {
		msg := gjson.GetBytes(resp.Body, "error.message").String()
		if msg == "" {
			msg = "generate content failed"
		}
		body := resp.Body
		if len(body) > transport.MaxErrorBody {
			body = body[:transport.MaxErrorBody]
		}
		return "", apierrors.NewAPIError(resp.StatusCode, endpoint, msg).WithBody(string(body))
	}

	return parseRESTReply(resp.Body)
}

// parseRESTReply concatenates the text parts of the first candidate
func parseRESTReply(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", apierrors.NewParseError("response is not valid JSON", "")
	}

	var b strings.Builder
	for _, part := range gjson.GetBytes(body, "candidates.0.content.parts.#.text").Array() {
		b.WriteString(part.String())
	}
	return b.String(), nil
}
