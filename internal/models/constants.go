// Package models contains data types and constants shared across folio.
package models

import (
	"strings"
	"time"
)

// Endpoints for external services
const (
	EndpointGenerativeLanguage = "https://generativelanguage.googleapis.com"
	EndpointEmailJS            = "https://api.emailjs.com/api/v1.0/email/send"
)

// Model identifies a Gemini model by its API name
type Model struct {
	Name  string // alias shown to the user
	APIID string // identifier sent to the API
}

// Available model aliases
var (
	ModelFast = Model{
		Name:  "fast",
		APIID: "gemini-3-flash-preview",
	}

	ModelFlash = Model{
		Name:  "flash",
		APIID: "gemini-2.5-flash",
	}

	ModelPro = Model{
		Name:  "pro",
		APIID: "gemini-2.5-pro",
	}

	// DefaultModel is the model the assistant uses unless configured otherwise
	DefaultModel = ModelFast
)

// AllModels returns the known model aliases
func AllModels() []Model {
	return []Model{ModelFast, ModelFlash, ModelPro}
}

// ModelFromName resolves an alias or a raw API model id.
// Unknown non-empty names are passed through verbatim so new models work
// without a release; an empty name yields DefaultModel.
func ModelFromName(name string) Model {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultModel
	}
	for _, m := range AllModels() {
		if m.Name == name || m.APIID == name {
			return m
		}
	}
	return Model{Name: name, APIID: name}
}

// Assistant constants
const (
	// AssistantName is how the assistant introduces itself
	AssistantName = "DebabrataAI"

	// Greeting seeds every conversation
	Greeting = "Hi! I'm DebabrataAI. How can I help you explore this portfolio today?"

	// FallbackEmptyReply is returned when the model produced no usable text
	FallbackEmptyReply = "I'm sorry, I couldn't process that."

	// FallbackConnection is returned when the service call failed
	FallbackConnection = "I'm having trouble connecting right now. Please try again in a moment!"

	// Temperature is the fixed sampling temperature for every request
	Temperature float32 = 0.7

	// IdleTimeout closes the assistant widget after this long without activity
	IdleTimeout = 5 * time.Minute
)

// DemoPlaceholder marks a project without a usable live demo
const DemoPlaceholder = "#"

// JSONHeaders returns the headers for JSON API requests
func JSONHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
}

// BrowserHeaders returns the headers used when fetching a demo page for preview
func BrowserHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
	}
}
