// Package config handles configuration and environment loading for folio.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	apierrors "github.com/diogo/folio/internal/errors"
	"github.com/diogo/folio/internal/models"
)

// Assistant backends
const (
	BackendGenAI = "genai"
	BackendREST  = "rest"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`              // "dark", "light", or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// AssistantConfig selects how the assistant reaches Gemini
type AssistantConfig struct {
	// Backend is "genai" (official SDK) or "rest" (raw HTTP over tls-client)
	Backend string `json:"backend"`
	// BaseURL overrides the API host, e.g. for a gateway
	BaseURL string `json:"base_url,omitempty"`
}

// ContactConfig holds the EmailJS identifiers for the contact form
type ContactConfig struct {
	ServiceID  string `json:"service_id,omitempty"`
	TemplateID string `json:"template_id,omitempty"`
	PublicKey  string `json:"public_key,omitempty"`
	Recipient  string `json:"recipient,omitempty"`
}

// Configured reports whether every field the mailer needs is set
func (c ContactConfig) Configured() bool {
	return c.ServiceID != "" && c.TemplateID != "" && c.PublicKey != "" && c.Recipient != ""
}

// Config represents the user configuration
type Config struct {
	DefaultModel string          `json:"default_model"`
	Assistant    AssistantConfig `json:"assistant"`
	// AutoClose controls automatic closing of the assistant widget after inactivity.
	AutoClose bool `json:"auto_close"`
	// CloseDelay is the number of seconds of inactivity before the widget closes.
	// Default is 300 (5 minutes).
	CloseDelay int `json:"close_delay"`
	// Verbose enables debug logging.
	Verbose     bool           `json:"verbose"`
	TUITheme    string         `json:"tui_theme,omitempty"`
	ContentFile string         `json:"content_file,omitempty"` // YAML catalog overriding the built-in one
	LogFile     string         `json:"log_file,omitempty"`
	Markdown    MarkdownConfig `json:"markdown,omitempty"`
	Contact     ContactConfig  `json:"contact,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		DefaultModel: models.DefaultModel.Name,
		Assistant: AssistantConfig{
			Backend: BackendGenAI,
		},
		AutoClose:  true,
		CloseDelay: int(models.IdleTimeout / time.Second),
		Verbose:    false,
		TUITheme:   "midnight",
		Markdown:   DefaultMarkdownConfig(),
	}
}

// IdleTimeout returns the widget inactivity timeout, or 0 when auto-close is off
func (c Config) IdleTimeout() time.Duration {
	if !c.AutoClose {
		return 0
	}
	if c.CloseDelay <= 0 {
		return models.IdleTimeout
	}
	return time.Duration(c.CloseDelay) * time.Second
}

// Validate checks enumerated fields
func (c Config) Validate() error {
	switch c.Assistant.Backend {
	case BackendGenAI, BackendREST:
	default:
		return apierrors.NewConfigError("assistant.backend", fmt.Sprintf("unknown value %q (want genai or rest)", c.Assistant.Backend))
	}
	if c.CloseDelay < 0 {
		return apierrors.NewConfigError("close_delay", "must not be negative")
	}
	return nil
}

// GetConfigDir returns the configuration directory path.
// FOLIO_HOME overrides the default ~/.folio.
func GetConfigDir() (string, error) {
	if dir := os.Getenv("FOLIO_HOME"); dir != "" {
		return filepath.Abs(dir)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".folio"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLocationPath returns the path of the persisted navigation token
func GetLocationPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "location"), nil
}

// LoadConfig loads the configuration from disk and applies environment overrides
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return DefaultConfig(), apierrors.NewParseError(err.Error(), configPath)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// applyEnv lets environment variables override file values
func applyEnv(cfg *Config) {
	if v := os.Getenv("FOLIO_MODEL"); v != "" {
		cfg.DefaultModel = v
	}
	if v := os.Getenv("FOLIO_BACKEND"); v != "" {
		cfg.Assistant.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("FOLIO_BASE_URL"); v != "" {
		cfg.Assistant.BaseURL = v
	}
	if v := os.Getenv("FOLIO_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("EMAILJS_PUBLIC_KEY"); v != "" {
		cfg.Contact.PublicKey = v
	}
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadDotEnv loads .env from the working directory and from the config
// directory. Variables already present in the environment win.
func LoadDotEnv() error {
	candidates := []string{".env"}
	if dir, err := GetConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, ".env"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// APIKey returns the Gemini API key from GEMINI_API_KEY or API_KEY
func APIKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("API_KEY")
}
