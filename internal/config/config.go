package config

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
)

// Env variable names consumed at startup.
const (
	EnvStorageRoot = "RECAP_STORAGE_ROOT"
	EnvLogFormat   = "RECAP_LOG_FORMAT"
)

// ScoreWeights is the search scoring policy table. The values are additive
// per occurrence (content, title) or per exact-match term (topic).
type ScoreWeights struct {
	Content int `json:"content"`
	Title   int `json:"title"`
	Topic   int `json:"topic"`
}

// Config holds application configuration.
type Config struct {
	// StorageRoot is the base directory for all persisted artifacts.
	// Injected at startup (env or flag), never read from the config file.
	StorageRoot string `json:"-"`

	// MaxContentBytes is the maximum size of conversation content.
	MaxContentBytes int `json:"max_content_bytes"`

	// MaxTitleChars is the maximum title length after sanitization.
	MaxTitleChars int `json:"max_title_chars"`

	// MaxTopics caps how many topics are extracted per conversation.
	MaxTopics int `json:"max_topics"`

	// DefaultSearchLimit applies when a search gives no limit (or a
	// non-positive one). MaxSearchLimit is the clamp ceiling.
	DefaultSearchLimit int `json:"default_search_limit"`
	MaxSearchLimit     int `json:"max_search_limit"`

	// PreviewChars bounds the text window returned with each search result.
	PreviewChars int `json:"preview_chars"`

	// StrictDates rejects unparseable dates instead of falling back to now.
	StrictDates bool `json:"strict_dates,omitempty"`

	// LogFormat selects the slog handler: "text" (default) or "json".
	LogFormat string `json:"log_format,omitempty"`

	// Weights is the search scoring policy table.
	Weights ScoreWeights `json:"score_weights"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxContentBytes:    1 << 20, // 1 MiB
		MaxTitleChars:      100,
		MaxTopics:          8,
		DefaultSearchLimit: 10,
		MaxSearchLimit:     100,
		PreviewChars:       500,
		LogFormat:          "text",
		Weights:            ScoreWeights{Content: 1, Title: 3, Topic: 5},
	}
}

// ResolveRoot returns the storage root: RECAP_STORAGE_ROOT if set,
// otherwise ~/.recap.
func ResolveRoot() (string, error) {
	if root := os.Getenv(EnvStorageRoot); root != "" {
		return root, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".recap"), nil
}

// Load loads configuration from root/config.json merged over defaults, then
// applies env overrides. A missing file yields defaults. The root parameter
// allows tests to use t.TempDir() instead of ~/.recap.
func Load(root string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(root, "config.json"))
	if err != nil {
		return nil, err
	}
	merged := Merge(DefaultConfig(), cfg)
	merged.StorageRoot = root

	if format := os.Getenv(EnvLogFormat); format != "" {
		merged.LogFormat = format
	}
	return merged, nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge combines base and overlay configs. Overlay values take precedence
// for non-zero scalars.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.MaxContentBytes = pick(overlay.MaxContentBytes, base.MaxContentBytes)
	result.MaxTitleChars = pick(overlay.MaxTitleChars, base.MaxTitleChars)
	result.MaxTopics = pick(overlay.MaxTopics, base.MaxTopics)
	result.DefaultSearchLimit = pick(overlay.DefaultSearchLimit, base.DefaultSearchLimit)
	result.MaxSearchLimit = pick(overlay.MaxSearchLimit, base.MaxSearchLimit)
	result.PreviewChars = pick(overlay.PreviewChars, base.PreviewChars)

	result.StrictDates = base.StrictDates || overlay.StrictDates

	result.LogFormat = overlay.LogFormat
	if result.LogFormat == "" {
		result.LogFormat = base.LogFormat
	}

	result.Weights.Content = pick(overlay.Weights.Content, base.Weights.Content)
	result.Weights.Title = pick(overlay.Weights.Title, base.Weights.Title)
	result.Weights.Topic = pick(overlay.Weights.Topic, base.Weights.Topic)

	return result
}

func pick(overlay, base int) int {
	if overlay != 0 {
		return overlay
	}
	return base
}

// NewLogger builds a slog.Logger per the configured log format.
// Logs go to stderr: stdout is reserved for CLI JSON output and the MCP
// stdio transport.
func NewLogger(format string) *slog.Logger {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	} else {
		handler = slog.NewTextHandler(os.Stderr, nil)
	}
	return slog.New(handler)
}
