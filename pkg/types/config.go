package types

import "time"

// DefaultBaseURL is the registry endpoint used when no base_url is configured.
const DefaultBaseURL = "http://0.0.0.0:5000/pnums/"

// HTTPConfig holds settings for requests to the registry.
type HTTPConfig struct {
	// BaseURL is the endpoint prefix; the action and pnum are appended verbatim.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with requests (e.g. "pls/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the number of retries on HTTP 429/503. Zero disables retrying.
	MaxRetries int `json:"retries" yaml:"retries"`

	// APIToken is sent as a bearer token when non-empty.
	APIToken string `json:"api_token,omitempty" yaml:"api_token,omitempty"`
}

// SaveFormat selects the encoding of saved responses.
type SaveFormat string

const (
	FormatJSON SaveFormat = "json"
	FormatYAML SaveFormat = "yaml"
)

// OutputConfig holds settings for saving responses.
type OutputConfig struct {
	// SaveDir is the directory saved responses are written to (default ".").
	SaveDir string `json:"save_dir" yaml:"save_dir"`

	// Format selects json or yaml.
	Format SaveFormat `json:"save_format" yaml:"save_format"`
}

// HistoryConfig holds settings for the local lookup history.
type HistoryConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// Config groups all client settings.
type Config struct {
	HTTP     HTTPConfig    `json:"http" yaml:"http"`
	Output   OutputConfig  `json:"output" yaml:"output"`
	History  HistoryConfig `json:"history" yaml:"history"`
	LogLevel string        `json:"log_level" yaml:"log_level"`
}
