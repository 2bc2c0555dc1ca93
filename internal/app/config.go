package app

import "time"

// Config holds runtime configuration for the application.
type Config struct {
	// Upstream
	BaseURL   string
	UserAgent string

	// Transport
	Timeout time.Duration
	// Attempts includes the first request; negative retries forever.
	Attempts int
	// RequestInterval is the minimum spacing between requests.
	RequestInterval time.Duration

	// OffsetsPath names a YAML or JSON file overriding the page layout
	// offsets. Empty keeps the built-in layout.
	OffsetsPath string

	// Output
	Format string

	Verbose bool
}

const (
	baseURLDefault         = "https://modarchive.org"
	timeoutDefault         = 60 * time.Second
	attemptsDefault        = 1
	requestIntervalDefault = 500 * time.Millisecond
	formatDefault          = FormatPretty
)

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		BaseURL:         baseURLDefault,
		UserAgent:       defaultUserAgent(),
		Timeout:         timeoutDefault,
		Attempts:        attemptsDefault,
		RequestInterval: requestIntervalDefault,
		Format:          formatDefault,
	}
}
