// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults and Load(ctx) to layer
//   file and environment overrides on top.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":4000".
	Addr string `koanf:"addr"`

	// BatchNotifications switches external notification delivery from
	// per-event immediate sends to the periodic batch flusher.
	BatchNotifications bool `koanf:"batch_notifications"`

	// FlushIntervalSeconds sets the batch flusher period.
	FlushIntervalSeconds int `koanf:"flush_interval_seconds"`

	// TopKeywords caps the keyword list returned by team analytics.
	TopKeywords int `koanf:"top_keywords"`

	// MinKeywordLength drops shorter tokens during keyword extraction.
	MinKeywordLength int `koanf:"min_keyword_length"`

	// SubscriberBuffer sets the per-subscriber channel buffer for live feeds.
	SubscriberBuffer int `koanf:"subscriber_buffer"`

	// SlackWebhookURL configures the external notification channel.
	// Empty disables outbound delivery.
	SlackWebhookURL string `koanf:"slack_webhook_url"`

	// SeedFixtures loads the demo directory and recognitions at startup.
	SeedFixtures bool `koanf:"seed_fixtures"`
}

// Default configuration values.
const (
	defaultAddr          = ":4000"
	defaultFlushSeconds  = 600 // 10 minutes
	defaultTopKeywords   = 5
	defaultMinKeywordLen = 4
	defaultSubBuffer     = 16
)

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 defaultAddr,
		BatchNotifications:   false,
		FlushIntervalSeconds: defaultFlushSeconds,
		TopKeywords:          defaultTopKeywords,
		MinKeywordLength:     defaultMinKeywordLen,
		SubscriberBuffer:     defaultSubBuffer,
		SlackWebhookURL:      "",
		SeedFixtures:         true,
	}
}
