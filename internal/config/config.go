// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// UpdatesFeedURL is the CSV export URL of the work-order status sheet.
	UpdatesFeedURL string `koanf:"updates_feed_url"`

	// PropertiesFeedURL is the CSV export URL of the geocoded property sheet.
	PropertiesFeedURL string `koanf:"properties_feed_url"`

	// CacheTTLSeconds bounds how long fetched feed tables stay fresh.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// FetchTimeoutSeconds bounds one upstream feed request.
	FetchTimeoutSeconds int `koanf:"fetch_timeout_seconds"`

	// DueSoonWindowDays sets the horizon for due-soon selection.
	DueSoonWindowDays int `koanf:"due_soon_window_days"`

	// ResourcesDir is where crew resource uploads are stored.
	ResourcesDir string `koanf:"resources_dir"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9090",
		CacheTTLSeconds:     300,
		FetchTimeoutSeconds: 30,
		DueSoonWindowDays:   7,
		ResourcesDir:        "resources",
	}
}
