// Package config defines service configuration structures and loading.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// ClusterMileThreshold is the maximum distance in miles between a rest
	// event and a cluster's mean mile for the event to join the cluster.
	ClusterMileThreshold float64 `koanf:"cluster_mile_threshold"`

	// CriticalSegmentLimit caps the critical-segments ranking.
	CriticalSegmentLimit int `koanf:"critical_segment_limit"`

	// MaxSelectedRunners caps the number of runners per comparison request.
	MaxSelectedRunners int `koanf:"max_selected_runners"`

	// AnalyticsBaseURL is the base URL of the upstream analytics producer.
	// Empty disables fetching; requests must then carry analyses inline.
	AnalyticsBaseURL string `koanf:"analytics_base_url"`

	// AnalyticsTimeoutMS bounds a single per-runner analysis fetch.
	AnalyticsTimeoutMS int `koanf:"analytics_timeout_ms"`

	// AnalyticsConcurrency bounds concurrent per-runner fetches.
	AnalyticsConcurrency int `koanf:"analytics_concurrency"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":8090",
		ClusterMileThreshold: 5.0,
		CriticalSegmentLimit: 5,
		MaxSelectedRunners:   12,
		AnalyticsBaseURL:     "",
		AnalyticsTimeoutMS:   5000,
		AnalyticsConcurrency: 4,
	}
}
