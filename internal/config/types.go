// internal/config/types.go

// Package config provides the YAML configuration for a scraping run: the
// seed usernames and post URLs, extraction limits, post-processing filters,
// request behavior, optional browser rendering, output destination, and
// metrics exposure.
package config

// ScraperConfig is the top-level configuration for one run.
type ScraperConfig struct {
	// Name identifies this configuration in logs and metrics
	Name string `yaml:"name"`

	// Usernames seeds the run with profile pages to expand
	Usernames []string `yaml:"usernames,omitempty"`

	// PostURLs seeds the run with explicit post/reel URLs
	PostURLs []string `yaml:"post_urls,omitempty"`

	// Limits bounds extraction work per profile and per post
	Limits LimitsConfig `yaml:"limits"`

	// Filters configures the post-processing pass
	Filters FilterConfig `yaml:"filters"`

	// Request configures the HTTP fetch layer
	Request RequestConfig `yaml:"request"`

	// Browser configures optional chromedp-rendered fetching
	Browser *BrowserConfig `yaml:"browser,omitempty"`

	// Output configures where final records go
	Output OutputConfig `yaml:"output"`

	// Metrics configures the Prometheus endpoint
	Metrics MetricsConfig `yaml:"metrics"`
}

// LimitsConfig bounds how much work a single profile or post generates.
type LimitsConfig struct {
	// MaxPostsPerProfile caps the URLs taken from one profile expansion
	MaxPostsPerProfile int `yaml:"max_posts_per_profile"`

	// IncludeComments enables comment extraction on content pages
	IncludeComments bool `yaml:"include_comments"`

	// MaxCommentsPerPost caps extracted comments per post
	MaxCommentsPerPost int `yaml:"max_comments_per_post"`
}

// FilterConfig drives the record post-processor. Include flags default to
// true; a false flag removes the corresponding fields from the output
// record entirely.
type FilterConfig struct {
	IncludeHashtags          *bool `yaml:"include_hashtags,omitempty"`
	IncludeMentions          *bool `yaml:"include_mentions,omitempty"`
	IncludeLocation          *bool `yaml:"include_location,omitempty"`
	IncludeEngagementMetrics *bool `yaml:"include_engagement_metrics,omitempty"`

	// DateFrom/DateTo restrict records to a date window (ISO dates,
	// e.g. "2024-06-01"); records outside the window are dropped
	DateFrom string `yaml:"date_from,omitempty"`
	DateTo   string `yaml:"date_to,omitempty"`

	// DropUndated drops records without a parseable timestamp when a date
	// window is active; by default they pass through unfiltered
	DropUndated bool `yaml:"drop_undated,omitempty"`
}

// RequestConfig defines HTTP fetch behavior.
type RequestConfig struct {
	// TimeoutSeconds per request
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// RetryAttempts on retryable failures (network errors, block pages)
	RetryAttempts int `yaml:"retry_attempts"`

	// RetryDelaySeconds is the base delay between attempts
	RetryDelaySeconds int `yaml:"retry_delay_seconds"`

	// RequestsPerSecond limits the request rate across all workers
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Burst allows temporary exceeding of the rate
	Burst int `yaml:"burst"`

	// MaxConcurrency bounds the fetch worker pool
	MaxConcurrency int `yaml:"max_concurrency"`

	// UserAgents rotate per request; defaults cover current browsers
	UserAgents []string `yaml:"user_agents,omitempty"`

	// Headers sent with every request
	Headers map[string]string `yaml:"headers,omitempty"`

	// Cookies sent with every request
	Cookies map[string]string `yaml:"cookies,omitempty"`
}

// BrowserConfig defines chromedp-rendered fetching for pages that only
// populate through script execution.
type BrowserConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Headless bool   `yaml:"headless"`
	Timeout  string `yaml:"timeout,omitempty"`

	// WaitDelay holds the page open after navigation before capture
	WaitDelay string `yaml:"wait_delay,omitempty"`

	UserAgent     string `yaml:"user_agent,omitempty"`
	DisableImages bool   `yaml:"disable_images"`
}

// OutputConfig defines the record sink.
type OutputConfig struct {
	// Format is one of: json, csv, sqlite, postgresql, mysql, mongodb, excel
	Format string `yaml:"format"`

	// File is the destination path for file-based formats (json, csv,
	// excel) and the database path for sqlite
	File string `yaml:"file,omitempty"`

	// DSN is the connection string for postgresql/mysql/mongodb
	DSN string `yaml:"dsn,omitempty"`

	// Table names the destination table (sqlite/postgresql/mysql) or
	// collection (mongodb); defaults to "posts"
	Table string `yaml:"table,omitempty"`

	// Database names the mongodb database; defaults to "instagram"
	Database string `yaml:"database,omitempty"`
}

// MetricsConfig defines the Prometheus/status HTTP endpoint.
type MetricsConfig struct {
	Enabled       bool   `yaml:"enabled"`
	ListenAddress string `yaml:"listen_address,omitempty"`
}
