// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFromFile reads, parses, and defaults a configuration file. The
// returned config still needs Validate before use.
func LoadFromFile(path string) (*ScraperConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg ScraperConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills unset options with their documented defaults.
func (c *ScraperConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "instagram-post-scraper"
	}
	if c.Limits.MaxPostsPerProfile <= 0 {
		c.Limits.MaxPostsPerProfile = 50
	}
	if c.Limits.MaxCommentsPerPost <= 0 {
		c.Limits.MaxCommentsPerPost = 10
	}
	if c.Request.TimeoutSeconds <= 0 {
		c.Request.TimeoutSeconds = 30
	}
	if c.Request.RetryAttempts < 0 {
		c.Request.RetryAttempts = 0
	} else if c.Request.RetryAttempts == 0 {
		c.Request.RetryAttempts = 2
	}
	if c.Request.RetryDelaySeconds <= 0 {
		c.Request.RetryDelaySeconds = 2
	}
	if c.Request.RequestsPerSecond <= 0 {
		c.Request.RequestsPerSecond = 0.5
	}
	if c.Request.Burst <= 0 {
		c.Request.Burst = 1
	}
	if c.Request.MaxConcurrency <= 0 {
		c.Request.MaxConcurrency = 1
	}
	if c.Output.Format == "" {
		c.Output.Format = "json"
	}
	if c.Output.File == "" {
		c.Output.File = "results.json"
	}
	if c.Output.Table == "" {
		c.Output.Table = "posts"
	}
	if c.Output.Database == "" {
		c.Output.Database = "instagram"
	}
	if c.Metrics.ListenAddress == "" {
		c.Metrics.ListenAddress = ":9090"
	}
}

// IncludeHashtags resolves the pointer flag, defaulting to true.
func (f *FilterConfig) IncludeHashtagsValue() bool { return boolDefault(f.IncludeHashtags, true) }

// IncludeMentionsValue resolves the pointer flag, defaulting to true.
func (f *FilterConfig) IncludeMentionsValue() bool { return boolDefault(f.IncludeMentions, true) }

// IncludeLocationValue resolves the pointer flag, defaulting to true.
func (f *FilterConfig) IncludeLocationValue() bool { return boolDefault(f.IncludeLocation, true) }

// IncludeEngagementValue resolves the pointer flag, defaulting to true.
func (f *FilterConfig) IncludeEngagementValue() bool {
	return boolDefault(f.IncludeEngagementMetrics, true)
}

func boolDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// GenerateTemplate returns a starter configuration for the given template
// type ("basic" or "archive").
func GenerateTemplate(templateType string) *ScraperConfig {
	cfg := &ScraperConfig{
		Name:      "instagram-posts",
		Usernames: []string{"instagram"},
		Output: OutputConfig{
			Format: "json",
			File:   "results.json",
		},
	}
	cfg.ApplyDefaults()

	if templateType == "archive" {
		cfg.Name = "instagram-archive"
		cfg.Limits.IncludeComments = true
		cfg.Output.Format = "sqlite"
		cfg.Output.File = "instagram.db"
		cfg.Metrics.Enabled = true
	}

	return cfg
}
