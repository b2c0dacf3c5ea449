// internal/config/validation.go
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

var validFormats = map[string]bool{
	"json":       true,
	"csv":        true,
	"sqlite":     true,
	"postgresql": true,
	"mysql":      true,
	"mongodb":    true,
	"excel":      true,
}

var dsnFormats = map[string]bool{
	"postgresql": true,
	"mysql":      true,
	"mongodb":    true,
}

// Validate checks the configuration for problems a run would only discover
// midway through.
func (c *ScraperConfig) Validate() error {
	if len(c.Usernames) == 0 && len(c.PostURLs) == 0 {
		return fmt.Errorf("at least one username or post URL is required")
	}

	for _, name := range c.Usernames {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("usernames must not be blank")
		}
	}
	for _, raw := range c.PostURLs {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return fmt.Errorf("invalid post URL: %q", raw)
		}
		if !strings.Contains(u.Path, "/p/") && !strings.Contains(u.Path, "/reel/") {
			return fmt.Errorf("post URL %q does not look like a post or reel", raw)
		}
	}

	if !validFormats[c.Output.Format] {
		return fmt.Errorf("unsupported output format: %s", c.Output.Format)
	}
	if dsnFormats[c.Output.Format] && c.Output.DSN == "" {
		return fmt.Errorf("output format %s requires a dsn", c.Output.Format)
	}

	if _, _, err := c.Filters.DateWindow(); err != nil {
		return err
	}

	if c.Browser != nil && c.Browser.Enabled {
		for _, d := range []string{c.Browser.Timeout, c.Browser.WaitDelay} {
			if d == "" {
				continue
			}
			if _, err := time.ParseDuration(d); err != nil {
				return fmt.Errorf("invalid browser duration %q: %w", d, err)
			}
		}
	}

	return nil
}

// DateWindow parses the configured date bounds. Bounds accept either bare
// ISO dates or full RFC 3339 timestamps; the upper bound of a bare date is
// the end of that day.
func (f *FilterConfig) DateWindow() (from, to time.Time, err error) {
	if f.DateFrom != "" {
		from, err = parseDateBound(f.DateFrom, false)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid date_from: %w", err)
		}
	}
	if f.DateTo != "" {
		to, err = parseDateBound(f.DateTo, true)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid date_to: %w", err)
		}
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("date_to precedes date_from")
	}
	return from, to, nil
}

func parseDateBound(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return t, nil
}
