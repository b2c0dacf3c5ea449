// internal/scraper/blockdetect.go
package scraper

import (
	"fmt"
	"strings"
)

// blockIndicators are page fragments that mean the response is a wall, not
// the requested content. Checked case-insensitively against the raw HTML.
var blockIndicators = []string{
	"Please wait a few minutes before you try again",
	"Sorry, this page isn't available",
	"login_required",
	"challenge_required",
	"checkpoint_required",
	"Page Not Found",
	"Restricted profile",
}

// BlockedError reports that the target served a block or login wall instead
// of the page. It is retryable: walls are frequently transient and a later
// attempt with a different user agent can succeed.
type BlockedError struct {
	URL       string
	Indicator string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("blocked response for %s (matched %q)", e.URL, e.Indicator)
}

// Retryable marks block pages as worth another attempt.
func (e *BlockedError) Retryable() bool { return true }

// CheckBlocked inspects fetched HTML for block indicators and returns a
// BlockedError when one matches.
func CheckBlocked(pageURL, html string) error {
	lowered := strings.ToLower(html)
	for _, indicator := range blockIndicators {
		if strings.Contains(lowered, strings.ToLower(indicator)) {
			return &BlockedError{URL: pageURL, Indicator: indicator}
		}
	}
	return nil
}
