// internal/extract/classifier.go
package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// PageKind distinguishes profile pages (sources of post URLs) from content
// pages (a single post or reel).
type PageKind int

const (
	PageProfile PageKind = iota
	PageContent
)

func (k PageKind) String() string {
	if k == PageProfile {
		return "profile"
	}
	return "content"
}

// Classification is the result of classifying a URL. For content pages the
// shortcode is always populated; for profile pages the username is.
type Classification struct {
	Kind      PageKind
	Shortcode string
	IsReel    bool
	Username  string
}

var (
	shortcodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	usernamePattern  = regexp.MustCompile(`^[A-Za-z0-9._]+$`)
)

// Classify determines the page kind from the URL path alone. It is
// deterministic and total over syntactically valid URLs; anything without
// an extractable identifier yields ErrInvalidURL and the caller must skip
// the page.
func Classify(rawURL string) (Classification, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Classification{}, fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}

	segments := splitPath(u.Path)
	if len(segments) == 0 {
		return Classification{}, fmt.Errorf("%w: no path in %s", ErrInvalidURL, rawURL)
	}

	switch segments[0] {
	case "p", "reel", "reels", "tv":
		if len(segments) < 2 || !shortcodePattern.MatchString(segments[1]) {
			return Classification{}, fmt.Errorf("%w: no shortcode in %s", ErrInvalidURL, rawURL)
		}
		return Classification{
			Kind:      PageContent,
			Shortcode: segments[1],
			IsReel:    segments[0] == "reel" || segments[0] == "reels",
		}, nil
	}

	// A post under a username path, e.g. /<user>/p/<shortcode>/.
	if len(segments) >= 3 && (segments[1] == "p" || segments[1] == "reel") {
		if !shortcodePattern.MatchString(segments[2]) {
			return Classification{}, fmt.Errorf("%w: no shortcode in %s", ErrInvalidURL, rawURL)
		}
		return Classification{
			Kind:      PageContent,
			Shortcode: segments[2],
			IsReel:    segments[1] == "reel",
			Username:  segments[0],
		}, nil
	}

	if !usernamePattern.MatchString(segments[0]) {
		return Classification{}, fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}
	return Classification{Kind: PageProfile, Username: segments[0]}, nil
}

func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// ContentURL builds the canonical URL for a shortcode.
func ContentURL(shortcode string, isReel bool) string {
	if isReel {
		return "https://www.instagram.com/reel/" + shortcode + "/"
	}
	return "https://www.instagram.com/p/" + shortcode + "/"
}

// ProfileURL builds the canonical URL for a username.
func ProfileURL(username string) string {
	return "https://www.instagram.com/" + strings.Trim(username, "/ ") + "/"
}
