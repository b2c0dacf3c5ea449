// internal/extract/profile.go
package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StructuredTimelineStrategy parses the embedded timeline media-edge list
// from a profile page. Each edge carries the shortcode plus the type tags
// that distinguish reels from regular posts, so the emitted URLs use the
// right path shape.
type StructuredTimelineStrategy struct{}

func NewStructuredTimelineStrategy() *StructuredTimelineStrategy {
	return &StructuredTimelineStrategy{}
}

func (s *StructuredTimelineStrategy) Name() string { return "structured_timeline" }

const timelineMarker = `"edge_owner_to_timeline_media":`

type timelineEdges struct {
	Edges []struct {
		Node struct {
			Shortcode   string `json:"shortcode"`
			Typename    string `json:"__typename"`
			ProductType string `json:"product_type"`
		} `json:"node"`
	} `json:"edges"`
}

func (s *StructuredTimelineStrategy) Attempt(page *Page) (*ProfileExpansion, error) {
	var expansion *ProfileExpansion
	var parseErr error

	page.Doc().Find("script:not([src])").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		content := sel.Text()
		idx := strings.Index(content, timelineMarker)
		if idx < 0 {
			return true
		}
		fragment, ok := extractJSONObject(content, idx+len(timelineMarker))
		if !ok {
			return true
		}
		var timeline timelineEdges
		if err := json.Unmarshal([]byte(fragment), &timeline); err != nil {
			parseErr = err
			return true
		}
		if len(timeline.Edges) == 0 {
			return true
		}

		urls := make([]string, 0, len(timeline.Edges))
		for _, edge := range timeline.Edges {
			if edge.Node.Shortcode == "" {
				continue
			}
			isReel := edge.Node.Typename == "GraphVideo" && edge.Node.ProductType == "clips"
			urls = append(urls, ContentURL(edge.Node.Shortcode, isReel))
		}
		if len(urls) > 0 {
			expansion = &ProfileExpansion{ContentURLs: urls}
			return false
		}
		return true
	})

	if expansion != nil {
		return expansion, nil
	}
	if parseErr != nil {
		return nil, &StrategyError{Strategy: s.Name(), Err: parseErr}
	}
	return nil, ErrNoMatch
}

// IdentifierScanStrategy regex-scans the raw page text for standalone
// shortcode references irrespective of surrounding structure. Lower
// fidelity than the timeline parse: it cannot tell reels from posts, so
// every identifier maps to a /p/ URL.
type IdentifierScanStrategy struct{}

func NewIdentifierScanStrategy() *IdentifierScanStrategy { return &IdentifierScanStrategy{} }

func (s *IdentifierScanStrategy) Name() string { return "identifier_scan" }

var shortcodeRef = regexp.MustCompile(`"shortcode":"([A-Za-z0-9_-]+)"`)

func (s *IdentifierScanStrategy) Attempt(page *Page) (*ProfileExpansion, error) {
	matches := shortcodeRef.FindAllStringSubmatch(page.HTML, -1)
	if len(matches) == 0 {
		return nil, ErrNoMatch
	}

	seen := make(map[string]bool, len(matches))
	var urls []string
	for _, m := range matches {
		code := m[1]
		if seen[code] {
			continue
		}
		seen[code] = true
		urls = append(urls, ContentURL(code, false))
	}
	return &ProfileExpansion{ContentURLs: urls}, nil
}

// AnchorScanStrategy walks every hyperlink on the page looking for paths
// with the content-URL shape, normalizing relative links to absolute ones.
type AnchorScanStrategy struct{}

func NewAnchorScanStrategy() *AnchorScanStrategy { return &AnchorScanStrategy{} }

func (s *AnchorScanStrategy) Name() string { return "anchor_scan" }

var anchorShortcode = regexp.MustCompile(`/(p|reel)/([A-Za-z0-9_-]+)`)

func (s *AnchorScanStrategy) Attempt(page *Page) (*ProfileExpansion, error) {
	seen := make(map[string]bool)
	var urls []string

	page.Doc().Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		m := anchorShortcode.FindStringSubmatch(href)
		if m == nil {
			return
		}
		normalized := ContentURL(m[2], m[1] == "reel")
		if seen[normalized] {
			return
		}
		seen[normalized] = true
		urls = append(urls, normalized)
	})

	if len(urls) == 0 {
		return nil, ErrNoMatch
	}
	return &ProfileExpansion{ContentURLs: urls}, nil
}
