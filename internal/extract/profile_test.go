// internal/extract/profile_test.go
package extract

import (
	"errors"
	"testing"
)

const timelineProfileHTML = `<html><body>
<script type="application/json">{"data":{"user":{"edge_owner_to_timeline_media":{"count":3,"edges":[{"node":{"shortcode":"AAA111","__typename":"GraphImage"}},{"node":{"shortcode":"BBB222","__typename":"GraphVideo","product_type":"clips"}},{"node":{"shortcode":"CCC333","__typename":"GraphSidecar"}}]}}}}</script>
</body></html>`

func TestStructuredTimelineStrategy(t *testing.T) {
	page := mustPage(t, "https://www.instagram.com/natgeo/", timelineProfileHTML)

	expansion, err := NewStructuredTimelineStrategy().Attempt(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"https://www.instagram.com/p/AAA111/",
		"https://www.instagram.com/reel/BBB222/",
		"https://www.instagram.com/p/CCC333/",
	}
	if len(expansion.ContentURLs) != len(want) {
		t.Fatalf("got %d URLs, want %d: %v", len(expansion.ContentURLs), len(want), expansion.ContentURLs)
	}
	for i, u := range want {
		if expansion.ContentURLs[i] != u {
			t.Errorf("url[%d] = %q, want %q", i, expansion.ContentURLs[i], u)
		}
	}
}

func TestStructuredTimelineStrategyNoMatch(t *testing.T) {
	page := mustPage(t, "https://www.instagram.com/natgeo/", `<html><body><script>var x = {"unrelated": true};</script></body></html>`)

	_, err := NewStructuredTimelineStrategy().Attempt(page)
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
}

func TestIdentifierScanStrategy(t *testing.T) {
	html := `<html><body><script>{"shortcode":"AAA111"},{"shortcode":"BBB222"},{"shortcode":"AAA111"}</script></body></html>`
	page := mustPage(t, "https://www.instagram.com/natgeo/", html)

	expansion, err := NewIdentifierScanStrategy().Attempt(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"https://www.instagram.com/p/AAA111/",
		"https://www.instagram.com/p/BBB222/",
	}
	if len(expansion.ContentURLs) != len(want) {
		t.Fatalf("repeated identifiers must deduplicate, got %v", expansion.ContentURLs)
	}
	for i, u := range want {
		if expansion.ContentURLs[i] != u {
			t.Errorf("url[%d] = %q, want %q", i, expansion.ContentURLs[i], u)
		}
	}
}

func TestAnchorScanStrategy(t *testing.T) {
	html := `<html><body>
<a href="/p/AAA111/">post</a>
<a href="/reel/BBB222/">reel</a>
<a href="https://www.instagram.com/p/AAA111/">duplicate</a>
<a href="/natgeo/">profile</a>
<a href="/explore/">explore</a>
</body></html>`
	page := mustPage(t, "https://www.instagram.com/natgeo/", html)

	expansion, err := NewAnchorScanStrategy().Attempt(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"https://www.instagram.com/p/AAA111/",
		"https://www.instagram.com/reel/BBB222/",
	}
	if len(expansion.ContentURLs) != len(want) {
		t.Fatalf("got %v, want %v", expansion.ContentURLs, want)
	}
	for i, u := range want {
		if expansion.ContentURLs[i] != u {
			t.Errorf("url[%d] = %q, want %q", i, expansion.ContentURLs[i], u)
		}
	}
}

func TestAnchorScanStrategyNoMatch(t *testing.T) {
	page := mustPage(t, "https://www.instagram.com/natgeo/", `<html><body><a href="/about/">about</a></body></html>`)

	_, err := NewAnchorScanStrategy().Attempt(page)
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
}
