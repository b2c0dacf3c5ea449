// internal/extract/content_test.go
package extract

import (
	"errors"
	"testing"
)

func mustPage(t *testing.T, url, html string) *Page {
	t.Helper()
	page, err := NewPage(url, html)
	if err != nil {
		t.Fatalf("failed to build page: %v", err)
	}
	return page
}

const embeddedPostHTML = `<html><head></head><body>
<script type="application/json">{"data":{"shortcode_media":{"__typename":"GraphImage","shortcode":"ABC123","display_url":"https://scontent.cdninstagram.com/v/img1.jpg","is_video":false,"taken_at_timestamp":1717243200,"dimensions":{"width":1080,"height":1350},"edge_media_to_caption":{"edges":[{"node":{"text":"Sunset over the dunes #travel @crew"}}]},"edge_media_preview_like":{"count":4321},"edge_media_to_parent_comment":{"count":87,"edges":[{"node":{"text":"amazing","owner":{"username":"fan_one"}}},{"node":{"text":"wow","owner":{"username":"fan_two"}}}]},"owner":{"username":"natgeo"},"location":{"id":"998877","name":"Namib Desert"}}}}</script>
</body></html>`

func TestEmbeddedDataStrategy(t *testing.T) {
	page := mustPage(t, "https://www.instagram.com/p/ABC123/", embeddedPostHTML)

	strategy := NewEmbeddedDataStrategy(true, 10)
	partial, err := strategy.Attempt(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if partial.Caption != "Sunset over the dunes #travel @crew" {
		t.Errorf("caption = %q", partial.Caption)
	}
	if partial.LikesCount != 4321 {
		t.Errorf("likesCount = %d, want 4321", partial.LikesCount)
	}
	if partial.CommentsCount != 87 {
		t.Errorf("commentsCount = %d, want 87", partial.CommentsCount)
	}
	if partial.Timestamp != "1717243200" {
		t.Errorf("timestamp = %q, want raw epoch", partial.Timestamp)
	}
	if partial.OwnerUsername != "natgeo" {
		t.Errorf("ownerUsername = %q", partial.OwnerUsername)
	}
	if partial.LocationName != "Namib Desert" || partial.LocationID != "998877" {
		t.Errorf("location = %q/%q", partial.LocationName, partial.LocationID)
	}
	if len(partial.Images) != 1 || partial.Images[0].URL != "https://scontent.cdninstagram.com/v/img1.jpg" {
		t.Fatalf("images = %+v", partial.Images)
	}
	if partial.Images[0].Width != 1080 || partial.Images[0].Height != 1350 {
		t.Errorf("dimensions = %dx%d", partial.Images[0].Width, partial.Images[0].Height)
	}
	if partial.Images[0].Source != SourceEmbedded {
		t.Errorf("source = %q", partial.Images[0].Source)
	}
	if len(partial.Comments) != 2 {
		t.Fatalf("comments = %+v", partial.Comments)
	}
	if partial.Comments[0].Username != "fan_one" || partial.Comments[0].Position != 0 {
		t.Errorf("first comment = %+v", partial.Comments[0])
	}
	if partial.ReplaceMedia {
		t.Error("single media must not set ReplaceMedia")
	}
}

func TestEmbeddedDataStrategyCommentsDisabled(t *testing.T) {
	page := mustPage(t, "https://www.instagram.com/p/ABC123/", embeddedPostHTML)

	partial, err := NewEmbeddedDataStrategy(false, 10).Attempt(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(partial.Comments) != 0 {
		t.Errorf("comments should be empty, got %+v", partial.Comments)
	}
}

func TestEmbeddedDataStrategyMaxComments(t *testing.T) {
	page := mustPage(t, "https://www.instagram.com/p/ABC123/", embeddedPostHTML)

	partial, err := NewEmbeddedDataStrategy(true, 1).Attempt(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(partial.Comments) != 1 {
		t.Errorf("comments = %d, want 1", len(partial.Comments))
	}
}

const embeddedCarouselHTML = `<html><body>
<script>window.__data = {"shortcode_media":{"__typename":"GraphSidecar","shortcode":"CAR001","display_url":"https://scontent.cdninstagram.com/v/cover.jpg","is_video":false,"edge_media_to_caption":{"edges":[{"node":{"text":"Three stops, one trip"}}]},"edge_media_preview_like":{"count":10},"edge_media_to_parent_comment":{"count":2},"owner":{"username":"traveler"},"edge_sidecar_to_children":{"edges":[{"node":{"display_url":"https://scontent.cdninstagram.com/v/c1.jpg","is_video":false,"dimensions":{"width":1080,"height":1080}}},{"node":{"video_url":"https://scontent.cdninstagram.com/v/c2.mp4","is_video":true}}]}}};</script>
</body></html>`

func TestEmbeddedDataStrategyCarousel(t *testing.T) {
	page := mustPage(t, "https://www.instagram.com/p/CAR001/", embeddedCarouselHTML)

	partial, err := NewEmbeddedDataStrategy(false, 10).Attempt(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !partial.ReplaceMedia {
		t.Error("carousel children must set ReplaceMedia")
	}
	if len(partial.Images) != 1 || partial.Images[0].URL != "https://scontent.cdninstagram.com/v/c1.jpg" {
		t.Errorf("images = %+v", partial.Images)
	}
	if len(partial.Videos) != 1 || partial.Videos[0].URL != "https://scontent.cdninstagram.com/v/c2.mp4" {
		t.Errorf("videos = %+v", partial.Videos)
	}
	for _, img := range partial.Images {
		if img.URL == "https://scontent.cdninstagram.com/v/cover.jpg" {
			t.Error("carousel must not include the top-level cover image")
		}
	}
}

func TestEmbeddedDataStrategyNoMatch(t *testing.T) {
	page := mustPage(t, "https://www.instagram.com/p/X/", `<html><body><script>var x = 1;</script></body></html>`)

	_, err := NewEmbeddedDataStrategy(false, 10).Attempt(page)
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
}

func TestMetaTagStrategy(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		caption string
		noMatch bool
	}{
		{
			name:    "boilerplate stripped",
			html:    `<html><head><meta property="og:description" content='4,321 likes, 87 comments - natgeo on June 1, 2024: "Sunset over the dunes, day three"'></head></html>`,
			caption: "Sunset over the dunes, day three",
		},
		{
			name:    "missing tag",
			html:    `<html><head></head></html>`,
			noMatch: true,
		},
		{
			name:    "description too short",
			html:    `<html><head><meta property="og:description" content="hi"></head></html>`,
			noMatch: true,
		},
		{
			name:    "caption too short after cleanup",
			html:    `<html><head><meta property="og:description" content='9 likes, 1 comments - u on May 1, 2024: "ok"'></head></html>`,
			noMatch: true,
		},
	}

	strategy := NewMetaTagStrategy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := mustPage(t, "https://www.instagram.com/p/X/", tt.html)
			partial, err := strategy.Attempt(page)
			if tt.noMatch {
				if !errors.Is(err, ErrNoMatch) {
					t.Fatalf("expected ErrNoMatch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if partial.Caption != tt.caption {
				t.Errorf("caption = %q, want %q", partial.Caption, tt.caption)
			}
		})
	}
}

func TestStructuralScanStrategy(t *testing.T) {
	html := `<html><body>
<img src="https://scontent.cdninstagram.com/v/post1.jpg" width="1080" height="1350">
<img src="https://scontent.cdninstagram.com/v/t51/profile_pic.jpg">
<img src="https://scontent.cdninstagram.com/v/s150x150/thumb.jpg">
<img src="https://example.com/banner.jpg">
<video src="https://scontent.cdninstagram.com/v/clip.mp4"></video>
<video src="blob:https://www.instagram.com/abc"></video>
<section aria-label="1.2K likes"></section>
<button>87 comments</button>
</body></html>`
	page := mustPage(t, "https://www.instagram.com/p/X/", html)

	partial, err := NewStructuralScanStrategy().Attempt(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(partial.Images) != 1 {
		t.Fatalf("images = %+v", partial.Images)
	}
	if partial.Images[0].URL != "https://scontent.cdninstagram.com/v/post1.jpg" {
		t.Errorf("image URL = %q", partial.Images[0].URL)
	}
	if partial.Images[0].Width != 1080 {
		t.Errorf("image width = %d", partial.Images[0].Width)
	}
	if len(partial.Videos) != 1 || partial.Videos[0].URL != "https://scontent.cdninstagram.com/v/clip.mp4" {
		t.Errorf("videos = %+v", partial.Videos)
	}
	if partial.LikesCount != 1200 {
		t.Errorf("likesCount = %d, want 1200", partial.LikesCount)
	}
	if partial.CommentsCount != 87 {
		t.Errorf("commentsCount = %d, want 87", partial.CommentsCount)
	}
}

func TestStructuralScanStrategyNoMatch(t *testing.T) {
	page := mustPage(t, "https://www.instagram.com/p/X/", `<html><body><p>nothing to see</p></body></html>`)

	_, err := NewStructuralScanStrategy().Attempt(page)
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
}

func TestFullTextScanStrategy(t *testing.T) {
	html := `<html><body><div>Liked by friends and 1,234 likes</div><div>56 comments</div><div>7,890 views</div></body></html>`
	page := mustPage(t, "https://www.instagram.com/p/X/", html)

	partial, err := NewFullTextScanStrategy().Attempt(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if partial.LikesCount != 1234 {
		t.Errorf("likesCount = %d", partial.LikesCount)
	}
	if partial.CommentsCount != 56 {
		t.Errorf("commentsCount = %d", partial.CommentsCount)
	}
	if partial.ViewCount != 7890 {
		t.Errorf("viewCount = %d", partial.ViewCount)
	}
}

func TestFullTextScanStrategyViewNoise(t *testing.T) {
	html := `<html><body><div>12 views</div><div>5 likes</div></body></html>`
	page := mustPage(t, "https://www.instagram.com/p/X/", html)

	partial, err := NewFullTextScanStrategy().Attempt(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if partial.ViewCount != 0 {
		t.Errorf("small view counts must be discarded, got %d", partial.ViewCount)
	}
	if partial.LikesCount != 5 {
		t.Errorf("likesCount = %d", partial.LikesCount)
	}
}
