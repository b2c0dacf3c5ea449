// internal/pipeline/normalize_test.go
package pipeline

import (
	"reflect"
	"testing"

	"github.com/Sampath2CSE/instagram-post-scraper/internal/extract"
)

func TestNormalizeCaptionTokens(t *testing.T) {
	rec := &extract.ContentRecord{
		Caption: "  Golden hour #Sunset #sunset #Travel with @Crew and @crew.official  ",
	}
	Normalize(rec)

	if rec.Caption != "Golden hour #Sunset #sunset #Travel with @Crew and @crew.official" {
		t.Errorf("caption = %q", rec.Caption)
	}
	wantTags := []string{"#sunset", "#travel"}
	if !reflect.DeepEqual(rec.Hashtags, wantTags) {
		t.Errorf("hashtags = %v, want %v", rec.Hashtags, wantTags)
	}
	wantMentions := []string{"@crew", "@crew.official"}
	if !reflect.DeepEqual(rec.Mentions, wantMentions) {
		t.Errorf("mentions = %v, want %v", rec.Mentions, wantMentions)
	}
}

func TestNormalizeTokensFromFinalCaptionOnly(t *testing.T) {
	// Stale token sets from earlier merges must be discarded.
	rec := &extract.ContentRecord{
		Caption:  "no tags here",
		Hashtags: []string{"#stale"},
		Mentions: []string{"@stale"},
	}
	Normalize(rec)

	if len(rec.Hashtags) != 0 {
		t.Errorf("hashtags = %v, want empty", rec.Hashtags)
	}
	if len(rec.Mentions) != 0 {
		t.Errorf("mentions = %v, want empty", rec.Mentions)
	}
}

func TestNormalizeTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"epoch seconds", "1717243200", "2024-06-01T12:00:00Z"},
		{"already ISO", "2024-06-01T12:00:00Z", "2024-06-01T12:00:00Z"},
		{"empty", "", ""},
		{"garbage passes through", "yesterday", "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &extract.ContentRecord{Timestamp: tt.in}
			Normalize(rec)
			if rec.Timestamp != tt.want {
				t.Errorf("timestamp = %q, want %q", rec.Timestamp, tt.want)
			}
		})
	}
}

func TestNormalizeDedupesMedia(t *testing.T) {
	rec := &extract.ContentRecord{
		Images: []extract.MediaItem{
			{URL: "https://cdn/a.jpg"},
			{URL: "https://cdn/a.jpg"},
			{URL: "https://cdn/b.jpg"},
		},
	}
	Normalize(rec)

	if len(rec.Images) != 2 {
		t.Errorf("images = %+v", rec.Images)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	rec := &extract.ContentRecord{
		Caption:   "Round trip #loop",
		Timestamp: "1717243200",
		Images:    []extract.MediaItem{{URL: "https://cdn/a.jpg"}},
	}
	Normalize(rec)
	first := *rec
	firstTags := append([]string(nil), rec.Hashtags...)

	Normalize(rec)
	if rec.Caption != first.Caption || rec.Timestamp != first.Timestamp || rec.Kind != first.Kind {
		t.Error("second normalization changed scalar fields")
	}
	if !reflect.DeepEqual(rec.Hashtags, firstTags) {
		t.Errorf("second normalization changed hashtags: %v vs %v", rec.Hashtags, firstTags)
	}
}

func TestDeriveKind(t *testing.T) {
	tests := []struct {
		name   string
		isReel bool
		images int
		videos int
		want   extract.ContentKind
	}{
		{"reel flag wins", true, 3, 2, extract.KindReel},
		{"single video", false, 0, 1, extract.KindVideo},
		{"video with cover image", false, 1, 1, extract.KindVideo},
		{"multiple videos", false, 0, 2, extract.KindCarouselVideo},
		{"multiple images", false, 3, 0, extract.KindCarouselAlbum},
		{"single image", false, 1, 0, extract.KindImage},
		{"no media defaults to image", false, 0, 0, extract.KindImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deriveKind(tt.isReel, tt.images, tt.videos); got != tt.want {
				t.Errorf("deriveKind(%v, %d, %d) = %q, want %q",
					tt.isReel, tt.images, tt.videos, got, tt.want)
			}
		})
	}
}
