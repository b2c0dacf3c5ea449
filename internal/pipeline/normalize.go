// internal/pipeline/normalize.go
package pipeline

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/Sampath2CSE/instagram-post-scraper/internal/extract"
)

// Normalize applies the idempotent field derivations to a merged record:
// caption cleanup, hashtag/mention sets recomputed from the final caption,
// epoch-to-ISO timestamp conversion, media deduplication, and content-kind
// derivation. It runs exactly once per record, after merging and before
// post-processing.
func Normalize(rec *extract.ContentRecord) {
	rec.Caption = cleanCaption(rec.Caption)
	rec.Hashtags = captionTokens(rec.Caption, hashtagPattern)
	rec.Mentions = captionTokens(rec.Caption, mentionPattern)
	rec.Timestamp = normalizeTimestamp(rec.Timestamp)
	rec.Images = dedupeMedia(nil, rec.Images)
	rec.Videos = dedupeMedia(nil, rec.Videos)
	rec.Kind = deriveKind(rec.IsReel, len(rec.Images), len(rec.Videos))
}

var (
	hashtagPattern = regexp.MustCompile(`#[a-zA-Z0-9_]+`)
	mentionPattern = regexp.MustCompile(`@[a-zA-Z0-9_.]+`)

	caseFolder = cases.Fold()
)

func cleanCaption(caption string) string {
	return strings.TrimSpace(norm.NFC.String(caption))
}

// captionTokens extracts case-folded, deduplicated tokens in first-seen
// order; the result has set semantics.
func captionTokens(caption string, pattern *regexp.Regexp) []string {
	matches := pattern.FindAllString(caption, -1)
	seen := make(map[string]bool, len(matches))
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		folded := caseFolder.String(m)
		if seen[folded] {
			continue
		}
		seen[folded] = true
		tokens = append(tokens, folded)
	}
	return tokens
}

// normalizeTimestamp converts raw epoch-seconds values to ISO-8601 and
// passes anything else through untouched.
func normalizeTimestamp(ts string) string {
	if ts == "" {
		return ""
	}
	if epoch, err := strconv.ParseInt(ts, 10, 64); err == nil {
		return time.Unix(epoch, 0).UTC().Format(time.RFC3339)
	}
	return ts
}

// deriveKind is a pure function of the reel flag and the media counts. The
// reel flag wins outright; videos take precedence over images.
func deriveKind(isReel bool, images, videos int) extract.ContentKind {
	switch {
	case isReel:
		return extract.KindReel
	case videos == 1:
		return extract.KindVideo
	case videos > 1:
		return extract.KindCarouselVideo
	case images > 1:
		return extract.KindCarouselAlbum
	default:
		return extract.KindImage
	}
}
