// internal/pipeline/merge.go
package pipeline

import (
	"github.com/Sampath2CSE/instagram-post-scraper/internal/extract"
)

// mergePartial folds one strategy's partial output into the accumulating
// record. Because strategies run in fidelity order, the policy is:
//
//   - scalar fields: first non-empty value wins
//   - count fields: first non-zero value wins (a zero is "unknown")
//   - media lists: append new items, deduplicated by URL, except that a
//     carousel-derived partial replaces everything accumulated so far
//   - comments: first non-empty list wins
//
// Hashtags, mentions, and the content kind are never merged; they are
// recomputed from the final record during normalization.
func mergePartial(rec *extract.ContentRecord, partial *extract.PartialRecord) {
	if rec.Caption == "" {
		rec.Caption = partial.Caption
	}
	if rec.OwnerUsername == "" {
		rec.OwnerUsername = partial.OwnerUsername
	}
	if rec.Timestamp == "" {
		rec.Timestamp = partial.Timestamp
	}
	if rec.LocationName == "" {
		rec.LocationName = partial.LocationName
	}
	if rec.LocationID == "" {
		rec.LocationID = partial.LocationID
	}

	if rec.LikesCount == 0 {
		rec.LikesCount = partial.LikesCount
	}
	if rec.CommentsCount == 0 {
		rec.CommentsCount = partial.CommentsCount
	}
	if rec.ViewCount == 0 {
		rec.ViewCount = partial.ViewCount
	}

	if partial.ReplaceMedia && (len(partial.Images) > 0 || len(partial.Videos) > 0) {
		rec.Images = dedupeMedia(nil, partial.Images)
		rec.Videos = dedupeMedia(nil, partial.Videos)
	} else {
		rec.Images = dedupeMedia(rec.Images, partial.Images)
		rec.Videos = dedupeMedia(rec.Videos, partial.Videos)
	}

	if len(rec.Comments) == 0 {
		rec.Comments = partial.Comments
	}
}

// dedupeMedia appends items whose URL is not already present, preserving
// order.
func dedupeMedia(existing, incoming []extract.MediaItem) []extract.MediaItem {
	seen := make(map[string]bool, len(existing)+len(incoming))
	for _, item := range existing {
		seen[item.URL] = true
	}
	for _, item := range incoming {
		if item.URL == "" || seen[item.URL] {
			continue
		}
		seen[item.URL] = true
		existing = append(existing, item)
	}
	return existing
}
