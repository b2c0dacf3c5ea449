// internal/pipeline/postprocess.go
package pipeline

import (
	"time"

	"github.com/Sampath2CSE/instagram-post-scraper/internal/extract"
)

// PostProcessOptions are the user-configured inclusion filters applied as
// the final pass before a record is emitted.
type PostProcessOptions struct {
	IncludeHashtags   bool
	IncludeMentions   bool
	IncludeLocation   bool
	IncludeEngagement bool
	IncludeComments   bool

	// DateFrom/DateTo bound the record timestamp; zero values disable the
	// respective bound.
	DateFrom time.Time
	DateTo   time.Time

	// DropUndated controls what happens to a record whose timestamp is
	// empty or unparseable while a date filter is active. The default is
	// to pass it through unfiltered.
	DropUndated bool
}

// DefaultPostProcessOptions includes everything and filters nothing.
func DefaultPostProcessOptions() PostProcessOptions {
	return PostProcessOptions{
		IncludeHashtags:   true,
		IncludeMentions:   true,
		IncludeLocation:   true,
		IncludeEngagement: true,
		IncludeComments:   true,
	}
}

// FinalRecord is the emitted shape of a post. It is map-formed so that
// suppressed fields are absent from the output entirely rather than
// present as nulls or empty values.
type FinalRecord map[string]interface{}

// PostProcess applies date filtering and field suppression to a normalized
// record and stamps scrapedAt. A false return means the record was dropped
// by the date filter and must not be emitted.
func PostProcess(rec *extract.ContentRecord, opts PostProcessOptions) (FinalRecord, bool) {
	if dropped := dateFiltered(rec.Timestamp, opts); dropped {
		return nil, false
	}

	out := FinalRecord{
		"url":           rec.URL,
		"shortcode":     rec.Shortcode,
		"isReel":        rec.IsReel,
		"type":          string(rec.Kind),
		"caption":       rec.Caption,
		"images":        rec.Images,
		"videos":        rec.Videos,
		"ownerUsername": rec.OwnerUsername,
		"timestamp":     rec.Timestamp,
		"scrapedAt":     time.Now().UTC().Format(time.RFC3339),
	}

	if opts.IncludeHashtags {
		out["hashtags"] = rec.Hashtags
	}
	if opts.IncludeMentions {
		out["mentions"] = rec.Mentions
	}
	if opts.IncludeLocation {
		out["locationName"] = rec.LocationName
		out["locationId"] = rec.LocationID
	}
	if opts.IncludeEngagement {
		out["likesCount"] = rec.LikesCount
		out["commentsCount"] = rec.CommentsCount
		out["viewCount"] = rec.ViewCount
	}
	if opts.IncludeComments {
		out["comments"] = rec.Comments
	}

	return out, true
}

// dateFiltered reports whether the record falls outside the configured
// date window. Records without a parseable timestamp pass through unless
// DropUndated is set; silently discarding them would hide extraction
// regressions behind the filter.
func dateFiltered(timestamp string, opts PostProcessOptions) bool {
	if opts.DateFrom.IsZero() && opts.DateTo.IsZero() {
		return false
	}

	ts, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return opts.DropUndated
	}

	if !opts.DateFrom.IsZero() && ts.Before(opts.DateFrom) {
		return true
	}
	if !opts.DateTo.IsZero() && ts.After(opts.DateTo) {
		return true
	}
	return false
}
