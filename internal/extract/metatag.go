// internal/extract/metatag.go
package extract

import (
	"regexp"
	"strings"
)

// MetaTagStrategy reads the page-level og:description and strips the known
// boilerplate Instagram wraps around captions: leading engagement counts,
// the author/date attribution, and surrounding quote characters.
type MetaTagStrategy struct{}

func NewMetaTagStrategy() *MetaTagStrategy { return &MetaTagStrategy{} }

func (s *MetaTagStrategy) Name() string { return "meta_tag" }

var (
	// e.g. `123 likes, 4 comments - user on January 1, 2024: "caption"`.
	metaEngagementPrefix = regexp.MustCompile(`^[\d,.]+[KMBkmb]?\s*(?:likes?|comments?)[^"]*?-\s*[^"]*?\s+on\s+[^:]*?:\s*"?`)
	metaSiteSuffix       = regexp.MustCompile(`\s*[-|•]\s*Instagram\s*$`)
)

func (s *MetaTagStrategy) Attempt(page *Page) (*PartialRecord, error) {
	desc, exists := page.Doc().Find(`meta[property="og:description"]`).Attr("content")
	if !exists || len(desc) < 20 {
		return nil, ErrNoMatch
	}

	caption := metaEngagementPrefix.ReplaceAllString(desc, "")
	caption = metaSiteSuffix.ReplaceAllString(caption, "")
	caption = strings.Trim(caption, `"“” `)
	if len(caption) <= 10 {
		return nil, ErrNoMatch
	}

	return &PartialRecord{Caption: caption}, nil
}
