// internal/extract/fulltext.go
package extract

import (
	"regexp"
)

// FullTextScanStrategy is the last-resort content strategy: it regex-scans
// the visible page text for "<number><suffix> likes/comments/views"
// patterns. View counts below the noise threshold are discarded as false
// positives, since bare small numbers show up all over unrelated text.
type FullTextScanStrategy struct{}

func NewFullTextScanStrategy() *FullTextScanStrategy { return &FullTextScanStrategy{} }

func (s *FullTextScanStrategy) Name() string { return "full_text_scan" }

// viewNoiseThreshold guards against matching stray small numbers.
const viewNoiseThreshold = 100

var (
	textLikes    = regexp.MustCompile(`(?i)([\d,]+(?:\.\d+)?[KMB]?)\s*likes?`)
	textComments = regexp.MustCompile(`(?i)([\d,]+(?:\.\d+)?[KMB]?)\s*comments?`)
	textViews    = regexp.MustCompile(`(?i)([\d,]+(?:\.\d+)?[KMB]?)\s*views?`)
)

func (s *FullTextScanStrategy) Attempt(page *Page) (*PartialRecord, error) {
	text := page.Text()
	p := &PartialRecord{}

	if m := textLikes.FindStringSubmatch(text); m != nil {
		p.LikesCount = ParseCount(m[1])
	}
	if m := textComments.FindStringSubmatch(text); m != nil {
		p.CommentsCount = ParseCount(m[1])
	}
	if m := textViews.FindStringSubmatch(text); m != nil {
		if views := ParseCount(m[1]); views >= viewNoiseThreshold {
			p.ViewCount = views
		}
	}

	if p.Empty() {
		return nil, ErrNoMatch
	}
	return p, nil
}
