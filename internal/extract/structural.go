// internal/extract/structural.go
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StructuralScanStrategy scans the parsed DOM for media elements matching
// Instagram CDN URL patterns, skipping avatars and thumbnail renditions,
// and for engagement numbers surfaced in accessibility labels or button
// text.
type StructuralScanStrategy struct{}

func NewStructuralScanStrategy() *StructuralScanStrategy { return &StructuralScanStrategy{} }

func (s *StructuralScanStrategy) Name() string { return "structural_scan" }

var (
	ariaLikes    = regexp.MustCompile(`([\d,.]+[KMBkmb]?)\s*likes?`)
	ariaComments = regexp.MustCompile(`([\d,.]+[KMBkmb]?)\s*comments?`)
)

// Renditions that are never post media.
var excludedImageHints = []string{"profile", "s150x150", "s320x320", "avatar"}

func (s *StructuralScanStrategy) Attempt(page *Page) (*PartialRecord, error) {
	p := &PartialRecord{}
	doc := page.Doc()

	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if !isContentImage(src) {
			return
		}
		p.Images = append(p.Images, MediaItem{
			URL:    src,
			Width:  attrInt(sel, "width"),
			Height: attrInt(sel, "height"),
			Source: SourceStructural,
		})
	})

	doc.Find("video[src], video source[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if src == "" || strings.HasPrefix(src, "blob:") {
			return
		}
		p.Videos = append(p.Videos, MediaItem{URL: src, Source: SourceStructural})
	})

	doc.Find("[aria-label], button").Each(func(_ int, sel *goquery.Selection) {
		label, _ := sel.Attr("aria-label")
		if label == "" {
			label = strings.TrimSpace(sel.Text())
		}
		if label == "" {
			return
		}
		if p.LikesCount == 0 {
			if m := ariaLikes.FindStringSubmatch(label); m != nil {
				p.LikesCount = ParseCount(m[1])
			}
		}
		if p.CommentsCount == 0 {
			if m := ariaComments.FindStringSubmatch(label); m != nil {
				p.CommentsCount = ParseCount(m[1])
			}
		}
	})

	if p.Empty() {
		return nil, ErrNoMatch
	}
	return p, nil
}

func isContentImage(src string) bool {
	if src == "" {
		return false
	}
	if !strings.Contains(src, "scontent") && !strings.Contains(src, "cdninstagram") {
		return false
	}
	for _, hint := range excludedImageHints {
		if strings.Contains(src, hint) {
			return false
		}
	}
	return true
}

func attrInt(sel *goquery.Selection, name string) int {
	v, _ := sel.Attr(name)
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
