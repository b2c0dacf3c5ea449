// internal/extract/embedded.go
package extract

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// EmbeddedDataStrategy locates script-embedded JSON blocks carrying the
// shortcode_media structure and parses the best-matching fragment. It is
// the highest-fidelity content strategy: when it matches, it can populate
// every field of the record, including carousel children and comments.
type EmbeddedDataStrategy struct {
	IncludeComments bool
	MaxComments     int
}

// Markers that indicate a script block is worth scanning. Field names
// belong to the upstream page format and change without notice.
var embeddedMarkers = []string{
	`"shortcode_media":`,
	`"xdt_shortcode_media":`,
}

func NewEmbeddedDataStrategy(includeComments bool, maxComments int) *EmbeddedDataStrategy {
	if maxComments <= 0 {
		maxComments = 10
	}
	return &EmbeddedDataStrategy{IncludeComments: includeComments, MaxComments: maxComments}
}

func (s *EmbeddedDataStrategy) Name() string { return "embedded_data" }

func (s *EmbeddedDataStrategy) Attempt(page *Page) (*PartialRecord, error) {
	var partial *PartialRecord
	var parseErr error

	page.Doc().Find("script:not([src])").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		content := sel.Text()
		if len(content) < 50 {
			return true
		}
		for _, marker := range embeddedMarkers {
			idx := strings.Index(content, marker)
			if idx < 0 {
				continue
			}
			fragment, ok := extractJSONObject(content, idx+len(marker))
			if !ok {
				continue
			}
			var media embeddedMedia
			if err := json.Unmarshal([]byte(fragment), &media); err != nil {
				parseErr = err
				continue
			}
			if p := s.buildPartial(&media); !p.Empty() {
				partial = p
				return false
			}
		}
		return true
	})

	if partial != nil {
		return partial, nil
	}
	if parseErr != nil {
		return nil, &StrategyError{Strategy: s.Name(), Err: parseErr}
	}
	return nil, ErrNoMatch
}

func (s *EmbeddedDataStrategy) buildPartial(media *embeddedMedia) *PartialRecord {
	p := &PartialRecord{
		Caption:       media.captionText(),
		LikesCount:    media.EdgeMediaPreviewLike.Count,
		CommentsCount: media.EdgeMediaToParentComment.Count,
		ViewCount:     media.VideoViewCount,
		OwnerUsername: media.Owner.Username,
	}

	if media.TakenAtTimestamp > 0 {
		// Raw epoch seconds; normalization converts to ISO-8601.
		p.Timestamp = strconv.FormatInt(media.TakenAtTimestamp, 10)
	}
	if media.Location != nil {
		p.LocationName = media.Location.Name
		p.LocationID = media.Location.ID.String()
	}

	if children := media.EdgeSidecarToChildren; children != nil && len(children.Edges) > 0 {
		// Carousel data supersedes any single-item media, including this
		// block's own top-level display_url.
		for _, edge := range children.Edges {
			appendNodeMedia(p, &edge.Node)
		}
		p.ReplaceMedia = true
	} else {
		appendNodeMedia(p, media)
	}

	if s.IncludeComments {
		for i, edge := range media.EdgeMediaToParentComment.Edges {
			if i >= s.MaxComments {
				break
			}
			p.Comments = append(p.Comments, Comment{
				Text:     edge.Node.Text,
				Username: edge.Node.Owner.Username,
				Position: i,
			})
		}
	}

	return p
}

func appendNodeMedia(p *PartialRecord, media *embeddedMedia) {
	item := MediaItem{
		Width:  media.Dimensions.Width,
		Height: media.Dimensions.Height,
		Source: SourceEmbedded,
	}
	if media.IsVideo && media.VideoURL != "" {
		item.URL = media.VideoURL
		p.Videos = append(p.Videos, item)
		return
	}
	if media.DisplayURL != "" {
		item.URL = media.DisplayURL
		p.Images = append(p.Images, item)
	}
}

// embeddedMedia mirrors the subset of the upstream shortcode_media shape
// the strategies rely on. Unknown fields are ignored.
type embeddedMedia struct {
	Typename         string     `json:"__typename"`
	Shortcode        string     `json:"shortcode"`
	DisplayURL       string     `json:"display_url"`
	VideoURL         string     `json:"video_url"`
	IsVideo          bool       `json:"is_video"`
	ProductType      string     `json:"product_type"`
	VideoViewCount   int64      `json:"video_view_count"`
	TakenAtTimestamp int64      `json:"taken_at_timestamp"`
	Dimensions       dimensions `json:"dimensions"`

	EdgeMediaToCaption struct {
		Edges []struct {
			Node struct {
				Text string `json:"text"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"edge_media_to_caption"`

	EdgeMediaPreviewLike struct {
		Count int64 `json:"count"`
	} `json:"edge_media_preview_like"`

	EdgeMediaToParentComment struct {
		Count int64 `json:"count"`
		Edges []struct {
			Node struct {
				Text  string `json:"text"`
				Owner struct {
					Username string `json:"username"`
				} `json:"owner"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"edge_media_to_parent_comment"`

	Owner struct {
		Username string `json:"username"`
	} `json:"owner"`

	Location *struct {
		ID   json.Number `json:"id"`
		Name string      `json:"name"`
	} `json:"location"`

	EdgeSidecarToChildren *struct {
		Edges []struct {
			Node embeddedMedia `json:"node"`
		} `json:"edges"`
	} `json:"edge_sidecar_to_children"`
}

type dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (m *embeddedMedia) captionText() string {
	if len(m.EdgeMediaToCaption.Edges) == 0 {
		return ""
	}
	return m.EdgeMediaToCaption.Edges[0].Node.Text
}
