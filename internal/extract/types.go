// internal/extract/types.go

// Package extract implements the extraction core: page classification and
// the set of independent extraction strategies that recover structured post
// data from raw Instagram page payloads. Strategies are pure with respect to
// the page payload and communicate absence as a first-class result rather
// than an error.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Sentinel errors for the extraction taxonomy.
var (
	// ErrNoMatch signals that a strategy found nothing usable in the page.
	// It is an expected outcome, not a failure.
	ErrNoMatch = errors.New("no match")

	// ErrInvalidURL signals a URL that does not match any known page shape.
	// The caller must skip the page rather than retry.
	ErrInvalidURL = errors.New("invalid url")
)

// StrategyError wraps a parsing failure inside a single strategy. The
// pipeline logs it and treats it the same as ErrNoMatch.
type StrategyError struct {
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("strategy %s: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error { return e.Err }

// Page is the raw payload handed to strategies: the originating URL, the
// full HTML, and a parsed document over it. Strategies never mutate it.
type Page struct {
	URL  string
	HTML string

	doc *goquery.Document
}

// NewPage parses the HTML into a queryable document.
func NewPage(url, html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Page{URL: url, HTML: html, doc: doc}, nil
}

// Doc returns the parsed document.
func (p *Page) Doc() *goquery.Document { return p.doc }

// Text returns the visible text of the page.
func (p *Page) Text() string { return p.doc.Text() }

// MediaItem is a single image or video reference. Source records which
// strategy supplied the item and is used only for diagnostics.
type MediaItem struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Source string `json:"source"`
}

// Media provenance values.
const (
	SourceEmbedded   = "embedded_json"
	SourceMetaTag    = "meta_tag"
	SourceStructural = "dom"
	SourceFullText   = "page_text"
)

// Comment is one extracted comment, in page order.
type Comment struct {
	Text     string `json:"text"`
	Username string `json:"username"`
	Position int    `json:"position"`
}

// PartialRecord is the output of a single content strategy. Every field is
// optional; the pipeline merges partials in strategy priority order.
// Timestamp may hold either an RFC 3339 string or a raw epoch-seconds
// value; normalization converts the latter after merging.
type PartialRecord struct {
	Caption       string
	OwnerUsername string
	Timestamp     string
	LocationName  string
	LocationID    string

	LikesCount    int64
	CommentsCount int64
	ViewCount     int64

	Images []MediaItem
	Videos []MediaItem

	Comments []Comment

	// ReplaceMedia marks carousel-derived media lists, which supersede any
	// previously accumulated single-item media rather than appending to it.
	ReplaceMedia bool
}

// Empty reports whether the partial carries no data at all.
func (p *PartialRecord) Empty() bool {
	return p.Caption == "" && p.OwnerUsername == "" && p.Timestamp == "" &&
		p.LocationName == "" && p.LocationID == "" &&
		p.LikesCount == 0 && p.CommentsCount == 0 && p.ViewCount == 0 &&
		len(p.Images) == 0 && len(p.Videos) == 0 && len(p.Comments) == 0
}

// ContentKind classifies the merged record; it is always derived, never set
// by a strategy directly.
type ContentKind string

const (
	KindImage         ContentKind = "image"
	KindVideo         ContentKind = "video"
	KindCarouselAlbum ContentKind = "carousel_album"
	KindCarouselVideo ContentKind = "carousel_video"
	KindReel          ContentKind = "reel"
)

// ContentRecord is the canonical unit of output for one post or reel. It is
// owned exclusively by the pipeline invocation that builds it.
type ContentRecord struct {
	URL       string      `json:"url"`
	Shortcode string      `json:"shortcode"`
	IsReel    bool        `json:"isReel"`
	Kind      ContentKind `json:"type"`

	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
	Mentions []string `json:"mentions"`

	Images []MediaItem `json:"images"`
	Videos []MediaItem `json:"videos"`

	LikesCount    int64 `json:"likesCount"`
	CommentsCount int64 `json:"commentsCount"`
	ViewCount     int64 `json:"viewCount"`

	OwnerUsername string `json:"ownerUsername"`
	Timestamp     string `json:"timestamp"`
	LocationName  string `json:"locationName"`
	LocationID    string `json:"locationId"`

	Comments []Comment `json:"comments"`
}

// ProfileExpansion is the transient result of a profile-page run: the list
// of content URLs to enqueue as new fetch work. It is never persisted.
type ProfileExpansion struct {
	SourceUsername string
	ContentURLs    []string
}

// ContentStrategy is one self-contained heuristic for recovering post
// fields from a content page. Attempt returns ErrNoMatch when the page
// holds nothing the strategy understands; any other error is a parsing
// failure the pipeline downgrades to a miss.
type ContentStrategy interface {
	Name() string
	Attempt(page *Page) (*PartialRecord, error)
}

// ProfileStrategy recovers content URLs from a profile page.
type ProfileStrategy interface {
	Name() string
	Attempt(page *Page) (*ProfileExpansion, error)
}
