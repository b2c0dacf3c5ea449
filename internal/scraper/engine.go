// internal/scraper/engine.go

// Package scraper drives a complete run: it fetches seed pages, classifies
// them, hands content pages to the extraction pipeline and profile pages to
// the expansion pipeline, and emits finalized records to the configured
// sink. Profile expansions feed back into the same work queue.
package scraper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Sampath2CSE/instagram-post-scraper/internal/config"
	"github.com/Sampath2CSE/instagram-post-scraper/internal/errors"
	"github.com/Sampath2CSE/instagram-post-scraper/internal/extract"
	"github.com/Sampath2CSE/instagram-post-scraper/internal/monitoring"
	"github.com/Sampath2CSE/instagram-post-scraper/internal/pipeline"
	"github.com/Sampath2CSE/instagram-post-scraper/internal/utils"
)

// Fetcher retrieves the HTML of a single page. Both the HTTP client and the
// browser fetcher satisfy it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// RecordSink receives the finalized records of a run.
type RecordSink interface {
	Write(ctx context.Context, records []pipeline.FinalRecord) error
}

// Engine coordinates one scraping run.
type Engine struct {
	cfg      *config.ScraperConfig
	fetcher  Fetcher
	sink     RecordSink
	metrics  *monitoring.Metrics
	logger   utils.Logger
	retry    *errors.Service
	content  *pipeline.ContentPipeline
	profiles *pipeline.ProfilePipeline
	postOpts pipeline.PostProcessOptions

	mu      sync.Mutex
	visited map[string]bool
	records []pipeline.FinalRecord

	wg    sync.WaitGroup
	queue chan workItem
}

// Responses below this size are usually walls or stubs, not real pages.
const suspiciousResponseSize = 5000

// workItem is one page to process. SourceUsername carries the profile a
// content URL was expanded from, used as the owner fallback when no strategy
// recovers the owner from the page itself.
type workItem struct {
	URL            string
	SourceUsername string
}

// NewEngine wires an engine from configuration and collaborators. The
// fetcher and sink are required; a nil logger or metrics falls back to
// no-frills defaults.
func NewEngine(cfg *config.ScraperConfig, fetcher Fetcher, sink RecordSink, metrics *monitoring.Metrics, logger utils.Logger) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if sink == nil {
		return nil, fmt.Errorf("record sink is required")
	}
	if logger == nil {
		logger = utils.NewLogger()
	}
	if metrics == nil {
		metrics = monitoring.NewNopMetrics()
	}

	contentStrategies := []extract.ContentStrategy{
		extract.NewEmbeddedDataStrategy(cfg.Limits.IncludeComments, cfg.Limits.MaxCommentsPerPost),
		extract.NewMetaTagStrategy(),
		extract.NewStructuralScanStrategy(),
		extract.NewFullTextScanStrategy(),
	}
	profileStrategies := []extract.ProfileStrategy{
		extract.NewStructuredTimelineStrategy(),
		extract.NewIdentifierScanStrategy(),
		extract.NewAnchorScanStrategy(),
	}

	from, to, err := cfg.Filters.DateWindow()
	if err != nil {
		return nil, err
	}

	retrySvc := errors.NewService().WithRetryConfig(errors.RetryConfig{
		MaxRetries: cfg.Request.RetryAttempts,
		BaseDelay:  time.Duration(cfg.Request.RetryDelaySeconds) * time.Second,
	})

	return &Engine{
		cfg:      cfg,
		fetcher:  fetcher,
		sink:     sink,
		metrics:  metrics,
		logger:   logger,
		retry:    retrySvc,
		content:  pipeline.NewContentPipeline(contentStrategies, nil, logger),
		profiles: pipeline.NewProfilePipeline(profileStrategies, cfg.Limits.MaxPostsPerProfile, logger),
		postOpts: pipeline.PostProcessOptions{
			IncludeHashtags:   cfg.Filters.IncludeHashtagsValue(),
			IncludeMentions:   cfg.Filters.IncludeMentionsValue(),
			IncludeLocation:   cfg.Filters.IncludeLocationValue(),
			IncludeEngagement: cfg.Filters.IncludeEngagementValue(),
			IncludeComments:   cfg.Limits.IncludeComments,
			DateFrom:          from,
			DateTo:            to,
			DropUndated:       cfg.Filters.DropUndated,
		},
		visited: make(map[string]bool),
	}, nil
}

// Run processes every seed and expansion to completion, then writes the
// collected records to the sink. It returns the records alongside the sink
// error so callers can still inspect results when persistence fails.
func (e *Engine) Run(ctx context.Context) ([]pipeline.FinalRecord, error) {
	seeds := e.seedItems()
	if len(seeds) == 0 {
		return nil, fmt.Errorf("no seeds to scrape")
	}

	// Every profile contributes at most MaxPostsPerProfile expansions, so
	// the queue can be sized up front and sends never block.
	capacity := len(seeds) + len(e.cfg.Usernames)*e.cfg.Limits.MaxPostsPerProfile
	e.queue = make(chan workItem, capacity)

	for _, item := range seeds {
		e.enqueue(item)
	}

	workers := e.cfg.Request.MaxConcurrency
	for i := 0; i < workers; i++ {
		go e.worker(ctx)
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-done:
		close(e.queue)
	}

	e.mu.Lock()
	records := e.records
	e.mu.Unlock()

	e.logger.WithField("records", len(records)).Info("run complete")

	if err := e.sink.Write(ctx, records); err != nil {
		return records, fmt.Errorf("failed to write records: %w", err)
	}
	return records, nil
}

// seedItems builds the initial work list from configured usernames and
// explicit post URLs.
func (e *Engine) seedItems() []workItem {
	items := make([]workItem, 0, len(e.cfg.Usernames)+len(e.cfg.PostURLs))
	for _, username := range e.cfg.Usernames {
		items = append(items, workItem{URL: extract.ProfileURL(username)})
	}
	for _, u := range e.cfg.PostURLs {
		items = append(items, workItem{URL: u})
	}
	return items
}

// enqueue adds an item unless its URL was already visited this run.
func (e *Engine) enqueue(item workItem) {
	e.mu.Lock()
	if e.visited[item.URL] {
		e.mu.Unlock()
		return
	}
	e.visited[item.URL] = true
	e.mu.Unlock()

	e.wg.Add(1)
	e.queue <- item
	e.metrics.QueueDepth(len(e.queue))
}

func (e *Engine) worker(ctx context.Context) {
	for item := range e.queue {
		e.process(ctx, item)
		e.wg.Done()
		e.metrics.QueueDepth(len(e.queue))
	}
}

// process fetches and handles one page. Failures are logged and counted,
// never fatal to the run.
func (e *Engine) process(ctx context.Context, item workItem) {
	log := e.logger.WithField("url", item.URL)

	cls, err := extract.Classify(item.URL)
	if err != nil {
		log.Warnf("skipping unrecognized URL: %v", err)
		e.metrics.PageSkipped("invalid_url")
		return
	}

	html, err := e.fetchPage(ctx, item.URL)
	if err != nil {
		log.Errorf("fetch failed: %v", err)
		e.metrics.PageSkipped("fetch_error")
		return
	}
	if len(html) < suspiciousResponseSize {
		log.Warnf("response suspiciously small (%d bytes)", len(html))
	}

	page, err := extract.NewPage(item.URL, html)
	if err != nil {
		log.Errorf("failed to parse page: %v", err)
		e.metrics.PageSkipped("parse_error")
		return
	}
	e.metrics.PageFetched(cls.Kind.String())

	switch cls.Kind {
	case extract.PageContent:
		e.processContent(page, cls, item)
	case extract.PageProfile:
		e.processProfile(page, cls)
	}
}

// fetchPage retrieves page HTML with retry. Block walls count as retryable
// failures so the retry layer gets a chance to ride them out.
func (e *Engine) fetchPage(ctx context.Context, url string) (string, error) {
	var html string
	err := e.retry.ExecuteWithRetry(ctx, func() error {
		body, err := e.fetcher.Fetch(ctx, url)
		if err != nil {
			return err
		}
		if err := CheckBlocked(url, body); err != nil {
			e.metrics.BlockDetected()
			return err
		}
		html = body
		return nil
	}, "fetch "+url)
	return html, err
}

func (e *Engine) processContent(page *extract.Page, cls extract.Classification, item workItem) {
	result := e.content.Run(page, cls)
	e.recordOutcomes(result.Outcomes)

	rec := result.Record
	if rec.OwnerUsername == "" {
		rec.OwnerUsername = item.SourceUsername
	}
	pipeline.Normalize(rec)

	final, keep := pipeline.PostProcess(rec, e.postOpts)
	if !keep {
		e.metrics.RecordDropped("date_filter")
		return
	}

	e.mu.Lock()
	e.records = append(e.records, final)
	e.mu.Unlock()
	e.metrics.RecordEmitted(string(rec.Kind))

	e.logger.WithFields(map[string]interface{}{
		"url":   page.URL,
		"state": result.State.String(),
		"type":  string(rec.Kind),
	}).Debug("content page processed")
}

func (e *Engine) processProfile(page *extract.Page, cls extract.Classification) {
	result := e.profiles.Run(page, cls)
	e.recordOutcomes(result.Outcomes)

	if len(result.Expansion.ContentURLs) == 0 {
		e.logger.WithField("username", cls.Username).Warn("profile yielded no posts")
		return
	}

	e.logger.WithFields(map[string]interface{}{
		"username": cls.Username,
		"posts":    len(result.Expansion.ContentURLs),
	}).Info("profile expanded")

	for _, u := range result.Expansion.ContentURLs {
		e.enqueue(workItem{URL: u, SourceUsername: cls.Username})
	}
}

func (e *Engine) recordOutcomes(outcomes []pipeline.StrategyOutcome) {
	for _, o := range outcomes {
		switch {
		case o.Matched:
			e.metrics.StrategyAttempt(o.Strategy, "match", o.Duration)
		case o.Err != nil:
			e.metrics.StrategyAttempt(o.Strategy, "error", o.Duration)
		default:
			e.metrics.StrategyAttempt(o.Strategy, "miss", o.Duration)
		}
	}
}
