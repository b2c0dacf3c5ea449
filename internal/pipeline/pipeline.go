// internal/pipeline/pipeline.go

// Package pipeline orchestrates extraction for one page: it runs the
// configured strategies in priority order, merges their partial results
// into a single accumulating record, and finalizes the record through
// normalization and post-processing. The pipeline never fails outright for
// a page with no usable data; partial output is preferred over none.
package pipeline

import (
	"errors"
	"time"

	"github.com/Sampath2CSE/instagram-post-scraper/internal/extract"
	"github.com/Sampath2CSE/instagram-post-scraper/internal/utils"
)

// State tracks a pipeline run through its lifecycle.
type State int

const (
	StatePending State = iota
	StateRunning
	StateSatisfied
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateSatisfied:
		return "satisfied"
	default:
		return "exhausted"
	}
}

// Completeness decides whether the accumulated record is good enough to
// stop early. The default requires a caption plus at least one media item.
type Completeness func(*extract.ContentRecord) bool

// DefaultCompleteness is the stock early-stop predicate.
func DefaultCompleteness(rec *extract.ContentRecord) bool {
	return rec.Caption != "" && (len(rec.Images) > 0 || len(rec.Videos) > 0)
}

// StrategyOutcome records what a single strategy contributed, for
// diagnostics and metrics.
type StrategyOutcome struct {
	Strategy string
	Matched  bool
	Err      error
	Duration time.Duration
}

// ContentResult is the outcome of a content-page pipeline run.
type ContentResult struct {
	Record   *extract.ContentRecord
	State    State
	Outcomes []StrategyOutcome
}

// ContentPipeline runs content strategies in fidelity order.
type ContentPipeline struct {
	strategies []extract.ContentStrategy
	complete   Completeness
	logger     utils.Logger
}

// NewContentPipeline builds a pipeline over the given strategies. A nil
// predicate selects DefaultCompleteness.
func NewContentPipeline(strategies []extract.ContentStrategy, complete Completeness, logger utils.Logger) *ContentPipeline {
	if complete == nil {
		complete = DefaultCompleteness
	}
	if logger == nil {
		logger = utils.NewLogger()
	}
	return &ContentPipeline{strategies: strategies, complete: complete, logger: logger}
}

// Run executes the pipeline for one content page. Strategies execute
// strictly in priority order; a strategy failure is downgraded to a miss
// and never aborts the run. The returned record is always non-nil, however
// partial.
func (p *ContentPipeline) Run(page *extract.Page, cls extract.Classification) *ContentResult {
	record := &extract.ContentRecord{
		URL:       page.URL,
		Shortcode: cls.Shortcode,
		IsReel:    cls.IsReel,
	}

	result := &ContentResult{Record: record, State: StateRunning}

	for _, strategy := range p.strategies {
		start := time.Now()
		partial, err := strategy.Attempt(page)
		outcome := StrategyOutcome{
			Strategy: strategy.Name(),
			Matched:  err == nil && partial != nil,
			Duration: time.Since(start),
		}

		switch {
		case err == nil && partial != nil:
			mergePartial(record, partial)
		case errors.Is(err, extract.ErrNoMatch):
			// Absence is an expected outcome.
		case err != nil:
			outcome.Err = err
			p.logger.WithField("url", page.URL).
				Warnf("strategy %s failed: %v", strategy.Name(), err)
		}
		result.Outcomes = append(result.Outcomes, outcome)

		if p.complete(record) {
			result.State = StateSatisfied
			return result
		}
	}

	result.State = StateExhausted
	return result
}

// ProfileResult is the outcome of a profile-page pipeline run.
type ProfileResult struct {
	Expansion *extract.ProfileExpansion
	State     State
	Outcomes  []StrategyOutcome
}

// ProfilePipeline runs profile strategies in fidelity order. Unlike content
// pipelines there is no merging: the first strategy producing a non-empty
// URL list wins, so low-confidence identifier sources never mix with
// high-confidence timeline data.
type ProfilePipeline struct {
	strategies []extract.ProfileStrategy
	maxPosts   int
	logger     utils.Logger
}

// NewProfilePipeline builds a profile pipeline. maxPosts bounds the
// expansion; zero or negative means 50.
func NewProfilePipeline(strategies []extract.ProfileStrategy, maxPosts int, logger utils.Logger) *ProfilePipeline {
	if maxPosts <= 0 {
		maxPosts = 50
	}
	if logger == nil {
		logger = utils.NewLogger()
	}
	return &ProfilePipeline{strategies: strategies, maxPosts: maxPosts, logger: logger}
}

// Run executes the profile pipeline. The returned expansion is deduplicated
// in first-seen order and truncated to the configured maximum; it may be
// empty when every strategy misses.
func (p *ProfilePipeline) Run(page *extract.Page, cls extract.Classification) *ProfileResult {
	result := &ProfileResult{
		Expansion: &extract.ProfileExpansion{SourceUsername: cls.Username},
		State:     StateRunning,
	}

	for _, strategy := range p.strategies {
		start := time.Now()
		expansion, err := strategy.Attempt(page)
		outcome := StrategyOutcome{
			Strategy: strategy.Name(),
			Matched:  err == nil && expansion != nil && len(expansion.ContentURLs) > 0,
			Duration: time.Since(start),
		}

		switch {
		case outcome.Matched:
			result.Outcomes = append(result.Outcomes, outcome)
			result.Expansion.ContentURLs = truncate(dedupeURLs(expansion.ContentURLs), p.maxPosts)
			result.State = StateSatisfied
			return result
		case err != nil && !errors.Is(err, extract.ErrNoMatch):
			outcome.Err = err
			p.logger.WithField("url", page.URL).
				Warnf("strategy %s failed: %v", strategy.Name(), err)
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	result.State = StateExhausted
	return result
}

func dedupeURLs(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := urls[:0:0]
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

func truncate(urls []string, max int) []string {
	if len(urls) > max {
		return urls[:max]
	}
	return urls
}
