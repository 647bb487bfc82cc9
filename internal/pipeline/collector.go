package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/hsolkim/seaboard/internal/dedup"
	"github.com/hsolkim/seaboard/internal/model"
	"github.com/hsolkim/seaboard/internal/rank"
	"github.com/hsolkim/seaboard/internal/sources"
	"github.com/hsolkim/seaboard/internal/worker"
)

// Collector runs one full collection cycle: fan out over every configured
// query and source, build records, drop exact then near duplicates, rank,
// and assemble the board. One instance is safe for sequential reuse across
// refresh cycles; each cycle rebuilds every record from scratch.
type Collector struct {
	cfg      *model.Config
	fetcher  *Fetcher
	rss      *sources.RSSAdapter
	registry *sources.Registry
	builder  *Builder
	deduper  *dedup.Deduplicator
	ranker   *rank.Ranker
	logger   zerolog.Logger
}

// NewCollector wires a collector from configuration.
func NewCollector(cfg *model.Config, logger zerolog.Logger) *Collector {
	return &Collector{
		cfg:      cfg,
		fetcher:  NewFetcher(cfg.HTTP),
		rss:      sources.NewRSSAdapter(),
		registry: sources.NewRegistry(),
		builder:  NewBuilder(cfg),
		deduper:  dedup.NewDeduplicator(cfg.Dedup.Threshold),
		ranker:   rank.NewRanker(cfg),
		logger:   logger,
	}
}

// Collect executes one cycle. Individual source failures are folded into
// the board's source outcomes; Collect only errors when the context dies.
func (c *Collector) Collect(ctx context.Context) (*model.Board, error) {
	jobs := make([]worker.Job, 0, len(c.cfg.KoreanQueries)+len(c.cfg.USSources))

	for _, query := range c.cfg.KoreanQueries {
		query := query
		jobs = append(jobs, worker.Job{
			Name:    fmt.Sprintf("Google News (KR): %s", query),
			Adapter: c.rss.Name(),
			Run: func(ctx context.Context) ([]model.ArticleRecord, error) {
				return c.collectQuery(ctx, query)
			},
		})
	}

	for _, src := range c.cfg.USSources {
		src := src
		jobs = append(jobs, worker.Job{
			Name:    src.Name,
			Adapter: c.registry.ForURL(src.URL).Name(),
			Run: func(ctx context.Context) ([]model.ArticleRecord, error) {
				return c.collectSource(ctx, src)
			},
		})
	}

	pool := worker.NewPool(c.cfg.Concurrency.SourceWorkers)
	results := pool.Run(ctx, jobs)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("collection cycle: %w", err)
	}

	outcomes := make([]model.SourceOutcome, 0, len(results))
	var raw []model.ArticleRecord

	for _, res := range results {
		outcome := model.SourceOutcome{
			Name:     res.Name,
			Adapter:  res.Adapter,
			Count:    len(res.Records),
			Duration: res.Elapsed.Round(time.Millisecond).String(),
		}
		switch {
		case errors.Is(res.Err, ErrRobotsDisallowed):
			outcome.Skipped = true
			c.logger.Warn().Str("source", res.Name).Msg("skipped by robots.txt")
		case res.Err != nil:
			outcome.Error = res.Err.Error()
			c.logger.Warn().Str("source", res.Name).Err(res.Err).Msg("source failed")
		default:
			raw = append(raw, res.Records...)
			c.logger.Debug().
				Str("source", res.Name).
				Str("adapter", res.Adapter).
				Int("records", len(res.Records)).
				Dur("elapsed", res.Elapsed).
				Msg("source collected")
		}
		outcomes = append(outcomes, outcome)
	}

	// Exact dedup by identity hash, last write wins: same key means the
	// same (provider, title, url) content.
	byHash := make(map[string]model.ArticleRecord, len(raw))
	order := make([]string, 0, len(raw))
	for _, rec := range raw {
		if _, seen := byHash[rec.IdentityHash]; !seen {
			order = append(order, rec.IdentityHash)
		}
		byHash[rec.IdentityHash] = rec
	}
	unique := make([]model.ArticleRecord, 0, len(byHash))
	for _, h := range order {
		unique = append(unique, byHash[h])
	}

	kept := c.deduper.Deduplicate(unique)

	c.logger.Info().
		Int("sources", len(results)).
		Int("raw", len(raw)).
		Int("unique", len(unique)).
		Int("kept", len(kept)).
		Msg("collection cycle complete")

	return &model.Board{
		CollectedAt:  time.Now().UTC(),
		Records:      c.ranker.Sort(kept),
		TopPriority:  c.ranker.TopPerCompany(kept),
		OtherUpdates: c.ranker.OtherUpdates(kept),
		Sources:      outcomes,
	}, nil
}

// collectQuery fetches and extracts one Google News search feed.
func (c *Collector) collectQuery(ctx context.Context, query string) ([]model.ArticleRecord, error) {
	feedURL := c.rss.QueryURL(query)

	body, err := c.fetcher.Fetch(ctx, feedURL, false)
	if err != nil {
		return nil, err
	}

	items, err := c.rss.Extract(bytes.NewReader(body), c.cfg.Limits.EntriesPerQuery)
	if err != nil {
		return nil, err
	}

	records := make([]model.ArticleRecord, 0, len(items))
	for _, item := range items {
		if rec, ok := c.builder.Build(model.ProviderKoreanRSS, "Google News (KR)", item.URL, item); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// collectSource fetches and extracts one configured HTML listing page via
// the adapter registry.
func (c *Collector) collectSource(ctx context.Context, src model.SourceConfig) ([]model.ArticleRecord, error) {
	base, err := url.Parse(src.URL)
	if err != nil {
		return nil, fmt.Errorf("parse source URL: %w", err)
	}

	body, err := c.fetcher.Fetch(ctx, src.URL, true)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	adapter := c.registry.ForURL(src.URL)
	items := adapter.Extract(doc, base, src, c.cfg.Limits.ItemsPerSource)

	records := make([]model.ArticleRecord, 0, len(items))
	for _, item := range items {
		if rec, ok := c.builder.Build(model.ProviderUSSource, src.Name, src.URL, item); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}
