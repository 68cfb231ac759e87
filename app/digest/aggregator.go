package digest

import (
	"context"
	"log/slog"
	"slices"

	"github.com/lysyi3m/rss-digest/app/feed"
	"github.com/lysyi3m/rss-digest/app/logger"
	"github.com/lysyi3m/rss-digest/app/tasks"
)

type Config struct {
	Sources        []feed.Source
	PerSourceLimit int
	PoolCap        int
	WorkerCount    int
}

// ConfigFrom builds the aggregator configuration from the loaded digest file.
func ConfigFrom(c *feed.Config, workerCount int) Config {
	return Config{
		Sources:        c.Sources,
		PerSourceLimit: c.Settings.PerSourceLimit,
		PoolCap:        c.Settings.PoolCap,
		WorkerCount:    workerCount,
	}
}

type Aggregator struct {
	fetcher feed.Fetcher
	runner  tasks.Runner
	config  Config
}

func NewAggregator(fetcher feed.Fetcher, config Config) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		runner:  tasks.NewPool(config.WorkerCount),
		config:  config,
	}
}

// Run fetches every source, normalizes the entries and returns the pool sorted
// newest first and capped. Per-source and per-entry failures are recorded in
// the report and never abort the run.
func (a *Aggregator) Run(ctx context.Context) *Report {
	batch := make([]tasks.TaskInterface, len(a.config.Sources))
	fetches := make([]*tasks.FetchSourceTask, len(a.config.Sources))
	for i, source := range a.config.Sources {
		fetches[i] = tasks.NewFetchSourceTask(source, a.fetcher, a.config.PerSourceLimit)
		batch[i] = fetches[i]
	}

	a.runner.Run(ctx, batch)

	report := &Report{Sources: make([]SourceReport, 0, len(fetches))}
	var pool []Article

	// Accumulate in configuration order so equal timestamps keep a
	// deterministic order after the stable sort.
	for _, fetch := range fetches {
		sourceReport, articles := a.collect(ctx, fetch)
		report.Sources = append(report.Sources, sourceReport)
		pool = append(pool, articles...)
	}

	slices.SortStableFunc(pool, func(x, y Article) int {
		return y.PublishedAt.Compare(x.PublishedAt)
	})

	if a.config.PoolCap > 0 && len(pool) > a.config.PoolCap {
		pool = pool[:a.config.PoolCap]
	}
	report.Articles = pool

	slog.InfoContext(ctx, "Aggregation completed",
		"sources", len(report.Sources),
		"failed_sources", len(report.FailedSources()),
		"articles", len(report.Articles))

	return report
}

func (a *Aggregator) collect(ctx context.Context, fetch *tasks.FetchSourceTask) (SourceReport, []Article) {
	ctx = logger.Ctx(ctx, slog.String("source", fetch.Source.Name))

	sourceReport := SourceReport{Source: fetch.Source}
	if fetch.Err != nil {
		slog.WarnContext(ctx, "Source contributed no articles", "error", fetch.Err)
		sourceReport.Err = fetch.Err
		return sourceReport, nil
	}

	sourceReport.Fetched = len(fetch.Entries)
	articles := make([]Article, 0, len(fetch.Entries))
	for i, entry := range fetch.Entries {
		result := Normalize(entry, fetch.Source)
		if result.Skipped {
			skip := Skip{Index: i, Title: entry.TitleOr(DefaultTitle), Reason: result.Reason, Err: result.Err}
			sourceReport.Skipped = append(sourceReport.Skipped, skip)
			slog.WarnContext(ctx, "Skipping entry", "index", i, "title", skip.Title, "reason", string(skip.Reason), "error", skip.Err)
			continue
		}
		articles = append(articles, result.Article)
	}
	sourceReport.Kept = len(articles)

	slog.InfoContext(ctx, "Source processed",
		"fetched", sourceReport.Fetched,
		"kept", sourceReport.Kept,
		"skipped", len(sourceReport.Skipped))

	return sourceReport, articles
}
