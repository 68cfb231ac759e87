package tasks

import (
	"context"
	"log/slog"

	"github.com/lysyi3m/rss-digest/app/feed"
	"github.com/lysyi3m/rss-digest/app/logger"
)

// FetchSourceTask fetches one source and keeps at most limit entries in the
// feed's native order. A limit <= 0 keeps everything.
type FetchSourceTask struct {
	Task
	Source  feed.Source
	fetcher feed.Fetcher
	limit   int

	Entries []feed.RawEntry
	Err     error
}

func NewFetchSourceTask(source feed.Source, fetcher feed.Fetcher, limit int) *FetchSourceTask {
	return &FetchSourceTask{
		Task:    NewTask(TaskTypeFetchSource, source.Name),
		Source:  source,
		fetcher: fetcher,
		limit:   limit,
	}
}

func (t *FetchSourceTask) Execute(ctx context.Context) error {
	ctx = logger.Ctx(ctx, slog.String("source", t.Source.Name))

	if err := ctx.Err(); err != nil {
		t.Err = err
		return err
	}

	slog.InfoContext(ctx, "Fetching feed", "url", t.Source.URL)

	entries, err := t.fetcher.Fetch(ctx, t.Source.URL)
	if err != nil {
		t.Err = err
		return err
	}

	total := len(entries)
	if t.limit > 0 && len(entries) > t.limit {
		entries = entries[:t.limit]
	}
	t.Entries = entries

	slog.DebugContext(ctx, "Task completed",
		"type", string(t.GetType()),
		"duration", t.GetDuration(),
		"total", total,
		"kept", len(entries))

	return nil
}
