package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/run"

	"github.com/lysyi3m/rss-digest/app/api"
	"github.com/lysyi3m/rss-digest/app/cfg"
	"github.com/lysyi3m/rss-digest/app/digest"
	"github.com/lysyi3m/rss-digest/app/feed"
	"github.com/lysyi3m/rss-digest/app/logger"
	"github.com/lysyi3m/rss-digest/app/render"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	slog.SetDefault(logger.New(os.Stdout, appCfg.Debug))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx = logger.Ctx(ctx, slog.String("run_id", uuid.NewString()))

	slog.InfoContext(ctx, "Starting RSS Digest", "version", appCfg.Version, "output_dir", appCfg.OutputDir)

	now := time.Now()
	report, err := build(ctx, appCfg, now)
	stop()
	if err != nil {
		slog.ErrorContext(ctx, "Failed to generate site", "error", err)
		os.Exit(1)
	}

	if !appCfg.Serve {
		return
	}

	if err := serve(appCfg, report, now); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}

// build runs one fetch-sort-render pass. Feed failures only shrink the
// result; the returned error means nothing could be written.
func build(ctx context.Context, appCfg *cfg.Cfg, now time.Time) (*digest.Report, error) {
	digestCfg, err := feed.LoadSources(appCfg.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load sources: %w", err)
	}

	loc, err := appCfg.Location()
	if err != nil {
		slog.WarnContext(ctx, "Falling back to UTC for display", "error", err)
	}

	renderer, err := render.NewRenderer(appCfg.OutputDir)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: appCfg.FetchTimeout()}
	fetcher := feed.NewHTTPFetcher(httpClient, feed.NewParser(), appCfg.UserAgent, appCfg.FetchTimeout())

	slog.InfoContext(ctx, "Fetching feeds",
		"sources", len(digestCfg.Sources),
		"workers", appCfg.WorkerCount,
		"pool_cap", digestCfg.Settings.PoolCap,
		"ad_cadence", digestCfg.Settings.AdCadence)

	report := digest.NewAggregator(fetcher, digest.ConfigFrom(digestCfg, appCfg.WorkerCount)).Run(ctx)
	items := digest.InjectAds(report.Articles, digestCfg.Settings.AdCadence)

	site := render.Site{
		Title:   appCfg.SiteTitle,
		BaseUrl: appCfg.BaseUrl,
		Version: appCfg.Version,
	}

	if err := renderer.Run(render.NewPage(site, report.Articles, items, now, loc)); err != nil {
		return nil, err
	}

	return report, nil
}

func serve(appCfg *cfg.Cfg, report *digest.Report, generatedAt time.Time) error {
	handler := api.NewHandler(appCfg.OutputDir, report, generatedAt, appCfg.Version)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      api.NewServer(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	var g run.Group

	g.Add(func() error {
		slog.Info("Starting preview server", "url", fmt.Sprintf("http://localhost:%s/", appCfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	}, func(error) {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("HTTP server shutdown error", "error", err)
		}
	})

	g.Add(run.SignalHandler(context.Background(), os.Interrupt, syscall.SIGTERM))

	err := g.Run()

	var sigErr run.SignalError
	if errors.As(err, &sigErr) {
		slog.Info("Received signal, preview server stopped", "signal", sigErr.Signal.String())
		return nil
	}
	return err
}
