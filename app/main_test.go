package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lysyi3m/rss-digest/app/cfg"
)

func rssFeed(title string, pubDates ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel><title>` + title + `</title>`)
	for i, d := range pubDates {
		b.WriteString(fmt.Sprintf(`<item><title>%s %d</title><link>https://example.com/%s/%d</link>`, title, i, title, i))
		if d != "" {
			b.WriteString(`<pubDate>` + d + `</pubDate>`)
		}
		b.WriteString(`<description>&lt;p&gt;body&lt;/p&gt;</description></item>`)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func TestBuildEndToEnd(t *testing.T) {
	alpha := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssFeed("alpha",
			"Mon, 01 Jan 2024 12:00:00 GMT",
			"",
			"Mon, 01 Jan 2024 10:00:00 GMT",
		)))
	}))
	defer alpha.Close()

	beta := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssFeed("beta",
			"Mon, 01 Jan 2024 11:00:00 GMT",
			"Mon, 01 Jan 2024 09:00:00 GMT",
			"Mon, 01 Jan 2024 08:00:00 GMT",
			"Mon, 01 Jan 2024 07:00:00 GMT",
			"Mon, 01 Jan 2024 06:00:00 GMT",
			"Mon, 01 Jan 2024 05:00:00 GMT",
		)))
	}))
	defer beta.Close()

	down := httptest.NewServer(http.NotFoundHandler())
	defer down.Close()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "digest.yml")
	config := fmt.Sprintf(`
settings:
  ad_cadence: 7
sources:
  - name: Alpha
    url: %s
  - name: Down
    url: %s
  - name: Beta
    url: %s
`, alpha.URL, down.URL, beta.URL)
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0644))

	outputDir := filepath.Join(dir, "public")
	appCfg := &cfg.Cfg{
		ConfigFile:  configPath,
		OutputDir:   outputDir,
		Timezone:    "UTC",
		SiteTitle:   "Test Digest",
		UserAgent:   "test",
		Timeout:     5,
		WorkerCount: 2,
		Version:     "test",
	}

	now := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
	report, err := build(context.Background(), appCfg, now)
	require.NoError(t, err)

	titles := make([]string, len(report.Articles))
	for i, a := range report.Articles {
		titles[i] = a.Title
	}
	assert.Equal(t, []string{
		"alpha 0", "beta 0", "alpha 2", "beta 1", "beta 2", "beta 3", "beta 4", "beta 5",
	}, titles)

	require.Len(t, report.Sources, 3)
	assert.Equal(t, "Down", report.Sources[1].Source.Name)
	assert.Error(t, report.Sources[1].Err)
	assert.Len(t, report.Sources[0].Skipped, 1)

	index, err := os.ReadFile(filepath.Join(outputDir, "index.html"))
	require.NoError(t, err)
	html := string(index)

	assert.Equal(t, 1, strings.Count(html, `data-ad-slot="true"`))
	assert.Equal(t, 8, strings.Count(html, "<article>"))
	assert.Contains(t, html, "Last updated: January 02, 2024 at 09:30 AM UTC")
	assert.Less(t, strings.Index(html, "beta 4"), strings.Index(html, `data-ad-slot="true"`))
	assert.Less(t, strings.Index(html, `data-ad-slot="true"`), strings.Index(html, "beta 5"))

	_, err = os.Stat(filepath.Join(outputDir, "feed.xml"))
	assert.NoError(t, err)
}

func TestBuildFailsOnUnwritableOutput(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssFeed("only", "Mon, 01 Jan 2024 12:00:00 GMT")))
	}))
	defer srv.Close()

	configPath := filepath.Join(t.TempDir(), "digest.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("sources:\n  - name: Only\n    url: "+srv.URL+"\n"), 0644))

	appCfg := &cfg.Cfg{
		ConfigFile:  configPath,
		OutputDir:   filepath.Join(blocker, "public"),
		Timeout:     5,
		WorkerCount: 1,
	}

	_, err := build(context.Background(), appCfg, time.Now())
	assert.Error(t, err)
}

func TestBuildFailsOnInvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "digest.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("sources: []\n"), 0644))

	_, err := build(context.Background(), &cfg.Cfg{ConfigFile: configPath, OutputDir: t.TempDir(), Timeout: 5, WorkerCount: 1}, time.Now())
	assert.Error(t, err)
}
