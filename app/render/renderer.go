package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	IndexFile = "index.html"
	FeedFile  = "feed.xml"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type Renderer struct {
	outputDir  string
	tmpl       *template.Template
	feedWriter *FeedWriter
}

func NewRenderer(outputDir string) (*Renderer, error) {
	tmpl, err := template.New("index.html.tmpl").
		Funcs(template.FuncMap{"summary": plainSummary}).
		ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &Renderer{
		outputDir:  outputDir,
		tmpl:       tmpl,
		feedWriter: NewFeedWriter(),
	}, nil
}

// Run writes index.html and feed.xml into the output directory, creating it
// when absent. Any error here fails the whole run.
func (r *Renderer) Run(page Page) error {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, page); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	rss, err := r.feedWriter.Run(page)
	if err != nil {
		return fmt.Errorf("failed to render feed: %w", err)
	}

	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := writeFile(filepath.Join(r.outputDir, IndexFile), buf.Bytes()); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(r.outputDir, FeedFile), []byte(rss)); err != nil {
		return err
	}

	slog.Info("Site generated",
		"output_dir", r.outputDir,
		"items", len(page.Items),
		"articles", len(page.Articles),
		"last_updated", page.LastUpdated)

	return nil
}

// writeFile replaces path via a temp file so a concurrent reader never sees a
// partial page.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
