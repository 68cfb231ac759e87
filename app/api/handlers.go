package api

import (
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/rss-digest/app/digest"
	"github.com/lysyi3m/rss-digest/app/render"
)

func NewHandler(outputDir string, report *digest.Report, generatedAt time.Time, version string) *Handler {
	if report == nil {
		report = &digest.Report{}
	}
	return &Handler{
		outputDir:   outputDir,
		report:      report,
		generatedAt: generatedAt,
		version:     version,
	}
}

func (h *Handler) GetIndex(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.File(filepath.Join(h.outputDir, render.IndexFile))
}

func (h *Handler) GetFeed(c *gin.Context) {
	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(len(h.report.Articles)))
	c.File(filepath.Join(h.outputDir, render.FeedFile))
}

// GetHealth reports the outcome of the run that produced the served site.
// Any failed source marks the status as degraded.
func (h *Handler) GetHealth(c *gin.Context) {
	status := "ok"
	sources := make([]sourceStatus, 0, len(h.report.Sources))
	for _, s := range h.report.Sources {
		st := sourceStatus{
			Name:    s.Source.Name,
			URL:     s.Source.URL,
			Fetched: s.Fetched,
			Kept:    s.Kept,
			Skipped: len(s.Skipped),
		}
		if s.Err != nil {
			st.Error = s.Err.Error()
			status = "degraded"
		}
		sources = append(sources, st)
	}

	c.JSON(http.StatusOK, healthResponse{
		Status:      status,
		Version:     h.version,
		GeneratedAt: h.generatedAt.Format(time.RFC3339),
		Articles:    len(h.report.Articles),
		Sources:     sources,
	})
}
