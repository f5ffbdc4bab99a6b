// ABOUTME: This file renders the page model into public/index.html and manifest.json
// ABOUTME: Summary fields are pre-sanitized fragments and interpolate as raw HTML
package renderer

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	"os"
	"path/filepath"
	texttemplate "text/template"

	"rss-firehose/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type Renderer struct {
	publicDir string
	index     *htmltemplate.Template
	manifest  *texttemplate.Template
	logger    *slog.Logger
}

func New(publicDir string, logger *slog.Logger) (*Renderer, error) {
	index, err := htmltemplate.ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}

	manifest, err := texttemplate.ParseFS(templateFS, "templates/manifest.json.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest template: %w", err)
	}

	return &Renderer{
		publicDir: publicDir,
		index:     index,
		manifest:  manifest,
		logger:    logger,
	}, nil
}

type pageView struct {
	Title           string
	Description     string
	AnalyticsUA     string
	OverallSummary  htmltemplate.HTML
	BreakingNews    []domain.BreakingNewsEntry
	BreakingSummary htmltemplate.HTML
	Feeds           []feedView
}

type feedView struct {
	SourceURL string
	Heading   string
	Offline   bool
	Summary   htmltemplate.HTML
	Items     []domain.FeedItem
}

// Render writes both output files. Offline sources render as labeled
// placeholders; they are never silently omitted.
func (r *Renderer) Render(page *domain.Page) error {
	view := pageView{
		Title:           page.Title,
		Description:     page.Description,
		AnalyticsUA:     page.AnalyticsUA,
		OverallSummary:  htmltemplate.HTML(page.OverallSummary),
		BreakingNews:    page.BreakingNews,
		BreakingSummary: htmltemplate.HTML(page.BreakingSummary),
	}

	for _, result := range page.Results {
		heading := fmt.Sprintf("%s - %d items:", result.SourceURL, len(result.Items))
		if result.Offline {
			heading = fmt.Sprintf("%s - offline: %s", result.SourceURL, result.Reason)
		}

		view.Feeds = append(view.Feeds, feedView{
			SourceURL: result.SourceURL,
			Heading:   heading,
			Offline:   result.Offline,
			Summary:   htmltemplate.HTML(page.SourceSummaries[result.SourceURL]),
			Items:     result.Items,
		})
	}

	if err := os.MkdirAll(r.publicDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := r.renderIndex(view); err != nil {
		return err
	}

	return r.renderManifest(page)
}

func (r *Renderer) renderIndex(view pageView) error {
	var buf bytes.Buffer
	if err := r.index.Execute(&buf, view); err != nil {
		return fmt.Errorf("failed to render index: %w", err)
	}

	path := filepath.Join(r.publicDir, "index.html")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	r.logger.Info("rendered index", "path", path, "bytes", buf.Len())

	return nil
}

// manifestView carries JSON-escaped values; the manifest template goes
// through text/template, which does no escaping of its own.
type manifestView struct {
	Title       string
	Description string
}

func (r *Renderer) renderManifest(page *domain.Page) error {
	view := manifestView{
		Title:       jsonEscape(page.Title),
		Description: jsonEscape(page.Description),
	}

	var buf bytes.Buffer
	if err := r.manifest.Execute(&buf, view); err != nil {
		return fmt.Errorf("failed to render manifest: %w", err)
	}

	path := filepath.Join(r.publicDir, "manifest.json")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// jsonEscape returns s as the inside of a JSON string literal.
func jsonEscape(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return ""
	}

	return string(b[1 : len(b)-1])
}
