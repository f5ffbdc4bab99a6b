// ABOUTME: This file resolves the ordered set of feed source URLs
// ABOUTME: Primary list comes from env or file; the backup list covers an empty primary
package service

import (
	"log/slog"
	"net/url"
	"os"
	"strings"

	"rss-firehose/config"
)

type sourceResolver struct {
	cfg    config.SourcesConfig
	logger *slog.Logger
}

func NewSourceResolver(cfg config.SourcesConfig, logger *slog.Logger) SourceResolver {
	return &sourceResolver{
		cfg:    cfg,
		logger: logger,
	}
}

// Resolve returns the primary source list, filtered to valid http(s) URLs.
// When filtering leaves nothing, the backup list (itself filtered and
// defaulted) is substituted, so the result is never empty.
func (r *sourceResolver) Resolve() []string {
	primary := r.filterURLs(r.primaryList())
	if len(primary) > 0 {
		return primary
	}

	r.logger.Warn("no usable primary sources, falling back to backup list")

	backup := r.filterURLs(r.cfg.BackupURLs)
	if len(backup) > 0 {
		return backup
	}

	r.logger.Warn("backup source list empty, using built-in default",
		"url", config.DefaultBackupURL)

	return []string{config.DefaultBackupURL}
}

func (r *sourceResolver) primaryList() []string {
	if len(r.cfg.URLs) > 0 {
		return r.cfg.URLs
	}

	data, err := os.ReadFile(r.cfg.URLsFile)
	if err != nil {
		// Unreadable file degrades to an empty list and falls through to backup.
		r.logger.Warn("could not read source list file", "path", r.cfg.URLsFile, "error", err)
		return nil
	}

	return strings.Split(string(data), "\n")
}

func (r *sourceResolver) filterURLs(raw []string) []string {
	var valid []string

	dropped := 0
	for _, entry := range raw {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}

		if !isHTTPURL(trimmed) {
			dropped++
			continue
		}

		valid = append(valid, trimmed)
	}

	if dropped > 0 {
		r.logger.Warn("dropped invalid source URLs", "count", dropped)
	}

	return valid
}

func isHTTPURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
