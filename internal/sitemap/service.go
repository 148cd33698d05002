// Package sitemap manages sitemap entries, XML generation, and the
// site crawl that discovers URLs.
package sitemap

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/seoforge/seoforge/internal/platform/errs"
	"github.com/seoforge/seoforge/internal/storage"
)

// Store is the persistence surface the service needs.
type Store interface {
	InsertSitemapEntry(e *storage.SitemapEntry) (int64, error)
	ListSitemapEntries(projectID, entryType string) ([]*storage.SitemapEntry, error)
	DeleteSitemapEntry(id int64) error
}

// validTypes are the supported sitemap flavors.
var validTypes = map[string]bool{"general": true, "news": true, "video": true, "image": true}

// validChangeFreqs are the changefreq values the sitemap protocol
// defines.
var validChangeFreqs = map[string]bool{
	"always": true, "hourly": true, "daily": true, "weekly": true,
	"monthly": true, "yearly": true, "never": true,
}

// CreateRequest carries one new sitemap entry.
type CreateRequest struct {
	ProjectID    string  `json:"project_id,omitempty"`
	Type         string  `json:"type,omitempty"`
	URL          string  `json:"url"`
	Priority     float64 `json:"priority,omitempty"`
	ChangeFreq   string  `json:"changefreq,omitempty"`
	LastModified string  `json:"last_modified,omitempty"` // YYYY-MM-DD
}

// Service manages sitemap entries.
type Service struct {
	store Store
}

// NewService creates a sitemap service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create validates and stores one sitemap entry.
func (s *Service) Create(req *CreateRequest) (*storage.SitemapEntry, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, errs.Invalid("URL is required")
	}
	u, err := url.Parse(req.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, errs.Invalid("Invalid URL format")
	}

	entryType := req.Type
	if entryType == "" {
		entryType = "general"
	}
	if !validTypes[entryType] {
		return nil, errs.Invalid("Invalid sitemap type")
	}

	priority := req.Priority
	if priority == 0 {
		priority = 0.5
	}
	if priority < 0 || priority > 1 {
		return nil, errs.Invalid("Priority must be between 0.0 and 1.0")
	}

	changeFreq := req.ChangeFreq
	if changeFreq == "" {
		changeFreq = "weekly"
	}
	if !validChangeFreqs[changeFreq] {
		return nil, errs.Invalid("Invalid changefreq value")
	}

	entry := &storage.SitemapEntry{
		ProjectID:  req.ProjectID,
		Type:       entryType,
		URL:        req.URL,
		Priority:   priority,
		ChangeFreq: changeFreq,
	}
	if req.LastModified != "" {
		t, err := time.Parse("2006-01-02", req.LastModified)
		if err != nil {
			return nil, errs.Invalid("Invalid last_modified date, expected YYYY-MM-DD")
		}
		entry.LastModified = t
	}

	id, err := s.store.InsertSitemapEntry(entry)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Storage, Message: "failed to store sitemap entry", Cause: err}
	}
	entry.ID = id
	return entry, nil
}

// List returns sitemap entries, optionally filtered by type.
func (s *Service) List(projectID, entryType string) ([]*storage.SitemapEntry, error) {
	if entryType != "" && !validTypes[entryType] {
		return nil, errs.Invalid("Invalid sitemap type")
	}
	entries, err := s.store.ListSitemapEntries(projectID, entryType)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Storage, Message: "failed to list sitemap entries", Cause: err}
	}
	return entries, nil
}

// Delete removes one sitemap entry.
func (s *Service) Delete(id int64) error {
	if err := s.store.DeleteSitemapEntry(id); err != nil {
		return &errs.AppError{Kind: errs.Storage, Message: "failed to delete sitemap entry", Cause: err}
	}
	return nil
}

// Generate renders the XML sitemap for one type.
func (s *Service) Generate(projectID, entryType string) (string, error) {
	if entryType == "" {
		entryType = "general"
	}
	if !validTypes[entryType] {
		return "", errs.Invalid("Invalid sitemap type")
	}

	entries, err := s.store.ListSitemapEntries(projectID, entryType)
	if err != nil {
		return "", &errs.AppError{Kind: errs.Storage, Message: "failed to load sitemap entries", Cause: err}
	}
	return buildXML(entryType, entries), nil
}

// buildXML renders a urlset document. News, video, and image sitemaps
// declare their extension namespace on the root element.
func buildXML(entryType string, entries []*storage.SitemapEntry) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	switch entryType {
	case "news":
		b.WriteString(` xmlns:news="http://www.google.com/schemas/sitemap-news/0.9"`)
	case "video":
		b.WriteString(` xmlns:video="http://www.google.com/schemas/sitemap-video/1.1"`)
	case "image":
		b.WriteString(` xmlns:image="http://www.google.com/schemas/sitemap-image/1.1"`)
	}
	b.WriteString(">\n")

	for _, e := range entries {
		b.WriteString("  <url>\n")
		fmt.Fprintf(&b, "    <loc>%s</loc>\n", xmlEscape(e.URL))
		if !e.LastModified.IsZero() {
			fmt.Fprintf(&b, "    <lastmod>%s</lastmod>\n", e.LastModified.Format("2006-01-02"))
		}
		fmt.Fprintf(&b, "    <changefreq>%s</changefreq>\n", e.ChangeFreq)
		fmt.Fprintf(&b, "    <priority>%.1f</priority>\n", e.Priority)
		b.WriteString("  </url>\n")
	}

	b.WriteString("</urlset>\n")
	return b.String()
}

func xmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(s)
}
