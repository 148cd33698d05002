package sitemap

import (
	"errors"
	"strings"
	"testing"

	"github.com/seoforge/seoforge/internal/platform/errs"
	"github.com/seoforge/seoforge/internal/storage"
)

type memStore struct {
	rows   map[int64]*storage.SitemapEntry
	nextID int64
}

func newMemStore() *memStore {
	return &memStore{rows: map[int64]*storage.SitemapEntry{}, nextID: 1}
}

func (m *memStore) InsertSitemapEntry(e *storage.SitemapEntry) (int64, error) {
	id := m.nextID
	m.nextID++
	copied := *e
	copied.ID = id
	m.rows[id] = &copied
	return id, nil
}

func (m *memStore) ListSitemapEntries(projectID, entryType string) ([]*storage.SitemapEntry, error) {
	var out []*storage.SitemapEntry
	for id := int64(1); id < m.nextID; id++ {
		e, ok := m.rows[id]
		if !ok {
			continue
		}
		if projectID != "" && e.ProjectID != projectID {
			continue
		}
		if entryType != "" && e.Type != entryType {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *memStore) DeleteSitemapEntry(id int64) error {
	delete(m.rows, id)
	return nil
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newMemStore())

	tests := []struct {
		name string
		req  CreateRequest
	}{
		{"missing url", CreateRequest{}},
		{"relative url", CreateRequest{URL: "/page"}},
		{"bad type", CreateRequest{URL: "https://example.com/", Type: "audio"}},
		{"priority too high", CreateRequest{URL: "https://example.com/", Priority: 1.5}},
		{"bad changefreq", CreateRequest{URL: "https://example.com/", ChangeFreq: "sometimes"}},
		{"bad date", CreateRequest{URL: "https://example.com/", LastModified: "01/02/2024"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(&tt.req)
			var appErr *errs.AppError
			if !errors.As(err, &appErr) || appErr.Kind != errs.InvalidInput {
				t.Errorf("got %v, want InvalidInput", err)
			}
		})
	}
}

func TestCreateDefaults(t *testing.T) {
	svc := NewService(newMemStore())

	entry, err := svc.Create(&CreateRequest{URL: "https://example.com/page"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if entry.Type != "general" || entry.Priority != 0.5 || entry.ChangeFreq != "weekly" {
		t.Errorf("defaults = %+v", entry)
	}
}

func TestGenerateXML(t *testing.T) {
	svc := NewService(newMemStore())

	if _, err := svc.Create(&CreateRequest{
		URL: "https://example.com/?a=1&b=2", Priority: 1.0,
		ChangeFreq: "daily", LastModified: "2024-05-01",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(&CreateRequest{URL: "https://example.com/about"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	xml, err := svc.Generate("", "general")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`,
		`<loc>https://example.com/?a=1&amp;b=2</loc>`,
		`<lastmod>2024-05-01</lastmod>`,
		`<changefreq>daily</changefreq>`,
		`<priority>1.0</priority>`,
		`<loc>https://example.com/about</loc>`,
		`<priority>0.5</priority>`,
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("generated XML missing %q\n%s", want, xml)
		}
	}
}

func TestGenerateNamespaces(t *testing.T) {
	svc := NewService(newMemStore())

	tests := []struct {
		entryType string
		wantNS    string
	}{
		{"news", `xmlns:news="http://www.google.com/schemas/sitemap-news/0.9"`},
		{"video", `xmlns:video="http://www.google.com/schemas/sitemap-video/1.1"`},
		{"image", `xmlns:image="http://www.google.com/schemas/sitemap-image/1.1"`},
	}
	for _, tt := range tests {
		t.Run(tt.entryType, func(t *testing.T) {
			xml, err := svc.Generate("", tt.entryType)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if !strings.Contains(xml, tt.wantNS) {
				t.Errorf("missing namespace %q in:\n%s", tt.wantNS, xml)
			}
		})
	}
}

func TestListFiltersByType(t *testing.T) {
	svc := NewService(newMemStore())

	svc.Create(&CreateRequest{URL: "https://example.com/", Type: "general"})
	svc.Create(&CreateRequest{URL: "https://example.com/news/1", Type: "news"})

	news, err := svc.List("", "news")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(news) != 1 || news[0].Type != "news" {
		t.Errorf("news entries = %+v", news)
	}

	if _, err := svc.List("", "bogus"); err == nil {
		t.Error("invalid type filter accepted")
	}
}
