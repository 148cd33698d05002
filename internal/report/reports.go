// Package report builds tabular reports over stored toolkit data and
// exports them to CSV, XLSX, and JSON.
package report

import (
	"fmt"
	"time"

	"github.com/seoforge/seoforge/internal/seo"
	"github.com/seoforge/seoforge/internal/storage"
)

// Type identifies one report flavor.
type Type string

const (
	TypeAnalysisHistory Type = "analysis_history"
	TypeNotFoundLog     Type = "not_found_log"
	TypeRedirections    Type = "redirections"
	TypeSitemapEntries  Type = "sitemap_entries"
)

// Definition describes one report's shape.
type Definition struct {
	Type        Type
	Name        string
	Description string
	Columns     []string
}

// Row is one report row keyed by column name.
type Row struct {
	Values map[string]any
}

// Report is a fully materialized report ready for export.
type Report struct {
	Definition *Definition
	Rows       []*Row
	Generated  time.Time
}

// Definitions returns every available report definition.
func Definitions() []*Definition {
	return []*Definition{
		{TypeAnalysisHistory, "Analysis History", "Past page analyses with scores", []string{"URL", "Type", "Score", "Analyzed At"}},
		{TypeNotFoundLog, "404 Log", "Tracked 404 hits with referrers", []string{"URI", "Hits", "Referer", "User Agent", "Last Accessed"}},
		{TypeRedirections, "Redirections", "Configured URL redirections", []string{"Source URL", "Target URL", "Type", "Status", "Hits"}},
		{TypeSitemapEntries, "Sitemap Entries", "URLs registered for sitemap generation", []string{"URL", "Sitemap Type", "Priority", "Change Frequency"}},
	}
}

func definition(t Type) (*Definition, error) {
	for _, def := range Definitions() {
		if def.Type == t {
			return def, nil
		}
	}
	return nil, fmt.Errorf("unknown report type: %s", t)
}

// FromAnalysisHistory builds the analysis history report.
func FromAnalysisHistory(entries []*seo.HistoryEntry) *Report {
	def, _ := definition(TypeAnalysisHistory)
	r := &Report{Definition: def, Generated: time.Now()}
	for _, e := range entries {
		r.Rows = append(r.Rows, &Row{Values: map[string]any{
			"URL":         e.URL,
			"Type":        e.AnalysisType,
			"Score":       e.Score,
			"Analyzed At": e.AnalyzedAt.Format(time.RFC3339),
		}})
	}
	return r
}

// FromNotFoundLogs builds the 404 log report.
func FromNotFoundLogs(logs []*storage.NotFoundLog) *Report {
	def, _ := definition(TypeNotFoundLog)
	r := &Report{Definition: def, Generated: time.Now()}
	for _, l := range logs {
		r.Rows = append(r.Rows, &Row{Values: map[string]any{
			"URI":           l.URI,
			"Hits":          l.Hits,
			"Referer":       l.Referer,
			"User Agent":    l.UserAgent,
			"Last Accessed": l.LastAccessed.Format(time.RFC3339),
		}})
	}
	return r
}

// FromRedirections builds the redirections report.
func FromRedirections(redirections []*storage.Redirection) *Report {
	def, _ := definition(TypeRedirections)
	r := &Report{Definition: def, Generated: time.Now()}
	for _, rd := range redirections {
		r.Rows = append(r.Rows, &Row{Values: map[string]any{
			"Source URL": rd.SourceURL,
			"Target URL": rd.TargetURL,
			"Type":       rd.RedirectType,
			"Status":     rd.Status,
			"Hits":       rd.Hits,
		}})
	}
	return r
}

// FromSitemapEntries builds the sitemap entries report.
func FromSitemapEntries(entries []*storage.SitemapEntry) *Report {
	def, _ := definition(TypeSitemapEntries)
	r := &Report{Definition: def, Generated: time.Now()}
	for _, e := range entries {
		r.Rows = append(r.Rows, &Row{Values: map[string]any{
			"URL":              e.URL,
			"Sitemap Type":     e.Type,
			"Priority":         e.Priority,
			"Change Frequency": e.ChangeFreq,
		}})
	}
	return r
}
