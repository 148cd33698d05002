// Package seo orchestrates page analysis and its persistence.
package seo

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"time"

	"github.com/seoforge/seoforge/internal/analyzer"
	"github.com/seoforge/seoforge/internal/platform/errs"
	"github.com/seoforge/seoforge/internal/storage"
)

// AnalysisStore is the persistence surface the service needs.
type AnalysisStore interface {
	InsertAnalysis(rec *storage.AnalysisRecord) (int64, error)
	AnalysisHistory(analysisType, projectID string, limit int) ([]*storage.AnalysisRecord, error)
}

// AnalyzeRequest carries one analysis submission.
type AnalyzeRequest struct {
	URL          string `json:"url"`
	ProjectID    string `json:"project_id,omitempty"`
	IsCompetitor bool   `json:"is_competitor,omitempty"`
}

// AnalyzeResult is the outcome returned to the caller.
type AnalyzeResult struct {
	ID      int64                      `json:"id"`
	URL     string                     `json:"url"`
	Score   int                        `json:"score"`
	Results map[string]analyzer.Result `json:"results"`
}

// HistoryEntry is one past analysis with its results parsed back.
type HistoryEntry struct {
	ID           int64          `json:"id"`
	ProjectID    string         `json:"project_id,omitempty"`
	URL          string         `json:"url"`
	AnalysisType string         `json:"analysis_type"`
	Score        int            `json:"score"`
	Results      map[string]any `json:"results"`
	AnalyzedAt   time.Time      `json:"analyzed_at"`
}

const defaultHistoryLimit = 10

// Service runs the analysis pipeline and records outcomes.
type Service struct {
	analyzer *analyzer.Analyzer
	store    AnalysisStore
	log      *slog.Logger
}

// NewService creates an analysis service.
func NewService(a *analyzer.Analyzer, store AnalysisStore, log *slog.Logger) *Service {
	return &Service{analyzer: a, store: store, log: log}
}

// Analyze validates the request, runs the full pipeline, and persists
// the outcome. A persistence failure does not invalidate the computed
// result: the analysis is returned with ID zero and the error logged.
func (s *Service) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResult, error) {
	if err := validateURL(req.URL); err != nil {
		return nil, err
	}

	analysis := s.analyzer.Analyze(ctx, req.URL)

	analysisType := "site"
	if req.IsCompetitor {
		analysisType = "competitor"
	}

	result := &AnalyzeResult{
		URL:     analysis.URL,
		Score:   analysis.Score,
		Results: analysis.Results,
	}

	payload, err := json.Marshal(analysis.Results)
	if err != nil {
		s.log.Error("failed to encode analysis results", "url", req.URL, "error", err)
		return result, nil
	}

	id, err := s.store.InsertAnalysis(&storage.AnalysisRecord{
		ProjectID:    req.ProjectID,
		URL:          analysis.URL,
		AnalysisType: analysisType,
		Score:        analysis.Score,
		Results:      payload,
		AnalyzedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.log.Error("failed to persist analysis", "url", req.URL, "error", err)
		return result, nil
	}

	result.ID = id
	return result, nil
}

// History returns past analyses, most recent first, with stored
// results decoded back into structured form.
func (s *Service) History(analysisType, projectID string, limit int) ([]*HistoryEntry, error) {
	if analysisType == "" {
		analysisType = "site"
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	records, err := s.store.AnalysisHistory(analysisType, projectID, limit)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Storage, Message: "failed to load analysis history", Cause: err}
	}

	entries := make([]*HistoryEntry, 0, len(records))
	for _, rec := range records {
		entry := &HistoryEntry{
			ID:           rec.ID,
			ProjectID:    rec.ProjectID,
			URL:          rec.URL,
			AnalysisType: rec.AnalysisType,
			Score:        rec.Score,
			AnalyzedAt:   rec.AnalyzedAt,
		}
		if err := json.Unmarshal(rec.Results, &entry.Results); err != nil {
			s.log.Warn("skipping stored results that failed to decode", "id", rec.ID, "error", err)
			entry.Results = map[string]any{}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// validateURL rejects missing or malformed URLs before any network
// I/O happens.
func validateURL(raw string) error {
	if raw == "" {
		return errs.Invalid("URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errs.Invalid("Invalid URL format")
	}
	return nil
}
