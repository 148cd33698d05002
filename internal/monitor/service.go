// Package monitor tracks 404 hits reported by the monitored site.
package monitor

import (
	"strings"

	"github.com/seoforge/seoforge/internal/platform/errs"
	"github.com/seoforge/seoforge/internal/storage"
)

// Store is the persistence surface the service needs.
type Store interface {
	UpsertNotFound(l *storage.NotFoundLog) (int64, error)
	ListNotFound(projectID, orderBy string, descending bool, limit, offset int) ([]*storage.NotFoundLog, error)
	CountNotFound(projectID string) (int64, error)
	DeleteNotFound(id int64) error
	ClearNotFound(projectID string) error
}

// LogRequest carries one reported 404 hit.
type LogRequest struct {
	ProjectID string `json:"project_id,omitempty"`
	URI       string `json:"uri"`
	Referer   string `json:"referer,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
}

// ListParams selects one page of 404 logs.
type ListParams struct {
	ProjectID string
	OrderBy   string
	Ascending bool
	Page      int
	PerPage   int
}

// Page is one page of 404 logs with pagination metadata.
type Page struct {
	Logs    []*storage.NotFoundLog `json:"logs"`
	Total   int64                  `json:"total"`
	Page    int                    `json:"page"`
	PerPage int                    `json:"per_page"`
}

const (
	defaultPerPage = 25
	maxPerPage     = 200
)

// Service manages the 404 log.
type Service struct {
	store Store
}

// NewService creates a 404 monitor service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Log records a 404 hit. Repeated hits on the same URI bump the hit
// counter instead of inserting a new row.
func (s *Service) Log(req *LogRequest) (int64, error) {
	if strings.TrimSpace(req.URI) == "" {
		return 0, errs.Invalid("URI is required")
	}

	id, err := s.store.UpsertNotFound(&storage.NotFoundLog{
		ProjectID: req.ProjectID,
		URI:       req.URI,
		Referer:   req.Referer,
		UserAgent: req.UserAgent,
		IPAddress: req.IPAddress,
	})
	if err != nil {
		return 0, &errs.AppError{Kind: errs.Storage, Message: "failed to record 404 hit", Cause: err}
	}
	return id, nil
}

// List returns one page of 404 logs.
func (s *Service) List(params ListParams) (*Page, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	perPage := params.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	logs, err := s.store.ListNotFound(params.ProjectID, params.OrderBy, !params.Ascending, perPage, (page-1)*perPage)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Storage, Message: "failed to list 404 logs", Cause: err}
	}
	total, err := s.store.CountNotFound(params.ProjectID)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Storage, Message: "failed to count 404 logs", Cause: err}
	}

	if logs == nil {
		logs = []*storage.NotFoundLog{}
	}
	return &Page{Logs: logs, Total: total, Page: page, PerPage: perPage}, nil
}

// All returns every 404 log, most hit first. Used by exports.
func (s *Service) All(projectID string) ([]*storage.NotFoundLog, error) {
	logs, err := s.store.ListNotFound(projectID, "hits", true, maxPerPage*100, 0)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Storage, Message: "failed to list 404 logs", Cause: err}
	}
	return logs, nil
}

// Delete removes one 404 log.
func (s *Service) Delete(id int64) error {
	if err := s.store.DeleteNotFound(id); err != nil {
		return &errs.AppError{Kind: errs.Storage, Message: "failed to delete 404 log", Cause: err}
	}
	return nil
}

// Clear removes all 404 logs, optionally scoped to a project.
func (s *Service) Clear(projectID string) error {
	if err := s.store.ClearNotFound(projectID); err != nil {
		return &errs.AppError{Kind: errs.Storage, Message: "failed to clear 404 logs", Cause: err}
	}
	return nil
}
