// Package redirect manages the URL redirection table.
package redirect

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/seoforge/seoforge/internal/platform/errs"
	"github.com/seoforge/seoforge/internal/storage"
)

// Store is the persistence surface the service needs.
type Store interface {
	InsertRedirection(r *storage.Redirection) (int64, error)
	GetRedirectionBySource(sourceURL string, activeOnly bool) (*storage.Redirection, error)
	ListRedirections(status, projectID string) ([]*storage.Redirection, error)
	UpdateRedirection(id int64, fields map[string]any) error
	DeleteRedirection(id int64) error
	TouchRedirection(id int64) error
}

// validTypes are the accepted redirect types. 410 marks a page as
// intentionally gone rather than redirected.
var validTypes = map[string]bool{"301": true, "302": true, "307": true, "410": true}

// CreateRequest carries one new redirection.
type CreateRequest struct {
	ProjectID    string `json:"project_id,omitempty"`
	SourceURL    string `json:"source_url"`
	TargetURL    string `json:"target_url"`
	RedirectType string `json:"redirect_type,omitempty"`
}

// UpdateRequest carries a partial redirection update. Nil fields are
// left unchanged.
type UpdateRequest struct {
	SourceURL    *string `json:"source_url,omitempty"`
	TargetURL    *string `json:"target_url,omitempty"`
	RedirectType *string `json:"redirect_type,omitempty"`
	Status       *string `json:"status,omitempty"`
}

// CheckResult reports whether a source URL has an active redirection.
type CheckResult struct {
	Found        bool   `json:"found"`
	TargetURL    string `json:"target_url,omitempty"`
	RedirectType string `json:"redirect_type,omitempty"`
}

// ImportResult summarizes a CSV import.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// Service manages redirections.
type Service struct {
	store Store
}

// NewService creates a redirection service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create validates and stores one redirection.
func (s *Service) Create(req *CreateRequest) (*storage.Redirection, error) {
	if strings.TrimSpace(req.SourceURL) == "" {
		return nil, errs.Invalid("Source URL is required")
	}
	if strings.TrimSpace(req.TargetURL) == "" {
		return nil, errs.Invalid("Target URL is required")
	}

	redirectType := req.RedirectType
	if redirectType == "" {
		redirectType = "301"
	}
	if !validTypes[redirectType] {
		return nil, errs.Invalid("Invalid redirect type")
	}

	existing, err := s.store.GetRedirectionBySource(req.SourceURL, false)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Storage, Message: "failed to check existing redirection", Cause: err}
	}
	if existing != nil {
		return nil, &errs.AppError{Kind: errs.Conflict, Message: "A redirection for this source URL already exists"}
	}

	r := &storage.Redirection{
		ProjectID:    req.ProjectID,
		SourceURL:    req.SourceURL,
		TargetURL:    req.TargetURL,
		RedirectType: redirectType,
		Status:       "active",
	}
	id, err := s.store.InsertRedirection(r)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Storage, Message: "failed to store redirection", Cause: err}
	}
	r.ID = id
	return r, nil
}

// List returns redirections for a status, defaulting to active.
func (s *Service) List(status, projectID string) ([]*storage.Redirection, error) {
	if status == "" {
		status = "active"
	}
	if status != "active" && status != "inactive" {
		return nil, errs.Invalid("Invalid status filter")
	}
	redirections, err := s.store.ListRedirections(status, projectID)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Storage, Message: "failed to list redirections", Cause: err}
	}
	return redirections, nil
}

// Update applies a partial update to one redirection.
func (s *Service) Update(id int64, req *UpdateRequest) error {
	fields := map[string]any{}
	if req.SourceURL != nil {
		if strings.TrimSpace(*req.SourceURL) == "" {
			return errs.Invalid("Source URL is required")
		}
		fields["source_url"] = *req.SourceURL
	}
	if req.TargetURL != nil {
		if strings.TrimSpace(*req.TargetURL) == "" {
			return errs.Invalid("Target URL is required")
		}
		fields["target_url"] = *req.TargetURL
	}
	if req.RedirectType != nil {
		if !validTypes[*req.RedirectType] {
			return errs.Invalid("Invalid redirect type")
		}
		fields["redirect_type"] = *req.RedirectType
	}
	if req.Status != nil {
		if *req.Status != "active" && *req.Status != "inactive" {
			return errs.Invalid("Invalid status")
		}
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		return errs.Invalid("No fields to update")
	}

	if err := s.store.UpdateRedirection(id, fields); err != nil {
		return &errs.AppError{Kind: errs.Storage, Message: "failed to update redirection", Cause: err}
	}
	return nil
}

// Delete removes one redirection.
func (s *Service) Delete(id int64) error {
	if err := s.store.DeleteRedirection(id); err != nil {
		return &errs.AppError{Kind: errs.Storage, Message: "failed to delete redirection", Cause: err}
	}
	return nil
}

// Check looks up the active redirection for a source URL and records
// a hit when one matches.
func (s *Service) Check(sourceURL string) (*CheckResult, error) {
	if strings.TrimSpace(sourceURL) == "" {
		return nil, errs.Invalid("Source URL is required")
	}

	r, err := s.store.GetRedirectionBySource(sourceURL, true)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Storage, Message: "failed to look up redirection", Cause: err}
	}
	if r == nil {
		return &CheckResult{Found: false}, nil
	}

	if err := s.store.TouchRedirection(r.ID); err != nil {
		return nil, &errs.AppError{Kind: errs.Storage, Message: "failed to record redirection hit", Cause: err}
	}
	return &CheckResult{Found: true, TargetURL: r.TargetURL, RedirectType: r.RedirectType}, nil
}

// ImportCSV bulk-loads redirections from CSV rows of the form
// source,target[,type]. A header row starting with "source" is
// skipped, as are rows with fewer than two columns.
func (s *Service) ImportCSV(r io.Reader, projectID string) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	result := &ImportResult{}
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errs.Invalid("Malformed CSV input")
		}
		line++

		if line == 1 && len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "source") {
			continue
		}
		if len(record) < 2 {
			result.Skipped++
			continue
		}

		req := &CreateRequest{
			ProjectID: projectID,
			SourceURL: strings.TrimSpace(record[0]),
			TargetURL: strings.TrimSpace(record[1]),
		}
		if len(record) > 2 {
			req.RedirectType = strings.TrimSpace(record[2])
		}

		if _, err := s.Create(req); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		result.Imported++
	}
	return result, nil
}
