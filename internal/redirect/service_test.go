package redirect

import (
	"errors"
	"strings"
	"testing"

	"github.com/seoforge/seoforge/internal/platform/errs"
	"github.com/seoforge/seoforge/internal/storage"
)

type memStore struct {
	rows   map[int64]*storage.Redirection
	nextID int64
}

func newMemStore() *memStore {
	return &memStore{rows: map[int64]*storage.Redirection{}, nextID: 1}
}

func (m *memStore) InsertRedirection(r *storage.Redirection) (int64, error) {
	id := m.nextID
	m.nextID++
	copied := *r
	copied.ID = id
	m.rows[id] = &copied
	return id, nil
}

func (m *memStore) GetRedirectionBySource(sourceURL string, activeOnly bool) (*storage.Redirection, error) {
	for _, r := range m.rows {
		if r.SourceURL == sourceURL && (!activeOnly || r.Status == "active") {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListRedirections(status, projectID string) ([]*storage.Redirection, error) {
	var out []*storage.Redirection
	for _, r := range m.rows {
		if r.Status == status && (projectID == "" || r.ProjectID == projectID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) UpdateRedirection(id int64, fields map[string]any) error {
	r, ok := m.rows[id]
	if !ok {
		return errors.New("no such row")
	}
	if v, ok := fields["source_url"]; ok {
		r.SourceURL = v.(string)
	}
	if v, ok := fields["target_url"]; ok {
		r.TargetURL = v.(string)
	}
	if v, ok := fields["redirect_type"]; ok {
		r.RedirectType = v.(string)
	}
	if v, ok := fields["status"]; ok {
		r.Status = v.(string)
	}
	return nil
}

func (m *memStore) DeleteRedirection(id int64) error {
	delete(m.rows, id)
	return nil
}

func (m *memStore) TouchRedirection(id int64) error {
	if r, ok := m.rows[id]; ok {
		r.Hits++
	}
	return nil
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newMemStore())

	tests := []struct {
		name string
		req  CreateRequest
	}{
		{"missing source", CreateRequest{TargetURL: "/new"}},
		{"missing target", CreateRequest{SourceURL: "/old"}},
		{"bad type", CreateRequest{SourceURL: "/old", TargetURL: "/new", RedirectType: "308"}},
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

func TestCreateDefaultsAndConflict(t *testing.T) {
	svc := NewService(newMemStore())

	r, err := svc.Create(&CreateRequest{SourceURL: "/old", TargetURL: "/new"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.RedirectType != "301" {
		t.Errorf("redirect_type = %q, want 301", r.RedirectType)
	}
	if r.Status != "active" {
		t.Errorf("status = %q, want active", r.Status)
	}

	_, err = svc.Create(&CreateRequest{SourceURL: "/old", TargetURL: "/other"})
	var appErr *errs.AppError
	if !errors.As(err, &appErr) || appErr.Kind != errs.Conflict {
		t.Errorf("duplicate create: got %v, want Conflict", err)
	}
}

func TestCheckRecordsHit(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)

	if _, err := svc.Create(&CreateRequest{SourceURL: "/old", TargetURL: "https://example.com/new", RedirectType: "302"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	result, err := svc.Check("/old")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !result.Found || result.TargetURL != "https://example.com/new" || result.RedirectType != "302" {
		t.Errorf("check = %+v", result)
	}
	if store.rows[1].Hits != 1 {
		t.Errorf("hits = %d, want 1", store.rows[1].Hits)
	}

	miss, err := svc.Check("/unknown")
	if err != nil {
		t.Fatalf("Check miss: %v", err)
	}
	if miss.Found {
		t.Errorf("miss = %+v, want not found", miss)
	}
}

func TestCheckIgnoresInactive(t *testing.T) {
	svc := NewService(newMemStore())

	r, err := svc.Create(&CreateRequest{SourceURL: "/old", TargetURL: "/new"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	inactive := "inactive"
	if err := svc.Update(r.ID, &UpdateRequest{Status: &inactive}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	result, err := svc.Check("/old")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.Found {
		t.Error("inactive redirection matched")
	}
}

func TestImportCSV(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)

	input := strings.Join([]string{
		"source,target,type",
		"/a,/new-a,301",
		"/b,/new-b",
		"/only-one-column",
		"/c,/new-c,999",
		"",
	}, "\n")

	result, err := svc.ImportCSV(strings.NewReader(input), "proj-1")
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("imported = %d, want 2", result.Imported)
	}
	// One short row and one invalid type.
	if result.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", result.Skipped)
	}

	r, _ := store.GetRedirectionBySource("/b", true)
	if r == nil || r.RedirectType != "301" || r.ProjectID != "proj-1" {
		t.Errorf("imported row = %+v", r)
	}
}
