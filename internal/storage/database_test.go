package storage

import (
	"encoding/json"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	if err := db.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInsertAnalysisAndHistory(t *testing.T) {
	db := newTestDB(t)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := db.InsertAnalysis(&AnalysisRecord{
			URL:          "https://example.com",
			AnalysisType: "site",
			Score:        70 + i,
			Results:      json.RawMessage(`{"basic":{"title":"Example"}}`),
			AnalyzedAt:   base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("InsertAnalysis: %v", err)
		}
	}

	records, err := db.AnalysisHistory("site", "", 10)
	if err != nil {
		t.Fatalf("AnalysisHistory: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	// Most recent first.
	if records[0].Score != 72 || records[2].Score != 70 {
		t.Errorf("unexpected order: scores %d, %d, %d", records[0].Score, records[1].Score, records[2].Score)
	}

	var results map[string]map[string]any
	if err := json.Unmarshal(records[0].Results, &results); err != nil {
		t.Fatalf("results did not round-trip: %v", err)
	}
	if results["basic"]["title"] != "Example" {
		t.Errorf("got title %v, want Example", results["basic"]["title"])
	}
}

func TestAnalysisHistoryLimitAndType(t *testing.T) {
	db := newTestDB(t)

	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		if _, err := db.InsertAnalysis(&AnalysisRecord{
			URL: "https://example.com", AnalysisType: "site",
			Results: json.RawMessage(`{}`), AnalyzedAt: now,
		}); err != nil {
			t.Fatalf("InsertAnalysis: %v", err)
		}
	}
	if _, err := db.InsertAnalysis(&AnalysisRecord{
		URL: "https://rival.com", AnalysisType: "competitor",
		Results: json.RawMessage(`{}`), AnalyzedAt: now,
	}); err != nil {
		t.Fatalf("InsertAnalysis: %v", err)
	}

	records, err := db.AnalysisHistory("site", "", 2)
	if err != nil {
		t.Fatalf("AnalysisHistory: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("got %d records, want 2", len(records))
	}

	competitors, err := db.AnalysisHistory("competitor", "", 10)
	if err != nil {
		t.Fatalf("AnalysisHistory: %v", err)
	}
	if len(competitors) != 1 || competitors[0].URL != "https://rival.com" {
		t.Errorf("competitor history = %+v", competitors)
	}
}

func TestAnalysisHistoryProjectScope(t *testing.T) {
	db := newTestDB(t)

	now := time.Now().UTC()
	for _, proj := range []string{"alpha", "beta", ""} {
		if _, err := db.InsertAnalysis(&AnalysisRecord{
			ProjectID: proj, URL: "https://example.com", AnalysisType: "site",
			Results: json.RawMessage(`{}`), AnalyzedAt: now,
		}); err != nil {
			t.Fatalf("InsertAnalysis: %v", err)
		}
	}

	scoped, err := db.AnalysisHistory("site", "alpha", 10)
	if err != nil {
		t.Fatalf("AnalysisHistory: %v", err)
	}
	if len(scoped) != 1 || scoped[0].ProjectID != "alpha" {
		t.Errorf("scoped history = %+v", scoped)
	}

	all, err := db.AnalysisHistory("site", "", 10)
	if err != nil {
		t.Fatalf("AnalysisHistory: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d records, want 3", len(all))
	}
}

func TestRedirectionLifecycle(t *testing.T) {
	db := newTestDB(t)

	id, err := db.InsertRedirection(&Redirection{
		SourceURL: "/old-page", TargetURL: "https://example.com/new-page",
		RedirectType: "301", Status: "active",
	})
	if err != nil {
		t.Fatalf("InsertRedirection: %v", err)
	}

	r, err := db.GetRedirectionBySource("/old-page", true)
	if err != nil {
		t.Fatalf("GetRedirectionBySource: %v", err)
	}
	if r == nil || r.TargetURL != "https://example.com/new-page" {
		t.Fatalf("lookup = %+v", r)
	}
	if r.Hits != 0 || r.LastAccessed != nil {
		t.Errorf("fresh redirection has hits=%d last_accessed=%v", r.Hits, r.LastAccessed)
	}

	if err := db.TouchRedirection(id); err != nil {
		t.Fatalf("TouchRedirection: %v", err)
	}
	r, _ = db.GetRedirectionBySource("/old-page", true)
	if r.Hits != 1 || r.LastAccessed == nil {
		t.Errorf("after touch: hits=%d last_accessed=%v", r.Hits, r.LastAccessed)
	}

	if err := db.UpdateRedirection(id, map[string]any{"status": "inactive"}); err != nil {
		t.Fatalf("UpdateRedirection: %v", err)
	}
	if r, _ := db.GetRedirectionBySource("/old-page", true); r != nil {
		t.Errorf("inactive redirection still matched: %+v", r)
	}
	if r, _ := db.GetRedirectionBySource("/old-page", false); r == nil {
		t.Error("inactive redirection not found without activeOnly")
	}

	if err := db.DeleteRedirection(id); err != nil {
		t.Fatalf("DeleteRedirection: %v", err)
	}
	if r, _ := db.GetRedirectionBySource("/old-page", false); r != nil {
		t.Errorf("deleted redirection still present: %+v", r)
	}
}

func TestRedirectionDuplicateSource(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.InsertRedirection(&Redirection{
		SourceURL: "/dup", TargetURL: "/a", RedirectType: "301", Status: "active",
	}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := db.InsertRedirection(&Redirection{
		SourceURL: "/dup", TargetURL: "/b", RedirectType: "301", Status: "active",
	}); err == nil {
		t.Error("duplicate source_url insert succeeded, want UNIQUE violation")
	}
}

func TestUpdateRejectsUnknownFields(t *testing.T) {
	db := newTestDB(t)

	id, err := db.InsertRedirection(&Redirection{
		SourceURL: "/p", TargetURL: "/q", RedirectType: "301", Status: "active",
	})
	if err != nil {
		t.Fatalf("InsertRedirection: %v", err)
	}

	// Only whitelisted columns may change; an update consisting solely
	// of unknown keys is an error.
	if err := db.UpdateRedirection(id, map[string]any{"hits": 999}); err == nil {
		t.Error("update with only unknown fields succeeded")
	}
}

func TestNotFoundUpsert(t *testing.T) {
	db := newTestDB(t)

	entry := &NotFoundLog{URI: "/missing", Referer: "https://example.com/", UserAgent: "TestBot"}
	id1, err := db.UpsertNotFound(entry)
	if err != nil {
		t.Fatalf("UpsertNotFound: %v", err)
	}
	id2, err := db.UpsertNotFound(entry)
	if err != nil {
		t.Fatalf("UpsertNotFound repeat: %v", err)
	}
	if id1 != id2 {
		t.Errorf("repeat hit created new row: %d != %d", id1, id2)
	}

	logs, err := db.ListNotFound("", "hits", true, 10, 0)
	if err != nil {
		t.Fatalf("ListNotFound: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d logs, want 1", len(logs))
	}
	if logs[0].Hits != 2 {
		t.Errorf("hits = %d, want 2", logs[0].Hits)
	}

	total, err := db.CountNotFound("")
	if err != nil {
		t.Fatalf("CountNotFound: %v", err)
	}
	if total != 1 {
		t.Errorf("count = %d, want 1", total)
	}
}

func TestNotFoundClear(t *testing.T) {
	db := newTestDB(t)

	for _, uri := range []string{"/a", "/b", "/c"} {
		if _, err := db.UpsertNotFound(&NotFoundLog{URI: uri}); err != nil {
			t.Fatalf("UpsertNotFound: %v", err)
		}
	}

	if err := db.ClearNotFound(""); err != nil {
		t.Fatalf("ClearNotFound: %v", err)
	}
	total, _ := db.CountNotFound("")
	if total != 0 {
		t.Errorf("count after clear = %d, want 0", total)
	}
}

func TestSitemapEntries(t *testing.T) {
	db := newTestDB(t)

	id, err := db.InsertSitemapEntry(&SitemapEntry{
		Type: "general", URL: "https://example.com/", Priority: 1.0, ChangeFreq: "daily",
		LastModified: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("InsertSitemapEntry: %v", err)
	}
	if _, err := db.InsertSitemapEntry(&SitemapEntry{
		Type: "news", URL: "https://example.com/news/1", Priority: 0.5, ChangeFreq: "weekly",
	}); err != nil {
		t.Fatalf("InsertSitemapEntry: %v", err)
	}

	general, err := db.ListSitemapEntries("", "general")
	if err != nil {
		t.Fatalf("ListSitemapEntries: %v", err)
	}
	if len(general) != 1 || general[0].URL != "https://example.com/" {
		t.Fatalf("general entries = %+v", general)
	}
	if general[0].LastModified.IsZero() {
		t.Error("last_modified was not persisted")
	}

	all, err := db.ListSitemapEntries("", "")
	if err != nil {
		t.Fatalf("ListSitemapEntries: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d entries, want 2", len(all))
	}

	if err := db.DeleteSitemapEntry(id); err != nil {
		t.Fatalf("DeleteSitemapEntry: %v", err)
	}
	all, _ = db.ListSitemapEntries("", "")
	if len(all) != 1 {
		t.Errorf("got %d entries after delete, want 1", len(all))
	}
}

func TestLocationLifecycle(t *testing.T) {
	db := newTestDB(t)

	id, err := db.InsertLocation(&Location{
		Name: "Main Office", Address: "1 Market St", City: "San Francisco",
		Country: "US", Latitude: 37.7936, Longitude: -122.3930,
		BusinessHours: json.RawMessage(`{"monday":"9:00-17:00"}`),
	})
	if err != nil {
		t.Fatalf("InsertLocation: %v", err)
	}

	l, err := db.GetLocation(id)
	if err != nil {
		t.Fatalf("GetLocation: %v", err)
	}
	if l == nil || l.Name != "Main Office" || l.City != "San Francisco" {
		t.Fatalf("location = %+v", l)
	}
	if l.Latitude == 0 || l.Longitude == 0 {
		t.Errorf("coordinates not persisted: %f, %f", l.Latitude, l.Longitude)
	}

	var hours map[string]string
	if err := json.Unmarshal(l.BusinessHours, &hours); err != nil {
		t.Fatalf("business hours did not round-trip: %v", err)
	}
	if hours["monday"] != "9:00-17:00" {
		t.Errorf("monday hours = %q", hours["monday"])
	}

	if err := db.UpdateLocation(id, map[string]any{"phone": "+1-555-0100"}); err != nil {
		t.Fatalf("UpdateLocation: %v", err)
	}
	l, _ = db.GetLocation(id)
	if l.Phone != "+1-555-0100" {
		t.Errorf("phone = %q after update", l.Phone)
	}

	if err := db.DeleteLocation(id); err != nil {
		t.Fatalf("DeleteLocation: %v", err)
	}
	if l, _ := db.GetLocation(id); l != nil {
		t.Errorf("deleted location still present: %+v", l)
	}
}

func TestLocationZeroCoordinateRoundTrip(t *testing.T) {
	db := newTestDB(t)

	// A point on the equator has a legitimate zero latitude.
	id, err := db.InsertLocation(&Location{
		Name: "Equator Marker", City: "Quito", Country: "EC",
		Latitude: 0, Longitude: -78.4556,
	})
	if err != nil {
		t.Fatalf("InsertLocation: %v", err)
	}

	l, err := db.GetLocation(id)
	if err != nil {
		t.Fatalf("GetLocation: %v", err)
	}
	if l.Latitude != 0 || l.Longitude != -78.4556 {
		t.Errorf("coordinates = %f, %f, want 0, -78.4556", l.Latitude, l.Longitude)
	}

	// Only the all-zero pair means "no coordinates".
	id, err = db.InsertLocation(&Location{Name: "No Coordinates"})
	if err != nil {
		t.Fatalf("InsertLocation: %v", err)
	}
	l, _ = db.GetLocation(id)
	if l.Latitude != 0 || l.Longitude != 0 {
		t.Errorf("coordinates = %f, %f, want 0, 0", l.Latitude, l.Longitude)
	}
}

func TestImageRecords(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.InsertImage(&ImageRecord{
		ImageURL: "https://example.com/a.png", AltText: "Chart of results",
		FileSize: 12000, Dimensions: "800x600", Optimized: true,
	}); err != nil {
		t.Fatalf("InsertImage: %v", err)
	}
	if _, err := db.InsertImage(&ImageRecord{
		ImageURL: "https://example.com/b.jpg", FileSize: 450000, Optimized: false,
	}); err != nil {
		t.Fatalf("InsertImage: %v", err)
	}

	unoptimized := false
	images, err := db.ListImages("", &unoptimized)
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	if len(images) != 1 || images[0].ImageURL != "https://example.com/b.jpg" {
		t.Fatalf("unoptimized images = %+v", images)
	}

	all, err := db.ListImages("", nil)
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d images, want 2", len(all))
	}
}

func TestContentHistory(t *testing.T) {
	db := newTestDB(t)

	for i, keyword := range []string{"go seo", "page speed"} {
		if _, err := db.InsertContent(&ContentRecord{
			Keyword: keyword, ContentType: "title",
			GeneratedContent: "Generated text", CreditsUsed: i + 1,
		}); err != nil {
			t.Fatalf("InsertContent: %v", err)
		}
	}

	records, err := db.ContentHistory("", 10)
	if err != nil {
		t.Fatalf("ContentHistory: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
}
