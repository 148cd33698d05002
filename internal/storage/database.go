package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Database handles all database operations.
type Database struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewDatabase creates a new database connection.
func NewDatabase(path string) (*Database, error) {
	// SQLite connection with optimizations
	dsn := fmt.Sprintf("%s?_journal=WAL&_synchronous=NORMAL&_busy_timeout=5000", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	return &Database{db: db}, nil
}

// Initialize creates tables and indexes.
func (d *Database) Initialize() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// --- Analysis Operations ---

// InsertAnalysis appends one analysis record and returns its ID.
func (d *Database) InsertAnalysis(rec *AnalysisRecord) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	result, err := d.db.Exec(`
		INSERT INTO seo_analysis (project_id, url, analysis_type, score, results, analyzed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, nullString(rec.ProjectID), rec.URL, rec.AnalysisType, rec.Score, string(rec.Results), rec.AnalyzedAt)

	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// AnalysisHistory retrieves analyses of one type, most recent first.
// An empty projectID matches all projects.
func (d *Database) AnalysisHistory(analysisType, projectID string, limit int) ([]*AnalysisRecord, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	query := `
		SELECT id, project_id, url, analysis_type, score, results, analyzed_at
		FROM seo_analysis
		WHERE analysis_type = ?`
	args := []any{analysisType}

	if projectID != "" {
		query += " AND project_id = ?"
		args = append(args, projectID)
	}

	query += " ORDER BY analyzed_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*AnalysisRecord
	for rows.Next() {
		var rec AnalysisRecord
		var projID sql.NullString
		var results string
		if err := rows.Scan(&rec.ID, &projID, &rec.URL, &rec.AnalysisType, &rec.Score, &results, &rec.AnalyzedAt); err != nil {
			return nil, err
		}
		rec.ProjectID = projID.String
		rec.Results = []byte(results)
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// --- Redirection Operations ---

// InsertRedirection inserts a redirection and returns its ID.
func (d *Database) InsertRedirection(r *Redirection) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	result, err := d.db.Exec(`
		INSERT INTO redirections (project_id, source_url, target_url, redirect_type, status)
		VALUES (?, ?, ?, ?, ?)
	`, nullString(r.ProjectID), r.SourceURL, r.TargetURL, r.RedirectType, r.Status)

	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetRedirectionBySource returns the redirection for a source URL, or
// nil when none exists. When activeOnly is set, inactive rows are
// ignored.
func (d *Database) GetRedirectionBySource(sourceURL string, activeOnly bool) (*Redirection, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	query := `
		SELECT id, project_id, source_url, target_url, redirect_type, status, hits, last_accessed, created_at
		FROM redirections WHERE source_url = ?`
	if activeOnly {
		query += " AND status = 'active'"
	}

	row := d.db.QueryRow(query, sourceURL)
	return scanRedirection(row)
}

// ListRedirections returns redirections filtered by status and
// optional project, newest first.
func (d *Database) ListRedirections(status, projectID string) ([]*Redirection, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	query := `
		SELECT id, project_id, source_url, target_url, redirect_type, status, hits, last_accessed, created_at
		FROM redirections WHERE status = ?`
	args := []any{status}

	if projectID != "" {
		query += " AND project_id = ?"
		args = append(args, projectID)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var redirections []*Redirection
	for rows.Next() {
		r, err := scanRedirection(rows)
		if err != nil {
			return nil, err
		}
		redirections = append(redirections, r)
	}
	return redirections, rows.Err()
}

// redirectionFields whitelists the columns a partial update may set.
var redirectionFields = []string{"source_url", "target_url", "redirect_type", "status"}

// UpdateRedirection applies a partial update from the given fields.
func (d *Database) UpdateRedirection(id int64, fields map[string]any) error {
	return d.partialUpdate("redirections", id, redirectionFields, fields)
}

// DeleteRedirection removes a redirection.
func (d *Database) DeleteRedirection(id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.db.Exec(`DELETE FROM redirections WHERE id = ?`, id)
	return err
}

// TouchRedirection records one hit against a redirection.
func (d *Database) TouchRedirection(id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.db.Exec(`
		UPDATE redirections SET hits = hits + 1, last_accessed = CURRENT_TIMESTAMP WHERE id = ?
	`, id)
	return err
}

// --- 404 Monitor Operations ---

// notFoundOrderColumns whitelists sortable 404 log columns.
var notFoundOrderColumns = map[string]bool{
	"last_accessed": true,
	"created_at":    true,
	"hits":          true,
	"uri":           true,
}

// ListNotFound returns one page of 404 logs.
func (d *Database) ListNotFound(projectID, orderBy string, descending bool, limit, offset int) ([]*NotFoundLog, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !notFoundOrderColumns[orderBy] {
		orderBy = "last_accessed"
	}
	direction := "ASC"
	if descending {
		direction = "DESC"
	}

	query := `
		SELECT id, project_id, uri, referer, user_agent, ip_address, hits, last_accessed, created_at
		FROM monitor_404`
	args := []any{}
	if projectID != "" {
		query += " WHERE project_id = ?"
		args = append(args, projectID)
	}
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT ? OFFSET ?", orderBy, direction)
	args = append(args, limit, offset)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*NotFoundLog
	for rows.Next() {
		var l NotFoundLog
		var projID, referer, userAgent, ipAddress sql.NullString
		if err := rows.Scan(&l.ID, &projID, &l.URI, &referer, &userAgent, &ipAddress, &l.Hits, &l.LastAccessed, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.ProjectID = projID.String
		l.Referer = referer.String
		l.UserAgent = userAgent.String
		l.IPAddress = ipAddress.String
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}

// CountNotFound returns the total number of 404 logs.
func (d *Database) CountNotFound(projectID string) (int64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	query := `SELECT COUNT(*) FROM monitor_404`
	args := []any{}
	if projectID != "" {
		query += " WHERE project_id = ?"
		args = append(args, projectID)
	}

	var total int64
	err := d.db.QueryRow(query, args...).Scan(&total)
	return total, err
}

// UpsertNotFound records a 404 hit: an existing (uri, project) row gets
// its hit count bumped, otherwise a new row is inserted. Returns the
// row ID either way.
func (d *Database) UpsertNotFound(l *NotFoundLog) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var id int64
	err := d.db.QueryRow(`
		SELECT id FROM monitor_404 WHERE uri = ? AND project_id IS ?
	`, l.URI, nullString(l.ProjectID)).Scan(&id)

	switch {
	case err == sql.ErrNoRows:
		result, err := d.db.Exec(`
			INSERT INTO monitor_404 (project_id, uri, referer, user_agent, ip_address, hits, last_accessed)
			VALUES (?, ?, ?, ?, ?, 1, CURRENT_TIMESTAMP)
		`, nullString(l.ProjectID), l.URI, nullString(l.Referer), nullString(l.UserAgent), nullString(l.IPAddress))
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()

	case err != nil:
		return 0, err
	}

	_, err = d.db.Exec(`
		UPDATE monitor_404 SET hits = hits + 1, last_accessed = CURRENT_TIMESTAMP WHERE id = ?
	`, id)
	return id, err
}

// DeleteNotFound removes one 404 log.
func (d *Database) DeleteNotFound(id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.db.Exec(`DELETE FROM monitor_404 WHERE id = ?`, id)
	return err
}

// ClearNotFound removes all 404 logs, optionally scoped to a project.
func (d *Database) ClearNotFound(projectID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if projectID != "" {
		_, err := d.db.Exec(`DELETE FROM monitor_404 WHERE project_id = ?`, projectID)
		return err
	}
	_, err := d.db.Exec(`DELETE FROM monitor_404`)
	return err
}

// --- Sitemap Operations ---

// InsertSitemapEntry inserts a sitemap entry and returns its ID.
func (d *Database) InsertSitemapEntry(e *SitemapEntry) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var lastModified any
	if !e.LastModified.IsZero() {
		lastModified = e.LastModified
	}

	result, err := d.db.Exec(`
		INSERT INTO sitemaps (project_id, type, url, priority, changefreq, last_modified)
		VALUES (?, ?, ?, ?, ?, ?)
	`, nullString(e.ProjectID), e.Type, e.URL, e.Priority, e.ChangeFreq, lastModified)

	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListSitemapEntries returns entries filtered by optional project and
// type, newest first.
func (d *Database) ListSitemapEntries(projectID, entryType string) ([]*SitemapEntry, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	query := `
		SELECT id, project_id, type, url, priority, changefreq, last_modified, created_at
		FROM sitemaps WHERE 1=1`
	args := []any{}

	if projectID != "" {
		query += " AND project_id = ?"
		args = append(args, projectID)
	}
	if entryType != "" {
		query += " AND type = ?"
		args = append(args, entryType)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*SitemapEntry
	for rows.Next() {
		var e SitemapEntry
		var projID sql.NullString
		var lastModified sql.NullTime
		if err := rows.Scan(&e.ID, &projID, &e.Type, &e.URL, &e.Priority, &e.ChangeFreq, &lastModified, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.ProjectID = projID.String
		e.LastModified = lastModified.Time
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// DeleteSitemapEntry removes a sitemap entry.
func (d *Database) DeleteSitemapEntry(id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.db.Exec(`DELETE FROM sitemaps WHERE id = ?`, id)
	return err
}

// --- Location Operations ---

// InsertLocation inserts a location and returns its ID.
func (d *Database) InsertLocation(l *Location) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var hours any
	if len(l.BusinessHours) > 0 {
		hours = string(l.BusinessHours)
	}

	// A coordinate pair is absent only when both values are zero; a
	// single zero is a real point on the equator or prime meridian.
	var lat, lng any
	if l.Latitude != 0 || l.Longitude != 0 {
		lat, lng = l.Latitude, l.Longitude
	}

	result, err := d.db.Exec(`
		INSERT INTO local_locations (project_id, name, address, city, state, country, postal_code,
			phone, email, website, latitude, longitude, business_hours)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, nullString(l.ProjectID), l.Name, nullString(l.Address), nullString(l.City), nullString(l.State),
		nullString(l.Country), nullString(l.PostalCode), nullString(l.Phone), nullString(l.Email),
		nullString(l.Website), lat, lng, hours)

	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetLocation retrieves one location, or nil when it does not exist.
func (d *Database) GetLocation(id int64) (*Location, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	row := d.db.QueryRow(`
		SELECT id, project_id, name, address, city, state, country, postal_code,
			phone, email, website, latitude, longitude, business_hours, created_at
		FROM local_locations WHERE id = ?
	`, id)

	l, err := scanLocation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return l, err
}

// ListLocations returns locations, optionally scoped to a project,
// newest first.
func (d *Database) ListLocations(projectID string) ([]*Location, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	query := `
		SELECT id, project_id, name, address, city, state, country, postal_code,
			phone, email, website, latitude, longitude, business_hours, created_at
		FROM local_locations`
	args := []any{}
	if projectID != "" {
		query += " WHERE project_id = ?"
		args = append(args, projectID)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []*Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// locationFields whitelists the columns a partial update may set.
var locationFields = []string{
	"name", "address", "city", "state", "country", "postal_code",
	"phone", "email", "website", "latitude", "longitude", "business_hours",
}

// UpdateLocation applies a partial update from the given fields.
func (d *Database) UpdateLocation(id int64, fields map[string]any) error {
	return d.partialUpdate("local_locations", id, locationFields, fields)
}

// DeleteLocation removes a location.
func (d *Database) DeleteLocation(id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.db.Exec(`DELETE FROM local_locations WHERE id = ?`, id)
	return err
}

// --- Image Operations ---

// InsertImage inserts an image record and returns its ID.
func (d *Database) InsertImage(img *ImageRecord) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	result, err := d.db.Exec(`
		INSERT INTO image_seo (project_id, image_url, alt_text, title, caption, description,
			file_size, dimensions, optimized)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, nullString(img.ProjectID), img.ImageURL, img.AltText, img.Title, img.Caption,
		img.Description, img.FileSize, img.Dimensions, boolToInt(img.Optimized))

	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListImages returns image records, optionally filtered by project and
// optimization state, newest first.
func (d *Database) ListImages(projectID string, optimized *bool) ([]*ImageRecord, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	query := `
		SELECT id, project_id, image_url, alt_text, title, caption, description,
			file_size, dimensions, optimized, created_at
		FROM image_seo WHERE 1=1`
	args := []any{}

	if projectID != "" {
		query += " AND project_id = ?"
		args = append(args, projectID)
	}
	if optimized != nil {
		query += " AND optimized = ?"
		args = append(args, boolToInt(*optimized))
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []*ImageRecord
	for rows.Next() {
		var img ImageRecord
		var projID, altText, title, caption, description, dimensions sql.NullString
		var fileSize sql.NullInt64
		var optimizedInt int
		if err := rows.Scan(&img.ID, &projID, &img.ImageURL, &altText, &title, &caption,
			&description, &fileSize, &dimensions, &optimizedInt, &img.CreatedAt); err != nil {
			return nil, err
		}
		img.ProjectID = projID.String
		img.AltText = altText.String
		img.Title = title.String
		img.Caption = caption.String
		img.Description = description.String
		img.FileSize = fileSize.Int64
		img.Dimensions = dimensions.String
		img.Optimized = optimizedInt != 0
		images = append(images, &img)
	}
	return images, rows.Err()
}

// imageFields whitelists the columns a partial update may set.
var imageFields = []string{"alt_text", "title", "caption", "description", "optimized"}

// UpdateImage applies a partial update from the given fields.
func (d *Database) UpdateImage(id int64, fields map[string]any) error {
	return d.partialUpdate("image_seo", id, imageFields, fields)
}

// --- Content Operations ---

// InsertContent inserts a generated content record and returns its ID.
func (d *Database) InsertContent(c *ContentRecord) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	result, err := d.db.Exec(`
		INSERT INTO content_ai (project_id, keyword, content_type, prompt, generated_content, credits_used)
		VALUES (?, ?, ?, ?, ?, ?)
	`, nullString(c.ProjectID), c.Keyword, c.ContentType, nullString(c.Prompt), c.GeneratedContent, c.CreditsUsed)

	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ContentHistory returns generated content, newest first.
func (d *Database) ContentHistory(projectID string, limit int) ([]*ContentRecord, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	query := `
		SELECT id, project_id, keyword, content_type, prompt, generated_content, credits_used, created_at
		FROM content_ai`
	args := []any{}
	if projectID != "" {
		query += " WHERE project_id = ?"
		args = append(args, projectID)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*ContentRecord
	for rows.Next() {
		var c ContentRecord
		var projID, prompt sql.NullString
		if err := rows.Scan(&c.ID, &projID, &c.Keyword, &c.ContentType, &prompt, &c.GeneratedContent, &c.CreditsUsed, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.ProjectID = projID.String
		c.Prompt = prompt.String
		records = append(records, &c)
	}
	return records, rows.Err()
}

// --- Helpers ---

// partialUpdate builds an UPDATE statement from whitelisted fields.
func (d *Database) partialUpdate(table string, id int64, allowed []string, fields map[string]any) error {
	var sets []string
	var args []any
	for _, col := range allowed {
		if v, ok := fields[col]; ok {
			sets = append(sets, col+" = ?")
			args = append(args, v)
		}
	}
	if len(sets) == 0 {
		return fmt.Errorf("no data to update")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", "))
	_, err := d.db.Exec(query, args...)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRedirection(row rowScanner) (*Redirection, error) {
	var r Redirection
	var projID sql.NullString
	var lastAccessed sql.NullTime
	err := row.Scan(&r.ID, &projID, &r.SourceURL, &r.TargetURL, &r.RedirectType, &r.Status,
		&r.Hits, &lastAccessed, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.ProjectID = projID.String
	if lastAccessed.Valid {
		r.LastAccessed = &lastAccessed.Time
	}
	return &r, nil
}

func scanLocation(row rowScanner) (*Location, error) {
	var l Location
	var projID, address, city, state, country, postalCode, phone, email, website, hours sql.NullString
	var lat, lng sql.NullFloat64
	err := row.Scan(&l.ID, &projID, &l.Name, &address, &city, &state, &country, &postalCode,
		&phone, &email, &website, &lat, &lng, &hours, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	l.ProjectID = projID.String
	l.Address = address.String
	l.City = city.String
	l.State = state.String
	l.Country = country.String
	l.PostalCode = postalCode.String
	l.Phone = phone.String
	l.Email = email.String
	l.Website = website.String
	l.Latitude = lat.Float64
	l.Longitude = lng.Float64
	if hours.Valid {
		l.BusinessHours = []byte(hours.String)
	}
	return &l, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
