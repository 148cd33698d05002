// Package storage provides data persistence for the SEO toolkit.
package storage

import (
	"encoding/json"
	"time"
)

// AnalysisRecord is one persisted outcome of the analysis pipeline.
// Records are append-only: every analyze call inserts a new row, even
// for a URL analyzed before.
type AnalysisRecord struct {
	ID           int64           `json:"id"`
	ProjectID    string          `json:"project_id,omitempty"`
	URL          string          `json:"url"`
	AnalysisType string          `json:"analysis_type"` // site, competitor
	Score        int             `json:"score"`
	Results      json.RawMessage `json:"results"`
	AnalyzedAt   time.Time       `json:"analyzed_at"`
}

// Redirection maps a source URL to a target URL.
type Redirection struct {
	ID           int64      `json:"id"`
	ProjectID    string     `json:"project_id,omitempty"`
	SourceURL    string     `json:"source_url"`
	TargetURL    string     `json:"target_url"`
	RedirectType string     `json:"redirect_type"` // 301, 302, 307, 410
	Status       string     `json:"status"`        // active, inactive
	Hits         int64      `json:"hits"`
	LastAccessed *time.Time `json:"last_accessed,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NotFoundLog is one tracked 404 URI, deduplicated per project.
type NotFoundLog struct {
	ID           int64     `json:"id"`
	ProjectID    string    `json:"project_id,omitempty"`
	URI          string    `json:"uri"`
	Referer      string    `json:"referer,omitempty"`
	UserAgent    string    `json:"user_agent,omitempty"`
	IPAddress    string    `json:"ip_address,omitempty"`
	Hits         int64     `json:"hits"`
	LastAccessed time.Time `json:"last_accessed"`
	CreatedAt    time.Time `json:"created_at"`
}

// SitemapEntry is one URL in a generated sitemap.
type SitemapEntry struct {
	ID           int64     `json:"id"`
	ProjectID    string    `json:"project_id,omitempty"`
	Type         string    `json:"type"` // general, news, video, image
	URL          string    `json:"url"`
	Priority     float64   `json:"priority"`
	ChangeFreq   string    `json:"changefreq"`
	LastModified time.Time `json:"last_modified"`
	CreatedAt    time.Time `json:"created_at"`
}

// Location is one local business location.
type Location struct {
	ID            int64           `json:"id"`
	ProjectID     string          `json:"project_id,omitempty"`
	Name          string          `json:"name"`
	Address       string          `json:"address,omitempty"`
	City          string          `json:"city,omitempty"`
	State         string          `json:"state,omitempty"`
	Country       string          `json:"country,omitempty"`
	PostalCode    string          `json:"postal_code,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Email         string          `json:"email,omitempty"`
	Website       string          `json:"website,omitempty"`
	Latitude      float64         `json:"latitude,omitempty"`
	Longitude     float64         `json:"longitude,omitempty"`
	BusinessHours json.RawMessage `json:"business_hours,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`

	// Distance in km, populated by nearby searches only
	Distance float64 `json:"distance,omitempty"`
}

// ImageRecord is one inventoried image with its SEO attributes.
type ImageRecord struct {
	ID          int64     `json:"id"`
	ProjectID   string    `json:"project_id,omitempty"`
	ImageURL    string    `json:"image_url"`
	AltText     string    `json:"alt_text,omitempty"`
	Title       string    `json:"title,omitempty"`
	Caption     string    `json:"caption,omitempty"`
	Description string    `json:"description,omitempty"`
	FileSize    int64     `json:"file_size,omitempty"`
	Dimensions  string    `json:"dimensions,omitempty"` // "WxH"
	Optimized   bool      `json:"optimized"`
	CreatedAt   time.Time `json:"created_at"`
}

// ContentRecord is one generated content entry.
type ContentRecord struct {
	ID               int64     `json:"id"`
	ProjectID        string    `json:"project_id,omitempty"`
	Keyword          string    `json:"keyword"`
	ContentType      string    `json:"content_type"`
	Prompt           string    `json:"prompt,omitempty"`
	GeneratedContent string    `json:"generated_content"`
	CreditsUsed      int       `json:"credits_used"`
	CreatedAt        time.Time `json:"created_at"`
}
