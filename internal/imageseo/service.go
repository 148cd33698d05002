// Package imageseo analyzes images for SEO problems.
package imageseo

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"path"
	"regexp"
	"strings"

	_ "golang.org/x/image/webp"

	"github.com/seoforge/seoforge/internal/document"
	"github.com/seoforge/seoforge/internal/fetcher"
	"github.com/seoforge/seoforge/internal/platform/errs"
	"github.com/seoforge/seoforge/internal/storage"
)

// Store is the persistence surface the service needs.
type Store interface {
	InsertImage(img *storage.ImageRecord) (int64, error)
	ListImages(projectID string, optimized *bool) ([]*storage.ImageRecord, error)
	UpdateImage(id int64, fields map[string]any) error
}

// Fetcher fetches image bytes and pages.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) *fetcher.Response
}

// ImageAnalysis is the outcome of analyzing one image URL.
type ImageAnalysis struct {
	ImageURL        string   `json:"image_url"`
	AltText         string   `json:"alt_text,omitempty"`
	Format          string   `json:"format,omitempty"`
	Width           int      `json:"width,omitempty"`
	Height          int      `json:"height,omitempty"`
	FileSize        int64    `json:"file_size"`
	Optimized       bool     `json:"optimized"`
	Recommendations []string `json:"recommendations"`
}

// PageImagesResult is the outcome of a bulk page analysis.
type PageImagesResult struct {
	PageURL string           `json:"page_url"`
	Total   int              `json:"total"`
	Images  []*ImageAnalysis `json:"images"`
}

// maxOptimizedBytes is the size above which an image is flagged as too
// heavy for the web.
const maxOptimizedBytes = 200_000

// seoFilename matches lowercase hyphenated names like "red-running-shoes".
var seoFilename = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Service analyzes and inventories images.
type Service struct {
	fetcher Fetcher
	store   Store
}

// NewService creates an image SEO service.
func NewService(f Fetcher, store Store) *Service {
	return &Service{fetcher: f, store: store}
}

// AnalyzeImage fetches one image and reports its format, dimensions,
// and recommendations. altText is the alt attribute the page gives the
// image, empty if unknown.
func (s *Service) AnalyzeImage(ctx context.Context, imageURL, altText string) (*ImageAnalysis, error) {
	if strings.TrimSpace(imageURL) == "" {
		return nil, errs.Invalid("Image URL is required")
	}
	u, err := url.Parse(imageURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, errs.Invalid("Invalid URL format")
	}

	resp := s.fetcher.Fetch(ctx, imageURL)
	if !resp.Succeeded || resp.StatusCode >= 400 {
		return nil, &errs.AppError{Kind: errs.Unreachable, Message: "Failed to fetch image"}
	}

	analysis := &ImageAnalysis{
		ImageURL: imageURL,
		AltText:  altText,
		FileSize: int64(len(resp.Body)),
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(resp.Body))
	if err == nil {
		analysis.Format = format
		analysis.Width = cfg.Width
		analysis.Height = cfg.Height
	}

	analysis.Recommendations = recommend(u, analysis, err != nil)
	analysis.Optimized = altText != "" && analysis.FileSize < maxOptimizedBytes && err == nil
	return analysis, nil
}

// AnalyzeAndStore analyzes one image and records it in the inventory.
func (s *Service) AnalyzeAndStore(ctx context.Context, projectID, imageURL, altText string) (*ImageAnalysis, error) {
	analysis, err := s.AnalyzeImage(ctx, imageURL, altText)
	if err != nil {
		return nil, err
	}

	rec := &storage.ImageRecord{
		ProjectID: projectID,
		ImageURL:  imageURL,
		AltText:   altText,
		FileSize:  analysis.FileSize,
		Optimized: analysis.Optimized,
	}
	if analysis.Width > 0 {
		rec.Dimensions = fmt.Sprintf("%dx%d", analysis.Width, analysis.Height)
	}
	if _, err := s.store.InsertImage(rec); err != nil {
		return nil, &errs.AppError{Kind: errs.Storage, Message: "failed to store image record", Cause: err}
	}
	return analysis, nil
}

// AnalyzePage fetches a page and analyzes every image it references.
// Images that cannot be fetched are reported with a recommendation
// instead of failing the whole run.
func (s *Service) AnalyzePage(ctx context.Context, pageURL string) (*PageImagesResult, error) {
	if strings.TrimSpace(pageURL) == "" {
		return nil, errs.Invalid("URL is required")
	}
	base, err := url.Parse(pageURL)
	if err != nil || !base.IsAbs() || base.Host == "" {
		return nil, errs.Invalid("Invalid URL format")
	}

	resp := s.fetcher.Fetch(ctx, pageURL)
	if !resp.Succeeded {
		return nil, &errs.AppError{Kind: errs.Unreachable, Message: "Failed to fetch URL"}
	}

	doc := document.Parse(string(resp.Body))
	result := &PageImagesResult{PageURL: pageURL}

	seen := map[string]bool{}
	for _, img := range doc.Images() {
		src := resolveImageURL(base, img.Src)
		if src == "" || seen[src] {
			continue
		}
		seen[src] = true
		result.Total++

		analysis, err := s.AnalyzeImage(ctx, src, img.Alt)
		if err != nil {
			analysis = &ImageAnalysis{
				ImageURL:        src,
				AltText:         img.Alt,
				Recommendations: []string{"Image could not be fetched"},
			}
		}
		result.Images = append(result.Images, analysis)
	}
	return result, nil
}

// List returns inventoried images, optionally filtered by optimization
// state.
func (s *Service) List(projectID string, optimized *bool) ([]*storage.ImageRecord, error) {
	images, err := s.store.ListImages(projectID, optimized)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Storage, Message: "failed to list images", Cause: err}
	}
	return images, nil
}

// UpdateMetadata applies a partial metadata update to one image.
func (s *Service) UpdateMetadata(id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return errs.Invalid("No fields to update")
	}
	if err := s.store.UpdateImage(id, fields); err != nil {
		return &errs.AppError{Kind: errs.Storage, Message: "failed to update image", Cause: err}
	}
	return nil
}

func recommend(u *url.URL, a *ImageAnalysis, undecodable bool) []string {
	recs := []string{}

	if a.AltText == "" {
		recs = append(recs, "Add descriptive alt text")
	}
	if a.FileSize >= maxOptimizedBytes {
		recs = append(recs, fmt.Sprintf("Compress the image: %d KB exceeds the %d KB budget", a.FileSize/1000, maxOptimizedBytes/1000))
	}
	if undecodable {
		recs = append(recs, "Unrecognized image format")
	} else {
		if a.Format == "png" && a.FileSize >= maxOptimizedBytes/2 {
			recs = append(recs, "Convert large PNG to WebP or JPEG")
		}
		if a.Width > 2500 || a.Height > 2500 {
			recs = append(recs, fmt.Sprintf("Resize: %dx%d is larger than any common display", a.Width, a.Height))
		}
	}

	name := path.Base(u.Path)
	if ext := path.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	if name != "" && name != "/" && !seoFilename.MatchString(name) {
		recs = append(recs, "Use a descriptive, hyphenated, lowercase filename")
	}
	return recs
}

func resolveImageURL(base *url.URL, src string) string {
	src = strings.TrimSpace(src)
	if src == "" || strings.HasPrefix(src, "data:") {
		return ""
	}
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}
