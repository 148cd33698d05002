// Package contentai generates SEO copy from templates. There is no
// model behind it: output is deterministic given keyword, type, and
// tone, which keeps it predictable and free.
package contentai

import (
	"fmt"
	"strings"

	"github.com/seoforge/seoforge/internal/platform/errs"
	"github.com/seoforge/seoforge/internal/storage"
)

// Store is the persistence surface the service needs.
type Store interface {
	InsertContent(c *storage.ContentRecord) (int64, error)
	ContentHistory(projectID string, limit int) ([]*storage.ContentRecord, error)
}

// GenerateRequest carries one generation call.
type GenerateRequest struct {
	ProjectID   string `json:"project_id,omitempty"`
	Keyword     string `json:"keyword"`
	ContentType string `json:"content_type"`
	Tone        string `json:"tone,omitempty"`
}

// GenerateResult is one produced piece of content.
type GenerateResult struct {
	ID          int64  `json:"id"`
	Keyword     string `json:"keyword"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
	CreditsUsed int    `json:"credits_used"`
}

// RewriteRequest asks for an existing text restyled.
type RewriteRequest struct {
	Text  string `json:"text"`
	Style string `json:"style"`
}

// contentTypes maps each supported type to its credit cost.
var contentTypes = map[string]int{
	"title":            1,
	"meta_description": 1,
	"heading":          1,
	"paragraph":        3,
	"outline":          2,
}

var validTones = map[string]bool{
	"professional": true, "casual": true, "persuasive": true,
}

var rewriteStyles = map[string]bool{
	"shorter": true, "formal": true, "friendly": true,
}

// Service generates templated content.
type Service struct {
	store Store
}

// NewService creates a content service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Generate produces content for a keyword and records it.
func (s *Service) Generate(req *GenerateRequest) (*GenerateResult, error) {
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		return nil, errs.Invalid("Keyword is required")
	}
	credits, ok := contentTypes[req.ContentType]
	if !ok {
		return nil, errs.Invalid("Invalid content type")
	}
	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}
	if !validTones[tone] {
		return nil, errs.Invalid("Invalid tone")
	}

	content := render(keyword, req.ContentType, tone)

	result := &GenerateResult{
		Keyword:     keyword,
		ContentType: req.ContentType,
		Content:     content,
		CreditsUsed: credits,
	}

	id, err := s.store.InsertContent(&storage.ContentRecord{
		ProjectID:        req.ProjectID,
		Keyword:          keyword,
		ContentType:      req.ContentType,
		Prompt:           fmt.Sprintf("%s/%s", req.ContentType, tone),
		GeneratedContent: content,
		CreditsUsed:      credits,
	})
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Storage, Message: "failed to store generated content", Cause: err}
	}
	result.ID = id
	return result, nil
}

// Suggestions returns related phrasing ideas for a keyword.
func (s *Service) Suggestions(keyword string) ([]string, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errs.Invalid("Keyword is required")
	}
	return []string{
		fmt.Sprintf("best %s", keyword),
		fmt.Sprintf("%s guide", keyword),
		fmt.Sprintf("how to choose %s", keyword),
		fmt.Sprintf("%s for beginners", keyword),
		fmt.Sprintf("%s vs alternatives", keyword),
		fmt.Sprintf("%s tips and tricks", keyword),
	}, nil
}

// Rewrite restyles a text.
func (s *Service) Rewrite(req *RewriteRequest) (string, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return "", errs.Invalid("Text is required")
	}
	if !rewriteStyles[req.Style] {
		return "", errs.Invalid("Invalid rewrite style")
	}

	switch req.Style {
	case "shorter":
		sentences := strings.SplitAfter(text, ". ")
		if len(sentences) > 2 {
			sentences = sentences[:2]
		}
		return strings.TrimSpace(strings.Join(sentences, "")), nil
	case "formal":
		r := strings.NewReplacer(
			"don't", "do not", "can't", "cannot", "won't", "will not",
			"it's", "it is", "you're", "you are",
		)
		return r.Replace(text), nil
	default: // friendly
		return text + " Hope that helps!", nil
	}
}

// History returns past generations, newest first.
func (s *Service) History(projectID string, limit int) ([]*storage.ContentRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	records, err := s.store.ContentHistory(projectID, limit)
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Storage, Message: "failed to load content history", Cause: err}
	}
	return records, nil
}

func render(keyword, contentType, tone string) string {
	titled := titleCase(keyword)

	switch contentType {
	case "title":
		switch tone {
		case "casual":
			return fmt.Sprintf("%s: Everything You Actually Need to Know", titled)
		case "persuasive":
			return fmt.Sprintf("Why %s Matters More Than You Think", titled)
		}
		return fmt.Sprintf("%s: A Complete Guide", titled)

	case "meta_description":
		switch tone {
		case "casual":
			return fmt.Sprintf("Curious about %s? We break it down in plain language, with practical tips you can use today.", keyword)
		case "persuasive":
			return fmt.Sprintf("Stop guessing about %s. Learn the proven approaches experts rely on and get results faster.", keyword)
		}
		return fmt.Sprintf("Learn about %s with this comprehensive guide covering key concepts, best practices, and common pitfalls.", keyword)

	case "heading":
		switch tone {
		case "casual":
			return fmt.Sprintf("Getting Started with %s", titled)
		case "persuasive":
			return fmt.Sprintf("The Case for %s", titled)
		}
		return fmt.Sprintf("Understanding %s", titled)

	case "outline":
		return strings.Join([]string{
			fmt.Sprintf("1. What is %s?", titled),
			fmt.Sprintf("2. Why %s matters", keyword),
			fmt.Sprintf("3. Getting started with %s", keyword),
			"4. Common mistakes to avoid",
			"5. Advanced techniques",
			"6. Conclusion and next steps",
		}, "\n")

	default: // paragraph
		var opener string
		switch tone {
		case "casual":
			opener = fmt.Sprintf("Let's talk about %s.", keyword)
		case "persuasive":
			opener = fmt.Sprintf("If you are not paying attention to %s yet, you are leaving results on the table.", keyword)
		default:
			opener = fmt.Sprintf("%s plays an important role in any serious strategy.", titled)
		}
		return fmt.Sprintf("%s Understanding the fundamentals helps you make better decisions and avoid the mistakes that slow most teams down. Start small, measure what changes, and iterate: consistent attention to %s compounds over time.", opener, keyword)
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
