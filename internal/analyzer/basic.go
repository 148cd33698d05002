package analyzer

import (
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// BasicExtractor reports the page title and raw content metrics.
type BasicExtractor struct{}

func NewBasicExtractor() *BasicExtractor {
	return &BasicExtractor{}
}

func (e *BasicExtractor) Name() string {
	return "basic"
}

func (e *BasicExtractor) Extract(ctx *Context) Result {
	if !ctx.Fetched {
		return errorResult()
	}

	title := ctx.Doc.Title()
	// Length in characters, not bytes
	titleLength := utf8.RuneCountInString(title)

	return Result{
		"title":         title,
		"title_length":  titleLength,
		"title_optimal": titleLength >= Thresholds.TitleMinLength && titleLength <= Thresholds.TitleMaxLength,
		"html_size":     len(ctx.RawHTML),
		"word_count":    countWords(ctx.RawHTML),
	}
}

// countWords counts whitespace-separated words in the page text with
// tags stripped. Script and style bodies are not page text.
func countWords(rawHTML string) int {
	z := html.NewTokenizer(strings.NewReader(rawHTML))

	var textBuilder strings.Builder
	var skipTag string

	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				// Tolerant parse: count what was collected so far
			}
			return len(strings.Fields(textBuilder.String()))

		case html.StartTagToken:
			tn, _ := z.TagName()
			tag := string(tn)
			if tag == "script" || tag == "style" {
				skipTag = tag
			}

		case html.EndTagToken:
			tn, _ := z.TagName()
			if string(tn) == skipTag {
				skipTag = ""
			}

		case html.TextToken:
			if skipTag == "" {
				textBuilder.Write(z.Text())
				textBuilder.WriteByte(' ')
			}
		}
	}
}
