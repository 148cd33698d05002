package analyzer

import "unicode/utf8"

// MetaExtractor reports description, social, and robots meta tags.
type MetaExtractor struct{}

func NewMetaExtractor() *MetaExtractor {
	return &MetaExtractor{}
}

func (e *MetaExtractor) Name() string {
	return "meta"
}

func (e *MetaExtractor) Extract(ctx *Context) Result {
	if !ctx.Fetched {
		return errorResult()
	}

	// Index every meta tag by its name attribute, falling back to
	// property when name is empty. Later tags win on duplicate keys.
	meta := make(map[string]string)
	for _, tag := range ctx.Doc.Metas() {
		key := tag.Name
		if key == "" {
			key = tag.Property
		}
		if key != "" {
			meta[key] = tag.Content
		}
	}

	description := meta["description"]
	descLength := utf8.RuneCountInString(description)

	return Result{
		"description":         description,
		"description_length":  descLength,
		"description_optimal": descLength >= Thresholds.MetaDescMinLength && descLength <= Thresholds.MetaDescMaxLength,
		"keywords":            meta["keywords"],
		"robots":              meta["robots"],
		"og_title":            meta["og:title"],
		"og_description":      meta["og:description"],
		"og_image":            meta["og:image"],
		"twitter_card":        meta["twitter:card"],
	}
}
