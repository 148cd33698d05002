package analyzer

// HeadingsExtractor reports the page's h1..h6 structure.
type HeadingsExtractor struct{}

func NewHeadingsExtractor() *HeadingsExtractor {
	return &HeadingsExtractor{}
}

func (e *HeadingsExtractor) Name() string {
	return "headings"
}

var headingTags = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

func (e *HeadingsExtractor) Extract(ctx *Context) Result {
	if !ctx.Fetched {
		return errorResult()
	}

	headings := make(map[string][]string, len(headingTags))
	for _, tag := range headingTags {
		texts := ctx.Doc.HeadingTexts(tag)
		if texts == nil {
			texts = make([]string, 0)
		}
		headings[tag] = texts
	}

	h1Count := len(headings["h1"])

	return Result{
		"headings":         headings,
		"h1_count":         h1Count,
		"h1_optimal":       h1Count == 1,
		"hierarchy_proper": h1Count > 0,
	}
}
