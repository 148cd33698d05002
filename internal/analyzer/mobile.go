package analyzer

// MobileExtractor reports viewport configuration.
type MobileExtractor struct{}

func NewMobileExtractor() *MobileExtractor {
	return &MobileExtractor{}
}

func (e *MobileExtractor) Name() string {
	return "mobile"
}

func (e *MobileExtractor) Extract(ctx *Context) Result {
	if !ctx.Fetched {
		return errorResult()
	}

	content, hasViewport := ctx.Doc.Viewport()

	return Result{
		"has_viewport":     hasViewport,
		"viewport_content": content,
		"mobile_friendly":  hasViewport,
	}
}
