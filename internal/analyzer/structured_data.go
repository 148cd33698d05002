package analyzer

import (
	"encoding/json"
	"strings"
)

// StructuredDataExtractor reports JSON-LD schema blocks.
type StructuredDataExtractor struct{}

func NewStructuredDataExtractor() *StructuredDataExtractor {
	return &StructuredDataExtractor{}
}

func (e *StructuredDataExtractor) Name() string {
	return "structured_data"
}

func (e *StructuredDataExtractor) Extract(ctx *Context) Result {
	if !ctx.Fetched {
		return errorResult()
	}

	schemas := make([]any, 0)
	for _, block := range ctx.Doc.JSONLDBlocks() {
		var data any
		if err := json.Unmarshal([]byte(strings.TrimSpace(block)), &data); err != nil {
			// Unparsable blocks are skipped, not fatal
			continue
		}
		if data == nil {
			continue
		}
		schemas = append(schemas, data)
	}

	return Result{
		"has_schema":   len(schemas) > 0,
		"schema_count": len(schemas),
		"schemas":      schemas,
	}
}
