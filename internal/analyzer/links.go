package analyzer

import (
	"net/url"
	"strings"
)

// LinksExtractor classifies the page's anchors as internal or external.
type LinksExtractor struct{}

func NewLinksExtractor() *LinksExtractor {
	return &LinksExtractor{}
}

func (e *LinksExtractor) Name() string {
	return "links"
}

func (e *LinksExtractor) Extract(ctx *Context) Result {
	if !ctx.Fetched {
		return errorResult()
	}

	anchors := ctx.Doc.Anchors()
	internalLinks := 0
	externalLinks := 0
	nofollowLinks := 0

	baseHost := hostOf(ctx.URL)

	for _, a := range anchors {
		// Empty and fragment-only hrefs stay in the raw total but
		// are excluded from classification
		if a.Href == "" || a.Href == "#" {
			continue
		}

		if strings.Contains(a.Rel, "nofollow") {
			nofollowLinks++
		}

		// Host-only comparison: a relative link (no host) or a link
		// on the request's host is internal, scheme ignored
		linkHost := hostOf(a.Href)
		if linkHost == "" || linkHost == baseHost {
			internalLinks++
		} else {
			externalLinks++
		}
	}

	return Result{
		"total_links":    len(anchors),
		"internal_links": internalLinks,
		"external_links": externalLinks,
		"nofollow_links": nofollowLinks,
	}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
