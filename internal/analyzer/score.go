package analyzer

// Score combines the extractor results into a single 0-100 score.
// Contributions are additive and the sum is capped at 100; the
// thresholds below are part of the external contract and must not be
// renormalized.
func Score(results map[string]Result) int {
	score := 0

	// Title (10 points)
	if getString(results, "basic", "title") != "" {
		score += 5
		if getBool(results, "basic", "title_optimal") {
			score += 5
		}
	}

	// Meta description (10 points)
	if getString(results, "meta", "description") != "" {
		score += 5
		if getBool(results, "meta", "description_optimal") {
			score += 5
		}
	}

	// Headings (10 points)
	if getBool(results, "headings", "h1_optimal") {
		score += 10
	}

	// Image alt text (15 points)
	altRatio := getFloat(results, "images", "alt_ratio")
	switch {
	case altRatio >= Thresholds.GoodAltRatio:
		score += 15
	case altRatio >= Thresholds.FairAltRatio:
		score += 10
	case altRatio > 0:
		score += 5
	}

	// Performance (15 points)
	switch {
	case getBool(results, "performance", "load_time_optimal"):
		score += 15
	case getFloat(results, "performance", "load_time") < Thresholds.AcceptableLoadTime:
		score += 10
	default:
		score += 5
	}

	// Mobile friendly (10 points)
	if getBool(results, "mobile", "mobile_friendly") {
		score += 10
	}

	// HTTPS (10 points)
	if getBool(results, "security", "uses_https") {
		score += 10
	}

	// Structured data (10 points)
	if getBool(results, "structured_data", "has_schema") {
		score += 10
	}

	// Links (10 points)
	if getInt(results, "links", "internal_links") > Thresholds.MinInternalLinks {
		score += 5
	}
	if getInt(results, "links", "external_links") > 0 {
		score += 5
	}

	// Content (10 points)
	wordCount := getInt(results, "basic", "word_count")
	if wordCount >= Thresholds.MinWordCount {
		score += 5
	}
	if wordCount >= Thresholds.RichWordCount {
		score += 5
	}

	return min(score, 100)
}

// Field accessors tolerate missing extractors, error-state results,
// and JSON round-tripped numbers (which decode as float64).

func getString(results map[string]Result, extractor, field string) string {
	v, _ := results[extractor][field].(string)
	return v
}

func getBool(results map[string]Result, extractor, field string) bool {
	v, _ := results[extractor][field].(bool)
	return v
}

func getInt(results map[string]Result, extractor, field string) int {
	switch v := results[extractor][field].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func getFloat(results map[string]Result, extractor, field string) float64 {
	switch v := results[extractor][field].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
