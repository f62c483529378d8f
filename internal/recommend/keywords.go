// Package recommend turns participant comments into a ranked list of venues.
package recommend

import "strings"

// KeywordRule maps a canonical tag to the surface forms that imply it.
type KeywordRule struct {
	Tag      string
	Variants []string
}

// DefaultFallbackTag is returned when no comment mentions a known keyword.
const DefaultFallbackTag = "居酒屋"

// DefaultKeywordRules is the built-in synonym table.
var DefaultKeywordRules = []KeywordRule{
	{Tag: "ビール", Variants: []string{"ビール", "ビアホール", "クラフトビール"}},
	{Tag: "和食", Variants: []string{"和食", "日本料理", "居酒屋"}},
	{Tag: "個室", Variants: []string{"個室", "プライベート"}},
	{Tag: "安い", Variants: []string{"安い", "コスパ", "飲み放題"}},
	{Tag: "宴会", Variants: []string{"宴会", "パーティー", "飲み会"}},
}

// Extractor maps free-text comments to canonical keyword tags by literal
// substring containment. It is safe for concurrent use.
type Extractor struct {
	rules    []KeywordRule
	fallback string
}

// NewExtractor returns an Extractor over rules. A nil rules slice selects
// DefaultKeywordRules and an empty fallback selects DefaultFallbackTag.
func NewExtractor(rules []KeywordRule, fallback string) *Extractor {
	if rules == nil {
		rules = DefaultKeywordRules
	}
	if fallback == "" {
		fallback = DefaultFallbackTag
	}
	return &Extractor{rules: rules, fallback: fallback}
}

// Extract returns the deduplicated tags whose variants appear in any comment,
// in rule order. With no match it returns only the fallback tag.
func (e *Extractor) Extract(comments []string) []string {
	seen := make(map[string]struct{}, len(e.rules))
	for _, comment := range comments {
		for _, rule := range e.rules {
			if _, ok := seen[rule.Tag]; ok {
				continue
			}
			if containsAny(comment, rule.Variants) {
				seen[rule.Tag] = struct{}{}
			}
		}
	}
	if len(seen) == 0 {
		return []string{e.fallback}
	}
	out := make([]string, 0, len(seen))
	for _, rule := range e.rules {
		if _, ok := seen[rule.Tag]; ok {
			out = append(out, rule.Tag)
			delete(seen, rule.Tag)
		}
	}
	return out
}

func containsAny(s string, variants []string) bool {
	for _, v := range variants {
		if strings.Contains(s, v) {
			return true
		}
	}
	return false
}
