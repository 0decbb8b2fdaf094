// Package guardrails applies text-based content filters to both directions
// of a conversation: targeted PII redaction on the way in, categorized
// refusal matching on the way out.
package guardrails

import (
	"regexp"
	"strings"
)

// RefusalMessage replaces an assistant reply verbatim when any filter
// category matches.
const RefusalMessage = "I'm sorry, I can’t discuss explicit or personally identifiable details. " +
	"Let's focus on overall safety patterns and helpful, general guidance."

// RedactionMarker substitutes PII spans found in user input.
const RedactionMarker = "[REDACTED]"

// Category tags a filter rule. New categories extend the enum without
// touching call sites.
type Category int

const (
	CategoryExplicit Category = iota
	CategoryPII
	CategorySelfHarm
)

func (c Category) String() string {
	switch c {
	case CategoryExplicit:
		return "explicit"
	case CategoryPII:
		return "pii"
	case CategorySelfHarm:
		return "self-harm"
	default:
		return "unknown"
	}
}

type rule struct {
	category Category
	re       *regexp.Regexp
}

func compile(category Category, patterns ...string) []rule {
	rules := make([]rule, 0, len(patterns))
	for _, p := range patterns {
		rules = append(rules, rule{category: category, re: regexp.MustCompile(`(?i)` + p)})
	}
	return rules
}

var explicitRules = compile(CategoryExplicit,
	`\bsexual\s+violence\b`,
	`\bsexual\s+assault\b`,
	`\brape\b`,
	`\bgraphic\s+detail\b`,
)

var piiRules = compile(CategoryPII,
	`\b\d{3}[-\s]?\d{3}[-\s]?\d{4}\b`, // phone numbers
	`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`, // emails
	`\b\d{1,4}\s+\w+\s+(street|st\.|road|rd\.|avenue|ave\.)\b`,
)

var selfHarmRules = compile(CategorySelfHarm,
	`\bsuicide\b`,
	`\bself[-\s]?harm\b`,
	`\bkill myself\b`,
)

// allRules is evaluated in a fixed order: explicit, PII, self-harm.
var allRules = concat(explicitRules, piiRules, selfHarmRules)

func concat(groups ...[]rule) []rule {
	var out []rule
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// PostProcess screens an assistant reply. Matching is existence-only: the
// first rule that matches anywhere replaces the whole reply with
// RefusalMessage. Empty input passes through unchanged.
func PostProcess(text string) string {
	if text == "" {
		return text
	}
	for _, r := range allRules {
		if r.re.MatchString(text) {
			return RefusalMessage
		}
	}
	return text
}

// Scan reports the first matching category, for logging and tests.
func Scan(text string) (Category, bool) {
	if text == "" {
		return 0, false
	}
	for _, r := range allRules {
		if r.re.MatchString(text) {
			return r.category, true
		}
	}
	return 0, false
}

// Sanitize trims user input and redacts PII spans in place. Unlike
// PostProcess it rewrites only the matching substrings.
func Sanitize(text string) string {
	sanitized := strings.TrimSpace(text)
	for _, r := range piiRules {
		sanitized = r.re.ReplaceAllString(sanitized, RedactionMarker)
	}
	return sanitized
}
