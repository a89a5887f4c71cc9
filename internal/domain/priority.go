package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Priority is one of three ordered relevance tiers.
type Priority int

const (
	PriorityStandard Priority = iota
	PriorityHigh
	PriorityHighest
)

func (p Priority) String() string {
	switch p {
	case PriorityHighest:
		return "highest"
	case PriorityHigh:
		return "high"
	default:
		return "standard"
	}
}

// ParsePriority maps a stored label back to its Priority.
func ParsePriority(label string) Priority {
	switch strings.TrimSpace(label) {
	case "highest":
		return PriorityHighest
	case "high":
		return PriorityHigh
	default:
		return PriorityStandard
	}
}

// PriorityRule assigns Priority when the category contains any of Keywords.
type PriorityRule struct {
	Priority Priority
	Keywords []string
}

// PriorityRules are evaluated top-down; the first matching rule wins.
var PriorityRules = []PriorityRule{
	{Priority: PriorityHighest, Keywords: []string{"kommunalpolitik", "wirtschaft", "bildung", "verkehr"}},
	{Priority: PriorityHigh, Keywords: []string{"digitalisierung", "umwelt", "bürgerbeteiligung", "jugend"}},
}

var lowerGerman = cases.Lower(language.German)

// Classify resolves the priority of a category using PriorityRules.
func Classify(category string) Priority {
	return ClassifyWith(PriorityRules, category)
}

// ClassifyWith resolves the priority of a category against an ordered rule list.
func ClassifyWith(rules []PriorityRule, category string) Priority {
	lowered := lowerGerman.String(category)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lowered, kw) {
				return rule.Priority
			}
		}
	}
	return PriorityStandard
}
