package service

import "strings"

// Regulatory classification tags.
const (
	ClassDangerous  = "dangerous"
	ClassControlled = "controlled"
)

// RegulatoryClassifier tags a drug's free-text legal category by
// case-insensitive substring matching. The keyword sets come from
// configuration so jurisdictions can evolve without touching the
// aggregation logic.
type RegulatoryClassifier struct {
	dangerous  []string
	controlled []string
}

func NewRegulatoryClassifier(dangerous, controlled []string) *RegulatoryClassifier {
	lower := func(in []string) []string {
		out := make([]string, 0, len(in))
		for _, kw := range in {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				out = append(out, kw)
			}
		}
		return out
	}
	return &RegulatoryClassifier{dangerous: lower(dangerous), controlled: lower(controlled)}
}

// Classify returns ClassDangerous, ClassControlled, or "" for unregulated
// categories. Dangerous markers win over controlled ones when both match.
func (c *RegulatoryClassifier) Classify(legalCategory string) string {
	cat := strings.ToLower(legalCategory)
	for _, kw := range c.dangerous {
		if strings.Contains(cat, kw) {
			return ClassDangerous
		}
	}
	for _, kw := range c.controlled {
		if strings.Contains(cat, kw) {
			return ClassControlled
		}
	}
	return ""
}
