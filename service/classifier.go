package service

import (
	"strings"

	"github.com/quentinbedos-gif/ops-help-raul/types"
)

// CategoryClassifier scores free text against an ordered category table.
type CategoryClassifier struct {
	table []types.CategoryKeywords
}

func NewCategoryClassifier(table []types.CategoryKeywords) *CategoryClassifier {
	return &CategoryClassifier{table: table}
}

// Detect returns the best-scoring category, or "" when every category scores
// zero. A keyword counts when it appears as a substring anywhere in the
// lower-cased text. The strict > comparison keeps the first category of the
// table on ties.
func (c *CategoryClassifier) Detect(text string) string {
	q := strings.ToLower(text)

	bestMatch := ""
	bestScore := 0
	for _, category := range c.table {
		score := 0
		for _, kw := range category.Keywords {
			if strings.Contains(q, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestMatch = category.Name
		}
	}
	return bestMatch
}
