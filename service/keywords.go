package service

import (
	"strings"
	"unicode/utf8"
)

// punctReplacer maps the punctuation characters that may glue tokens together
// to spaces before splitting.
var punctReplacer = strings.NewReplacer(
	"?", " ", "!", " ", ".", " ", ",", " ", ";", " ", ":", " ",
	"(", " ", ")", " ", "[", " ", "]", " ", "{", " ", "}", " ",
	"\"", " ", "«", " ", "»", " ", "/", " ", "\\", " ",
	"<", " ", ">", " ", "*", " ", "_", " ", "-", " ", "'", " ",
	"’", " ", "\n", " ", "\t", " ",
)

// KeywordExtractor turns free text into a short ordered list of significant
// tokens. Deterministic for a given stop-word set.
type KeywordExtractor struct {
	stopWords map[string]struct{}
}

func NewKeywordExtractor(stopWords []string) *KeywordExtractor {
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &KeywordExtractor{stopWords: set}
}

// Extract lower-cases the text, strips punctuation, and returns at most limit
// tokens longer than minLen runes that are not stop-words, deduplicated in
// first-occurrence order.
func (e *KeywordExtractor) Extract(text string, limit, minLen int) []string {
	if limit <= 0 {
		return nil
	}

	normalized := punctReplacer.Replace(strings.ToLower(text))

	var keywords []string
	seen := make(map[string]struct{})
	for _, token := range strings.Fields(normalized) {
		if utf8.RuneCountInString(token) <= minLen {
			continue
		}
		if _, stop := e.stopWords[token]; stop {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		keywords = append(keywords, token)
		if len(keywords) == limit {
			break
		}
	}
	return keywords
}

// Tokens returns the first limit raw lower-cased tokens without any length or
// stop-word filtering. Used as a last resort when Extract yields nothing.
func (e *KeywordExtractor) Tokens(text string, limit int) []string {
	fields := strings.Fields(punctReplacer.Replace(strings.ToLower(text)))
	if len(fields) > limit {
		fields = fields[:limit]
	}
	return fields
}
