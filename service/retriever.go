package service

import (
	"context"
	"log"
	"strings"

	"github.com/quentinbedos-gif/ops-help-raul/database"
	"github.com/quentinbedos-gif/ops-help-raul/types"
)

const (
	// Retrieval stage thresholds.
	keywordStageTarget  = 3 // stage 2 runs below this count
	categoryStageTarget = 2 // stage 3 runs below this count
	categoryStageLimit  = 4

	filterKeywordLimit  = 3
	filterKeywordMinLen = 3
)

// Retriever produces a bounded, de-duplicated, ordered list of KB entries for
// a question. Exact keyword matches come first, then free-text search hits,
// then category-level matches; every store failure is non-fatal.
type Retriever struct {
	store      database.KnowledgeStore
	extractor  *KeywordExtractor
	classifier *CategoryClassifier
	maxResults int
}

func NewRetriever(store database.KnowledgeStore, extractor *KeywordExtractor, classifier *CategoryClassifier, maxResults int) *Retriever {
	if maxResults <= 0 {
		maxResults = 8
	}
	return &Retriever{
		store:      store,
		extractor:  extractor,
		classifier: classifier,
		maxResults: maxResults,
	}
}

func (r *Retriever) Retrieve(ctx context.Context, question string) []types.KnowledgeEntry {
	keywords := r.extractor.Extract(question, filterKeywordLimit, filterKeywordMinLen)
	if len(keywords) == 0 {
		keywords = r.extractor.Tokens(question, 2)
	}

	// Stage 1: disjunctive containment filter over the text fields.
	var entries []types.KnowledgeEntry
	results, err := r.store.QueryByFilter(ctx, buildTextFilter(keywords), r.maxResults)
	if err != nil {
		log.Printf("KB filter query failed: %v", err)
	} else {
		entries = results
	}

	// Stage 2: general free-text search when the filter found too little.
	if len(entries) < keywordStageTarget && len(keywords) > 0 {
		results, err := r.store.Search(ctx, strings.Join(keywords, " "), r.maxResults)
		if err != nil {
			log.Printf("KB free-text search failed: %v", err)
		} else {
			seen := make(map[string]struct{}, len(entries))
			for _, entry := range entries {
				seen[entry.Title] = struct{}{}
			}
			for _, entry := range results {
				if _, dup := seen[entry.Title]; dup {
					continue
				}
				seen[entry.Title] = struct{}{}
				entries = append(entries, entry)
			}
		}
	}

	// Stage 3: category fallback when even the search came up short.
	if len(entries) < categoryStageTarget {
		if category := r.classifier.Detect(question); category != "" {
			results, err := r.store.QueryByCategory(ctx, category, categoryStageLimit)
			if err != nil {
				log.Printf("KB category query failed: %v", err)
			} else {
				seen := make(map[string]struct{}, len(entries))
				for _, entry := range entries {
					seen[entry.ID] = struct{}{}
				}
				for _, entry := range results {
					if _, dup := seen[entry.ID]; dup {
						continue
					}
					seen[entry.ID] = struct{}{}
					entries = append(entries, entry)
				}
			}
		}
	}

	if len(entries) > r.maxResults {
		entries = entries[:r.maxResults]
	}
	return entries
}

// buildTextFilter matches any entry whose title, description or keyword field
// contains any of the keywords.
func buildTextFilter(keywords []string) database.TextFilter {
	filter := database.TextFilter{Mode: database.MatchAny}
	for _, kw := range keywords {
		for _, field := range []string{database.FieldTitle, database.FieldDescription, database.FieldKeywords} {
			filter.Clauses = append(filter.Clauses, database.Clause{Field: field, Contains: kw})
		}
	}
	return filter
}
