package service

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/quentinbedos-gif/ops-help-raul/database"
)

const (
	guardKeywordLimit = 2
	guardQueryLimit   = 3
	guardCacheTTL     = 10 * time.Minute
)

// DuplicateGuard decides whether a sufficiently similar entry already exists
// before a placeholder is created. The store check is best-effort
// check-then-act; a small in-process cache keyed by the normalized question
// keywords narrows the window where two concurrent low-confidence answers
// both pass the check.
type DuplicateGuard struct {
	store     database.KnowledgeStore
	extractor *KeywordExtractor

	mu     sync.Mutex
	recent map[string]time.Time
	ttl    time.Duration
	now    func() time.Time
}

func NewDuplicateGuard(store database.KnowledgeStore, extractor *KeywordExtractor) *DuplicateGuard {
	return &DuplicateGuard{
		store:     store,
		extractor: extractor,
		recent:    make(map[string]time.Time),
		ttl:       guardCacheTTL,
		now:       time.Now,
	}
}

// ExistsSimilar reports whether an entry similar to the question already
// exists. It fails open: a store error means "no duplicate", so a creation is
// attempted rather than silently dropped.
func (g *DuplicateGuard) ExistsSimilar(ctx context.Context, question string) bool {
	keywords := g.extractor.Extract(question, guardKeywordLimit, 2)
	if len(keywords) == 0 {
		return false
	}
	key := strings.Join(keywords, " ")

	g.mu.Lock()
	if created, ok := g.recent[key]; ok && g.now().Sub(created) < g.ttl {
		g.mu.Unlock()
		return true
	}
	g.mu.Unlock()

	filter := database.TextFilter{Mode: database.MatchAll}
	for _, kw := range keywords {
		filter.Clauses = append(filter.Clauses, database.Clause{
			Field:    database.FieldTitle,
			Contains: kw,
		})
	}

	entries, err := g.store.QueryByFilter(ctx, filter, guardQueryLimit)
	if err != nil {
		log.Printf("Duplicate check failed, assuming no duplicate: %v", err)
		return false
	}
	return len(entries) > 0
}

// Remember caches the question keywords so an identical question asked within
// the TTL is treated as a duplicate. Call it after the entry was actually
// created: a failed creation must stay retryable.
func (g *DuplicateGuard) Remember(question string) {
	keywords := g.extractor.Extract(question, guardKeywordLimit, 2)
	if len(keywords) == 0 {
		return
	}
	key := strings.Join(keywords, " ")

	g.mu.Lock()
	g.recent[key] = g.now()
	for k, created := range g.recent {
		if g.now().Sub(created) >= g.ttl {
			delete(g.recent, k)
		}
	}
	g.mu.Unlock()
}
