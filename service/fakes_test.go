package service

import (
	"context"
	"errors"

	"github.com/quentinbedos-gif/ops-help-raul/database"
	"github.com/quentinbedos-gif/ops-help-raul/types"
)

// fakeStore implements database.KnowledgeStore with per-call hooks.
type fakeStore struct {
	queryByFilter   func(filter database.TextFilter, limit int) ([]types.KnowledgeEntry, error)
	search          func(query string, limit int) ([]types.KnowledgeEntry, error)
	queryByCategory func(category string, limit int) ([]types.KnowledgeEntry, error)
	createEntry     func(entry *types.KnowledgeEntry) (*types.CreatedEntry, error)

	filterCalls   []database.TextFilter
	searchCalls   []string
	categoryCalls []string
	created       []*types.KnowledgeEntry
}

func (s *fakeStore) QueryByFilter(_ context.Context, filter database.TextFilter, limit int) ([]types.KnowledgeEntry, error) {
	s.filterCalls = append(s.filterCalls, filter)
	if s.queryByFilter == nil {
		return nil, nil
	}
	return s.queryByFilter(filter, limit)
}

func (s *fakeStore) Search(_ context.Context, query string, limit int) ([]types.KnowledgeEntry, error) {
	s.searchCalls = append(s.searchCalls, query)
	if s.search == nil {
		return nil, nil
	}
	return s.search(query, limit)
}

func (s *fakeStore) QueryByCategory(_ context.Context, category string, limit int) ([]types.KnowledgeEntry, error) {
	s.categoryCalls = append(s.categoryCalls, category)
	if s.queryByCategory == nil {
		return nil, nil
	}
	return s.queryByCategory(category, limit)
}

func (s *fakeStore) CreateEntry(_ context.Context, entry *types.KnowledgeEntry) (*types.CreatedEntry, error) {
	s.created = append(s.created, entry)
	if s.createEntry == nil {
		return nil, errors.New("createEntry not configured")
	}
	return s.createEntry(entry)
}

// fakeAI returns a canned answer or error.
type fakeAI struct {
	answer  string
	err     error
	systems []string
	prompts []string
}

func (a *fakeAI) Generate(_ context.Context, system, prompt string) (string, error) {
	a.systems = append(a.systems, system)
	a.prompts = append(a.prompts, prompt)
	if a.err != nil {
		return "", a.err
	}
	return a.answer, nil
}

func testExtractor() *KeywordExtractor {
	return NewKeywordExtractor([]string{
		"les", "des", "une", "dans", "pour", "comment", "pourquoi",
		"the", "and", "for", "with", "how", "what",
		"bonjour", "merci", "svp",
	})
}

func testClassifier() *CategoryClassifier {
	return NewCategoryClassifier([]types.CategoryKeywords{
		{Name: "Billing", Keywords: []string{"facture", "invoice", "paiement", "chargebee"}},
		{Name: "Lead", Keywords: []string{"lead", "conversion", "convertir", "prospect"}},
		{Name: "Churn", Keywords: []string{"churn", "resiliation"}},
	})
}
