package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quentinbedos-gif/ops-help-raul/database"
	"github.com/quentinbedos-gif/ops-help-raul/types"
)

func newTestRetriever(store *fakeStore) *Retriever {
	return NewRetriever(store, testExtractor(), testClassifier(), 8)
}

func entriesNamed(titles ...string) []types.KnowledgeEntry {
	entries := make([]types.KnowledgeEntry, 0, len(titles))
	for i, title := range titles {
		entries = append(entries, types.KnowledgeEntry{
			ID:    fmt.Sprintf("id-%s-%d", title, i),
			Title: title,
		})
	}
	return entries
}

func TestRetrieveStageOneFilter(t *testing.T) {
	store := &fakeStore{
		queryByFilter: func(filter database.TextFilter, limit int) ([]types.KnowledgeEntry, error) {
			return entriesNamed("A", "B", "C"), nil
		},
	}
	retriever := newTestRetriever(store)

	entries := retriever.Retrieve(context.Background(), "comment convertir un lead prospect ?")

	require.Len(t, entries, 3)
	require.Len(t, store.filterCalls, 1)

	// 3 keywords x 3 fields, disjunctive.
	filter := store.filterCalls[0]
	assert.Equal(t, database.MatchAny, filter.Mode)
	assert.Len(t, filter.Clauses, 9)
	assert.Equal(t, database.FieldTitle, filter.Clauses[0].Field)
	assert.Equal(t, "convertir", filter.Clauses[0].Contains)

	// Enough results: no fallback stage ran.
	assert.Empty(t, store.searchCalls)
	assert.Empty(t, store.categoryCalls)
}

func TestRetrieveStageTwoDeduplicatesByTitle(t *testing.T) {
	store := &fakeStore{
		queryByFilter: func(filter database.TextFilter, limit int) ([]types.KnowledgeEntry, error) {
			return entriesNamed("A", "B"), nil
		},
		search: func(query string, limit int) ([]types.KnowledgeEntry, error) {
			return entriesNamed("B", "C"), nil
		},
	}
	retriever := newTestRetriever(store)

	entries := retriever.Retrieve(context.Background(), "comment convertir un lead prospect ?")

	require.Len(t, entries, 3)
	assert.Equal(t, "A", entries[0].Title)
	assert.Equal(t, "B", entries[1].Title)
	assert.Equal(t, "C", entries[2].Title)

	require.Len(t, store.searchCalls, 1)
	assert.Equal(t, "convertir lead prospect", store.searchCalls[0])
	// 3 entries after stage 2: category fallback not needed.
	assert.Empty(t, store.categoryCalls)
}

func TestRetrieveStageThreeCategoryFallback(t *testing.T) {
	store := &fakeStore{
		queryByCategory: func(category string, limit int) ([]types.KnowledgeEntry, error) {
			return entriesNamed("X", "Y"), nil
		},
	}
	retriever := newTestRetriever(store)

	entries := retriever.Retrieve(context.Background(), "souci de facture impayee")

	require.Len(t, store.categoryCalls, 1)
	assert.Equal(t, "Billing", store.categoryCalls[0])
	require.Len(t, entries, 2)
	assert.Equal(t, "X", entries[0].Title)
}

func TestRetrieveStageThreeDeduplicatesByID(t *testing.T) {
	shared := types.KnowledgeEntry{ID: "kb-1", Title: "Facture impayee"}
	store := &fakeStore{
		queryByFilter: func(filter database.TextFilter, limit int) ([]types.KnowledgeEntry, error) {
			return []types.KnowledgeEntry{shared}, nil
		},
		queryByCategory: func(category string, limit int) ([]types.KnowledgeEntry, error) {
			return []types.KnowledgeEntry{shared, {ID: "kb-2", Title: "Relance Upflow"}}, nil
		},
	}
	retriever := newTestRetriever(store)

	entries := retriever.Retrieve(context.Background(), "souci de facture impayee")

	// The shared entry appears once, at its stage-1 position.
	require.Len(t, entries, 2)
	assert.Equal(t, "kb-1", entries[0].ID)
	assert.Equal(t, "kb-2", entries[1].ID)
}

func TestRetrieveBounded(t *testing.T) {
	store := &fakeStore{
		queryByFilter: func(filter database.TextFilter, limit int) ([]types.KnowledgeEntry, error) {
			return entriesNamed("A", "B", "C", "D", "E", "F", "G", "H", "I", "J"), nil
		},
	}
	retriever := newTestRetriever(store)

	entries := retriever.Retrieve(context.Background(), "comment convertir un lead prospect ?")

	assert.Len(t, entries, 8)
}

func TestRetrieveGracefulDegradation(t *testing.T) {
	store := &fakeStore{
		queryByFilter: func(filter database.TextFilter, limit int) ([]types.KnowledgeEntry, error) {
			return nil, errors.New("store down")
		},
		search: func(query string, limit int) ([]types.KnowledgeEntry, error) {
			return nil, errors.New("store down")
		},
		queryByCategory: func(category string, limit int) ([]types.KnowledgeEntry, error) {
			return nil, errors.New("store down")
		},
	}
	retriever := newTestRetriever(store)

	entries := retriever.Retrieve(context.Background(), "comment convertir un lead prospect ?")

	assert.Empty(t, entries)
}

func TestRetrieveNoKeywordsUsesRawTokens(t *testing.T) {
	store := &fakeStore{}
	retriever := newTestRetriever(store)

	// Every token is a stop-word or too short: the filter falls back to the
	// first two raw tokens.
	retriever.Retrieve(context.Background(), "comment pour des")

	require.Len(t, store.filterCalls, 1)
	assert.Len(t, store.filterCalls[0].Clauses, 6)
	assert.Equal(t, "comment", store.filterCalls[0].Clauses[0].Contains)
}
