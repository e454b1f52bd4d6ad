package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quentinbedos-gif/ops-help-raul/database"
	"github.com/quentinbedos-gif/ops-help-raul/types"
)

func TestExistsSimilarFindsMatch(t *testing.T) {
	store := &fakeStore{
		queryByFilter: func(filter database.TextFilter, limit int) ([]types.KnowledgeEntry, error) {
			return []types.KnowledgeEntry{{ID: "kb-1", Title: "Conversion lead"}}, nil
		},
	}
	guard := NewDuplicateGuard(store, testExtractor())

	assert.True(t, guard.ExistsSimilar(context.Background(), "comment convertir un lead ?"))
}

func TestExistsSimilarNoMatch(t *testing.T) {
	store := &fakeStore{}
	guard := NewDuplicateGuard(store, testExtractor())

	assert.False(t, guard.ExistsSimilar(context.Background(), "comment convertir un lead ?"))
}

func TestExistsSimilarFilterIsConjunctiveOnTitle(t *testing.T) {
	store := &fakeStore{}
	guard := NewDuplicateGuard(store, testExtractor())

	guard.ExistsSimilar(context.Background(), "comment convertir un lead ?")

	require.Len(t, store.filterCalls, 1)
	filter := store.filterCalls[0]
	assert.Equal(t, database.MatchAll, filter.Mode)
	require.Len(t, filter.Clauses, 2)
	for _, clause := range filter.Clauses {
		assert.Equal(t, database.FieldTitle, clause.Field)
	}
	assert.Equal(t, "convertir", filter.Clauses[0].Contains)
	assert.Equal(t, "lead", filter.Clauses[1].Contains)
}

func TestExistsSimilarFailsOpen(t *testing.T) {
	store := &fakeStore{
		queryByFilter: func(filter database.TextFilter, limit int) ([]types.KnowledgeEntry, error) {
			return nil, errors.New("store down")
		},
	}
	guard := NewDuplicateGuard(store, testExtractor())

	assert.False(t, guard.ExistsSimilar(context.Background(), "comment convertir un lead ?"))
}

func TestExistsSimilarNoKeywords(t *testing.T) {
	store := &fakeStore{}
	guard := NewDuplicateGuard(store, testExtractor())

	assert.False(t, guard.ExistsSimilar(context.Background(), "bonjour merci"))
	assert.Empty(t, store.filterCalls)
}

func TestRememberMarksQuestionAsDuplicate(t *testing.T) {
	store := &fakeStore{}
	guard := NewDuplicateGuard(store, testExtractor())

	now := time.Now()
	guard.now = func() time.Time { return now }

	guard.Remember("comment convertir un lead ?")

	// Same keywords within the TTL: duplicate, no store query.
	assert.True(t, guard.ExistsSimilar(context.Background(), "convertir un lead comment faire"))
	assert.Empty(t, store.filterCalls)

	// After the TTL the cache entry expires.
	now = now.Add(guardCacheTTL + time.Second)
	assert.False(t, guard.ExistsSimilar(context.Background(), "comment convertir un lead ?"))
	assert.Len(t, store.filterCalls, 1)
}

func TestExistsSimilarDoesNotCacheOnItsOwn(t *testing.T) {
	store := &fakeStore{}
	guard := NewDuplicateGuard(store, testExtractor())

	// Checking alone must not mark the question as seen, otherwise a failed
	// creation could never be retried.
	assert.False(t, guard.ExistsSimilar(context.Background(), "comment convertir un lead ?"))
	assert.False(t, guard.ExistsSimilar(context.Background(), "comment convertir un lead ?"))
	assert.Len(t, store.filterCalls, 2)
}
