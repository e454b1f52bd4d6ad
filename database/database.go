package database

import (
	"context"

	"github.com/quentinbedos-gif/ops-help-raul/types"
)

// Field names a text filter may target.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldKeywords    = "keywords"
)

// FilterMode selects how the clauses of a TextFilter combine.
type FilterMode int

const (
	MatchAny FilterMode = iota // disjunctive, any clause matches
	MatchAll                   // conjunctive, every clause must match
)

// Clause matches entries whose named field contains a substring.
type Clause struct {
	Field    string
	Contains string
}

// TextFilter is a containment filter over the entry text fields.
type TextFilter struct {
	Mode    FilterMode
	Clauses []Clause
}

// KnowledgeStore defines the capability surface of the knowledge base.
// Implementations parse raw store records into KnowledgeEntry with per-field
// defaults; a record that cannot be parsed at all is dropped, never returned
// as an error.
type KnowledgeStore interface {
	// QueryByFilter returns entries matching a containment filter.
	QueryByFilter(ctx context.Context, filter TextFilter, limit int) ([]types.KnowledgeEntry, error)

	// Search runs the store's general free-text search.
	Search(ctx context.Context, query string, limit int) ([]types.KnowledgeEntry, error)

	// QueryByCategory returns entries with an exact category match.
	QueryByCategory(ctx context.Context, category string, limit int) ([]types.KnowledgeEntry, error)

	// CreateEntry persists a new entry and returns its id and reference URL.
	CreateEntry(ctx context.Context, entry *types.KnowledgeEntry) (*types.CreatedEntry, error)
}
