package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/quentinbedos-gif/ops-help-raul/config"
	"github.com/quentinbedos-gif/ops-help-raul/types"
)

var (
	KB_CLASS        = "KnowledgeEntry"
	KB_CLASS_OBJECT = &models.Class{
		Class: KB_CLASS,
		Properties: []*models.Property{
			{Name: "title", DataType: []string{"text"}},
			{Name: "category", DataType: []string{"text"}},
			{Name: "subcategory", DataType: []string{"text"}},
			{Name: "description", DataType: []string{"text"}},
			{Name: "keywords", DataType: []string{"text"}},
			{Name: "process", DataType: []string{"text"}},
			{Name: "resolvers", DataType: []string{"text[]"}},
			{Name: "actionCrm", DataType: []string{"boolean"}},
			{Name: "detailLink", DataType: []string{"text"}},
			{Name: "confidence", DataType: []string{"text"}},
			{Name: "frequency", DataType: []string{"text"}},
			{Name: "language", DataType: []string{"text"}},
			{Name: "lastUpdated", DataType: []string{"int"}},
		},
		Vectorizer: "none",
	}

	kbFields = []graphql.Field{
		{Name: "title"},
		{Name: "category"},
		{Name: "subcategory"},
		{Name: "description"},
		{Name: "keywords"},
		{Name: "process"},
		{Name: "resolvers"},
		{Name: "actionCrm"},
		{Name: "detailLink"},
		{Name: "confidence"},
		{Name: "frequency"},
		{Name: "language"},
		{Name: "lastUpdated"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "id"}}},
	}
)

// WeaviateKBStore implements KnowledgeStore on a Weaviate class. Filters use
// the Like operator for substring containment and Search uses BM25, so the
// ranking stays keyword based.
type WeaviateKBStore struct {
	client    *weaviate.Client
	kbBaseURL string
}

func NewWeaviateKBStore(cfg config.WeaviateStoreConfig, kbBaseURL string) (*WeaviateKBStore, error) {
	var scheme string
	if strings.Contains(cfg.Host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host := strings.TrimPrefix(cfg.Host, scheme+"://")
	wcfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if cfg.APIKey != "" {
		wcfg.AuthConfig = auth.ApiKey{
			Value: cfg.APIKey,
		}
	}
	client, err := weaviate.NewClient(wcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %v", err)
	}

	schema, err := client.Schema().Getter().Do(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get schema: %v", err)
	}

	hasClass := false
	for _, class := range schema.Classes {
		if class.Class == KB_CLASS {
			hasClass = true
			break
		}
	}
	if !hasClass {
		err = client.Schema().ClassCreator().WithClass(KB_CLASS_OBJECT).Do(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to create KnowledgeEntry class: %v", err)
		}
	}
	return &WeaviateKBStore{
		client:    client,
		kbBaseURL: strings.TrimSuffix(kbBaseURL, "/"),
	}, nil
}

// ReInit drops and recreates the KnowledgeEntry class.
func (s *WeaviateKBStore) ReInit() error {
	err := s.client.Schema().ClassDeleter().WithClassName(KB_CLASS).Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to delete KnowledgeEntry class: %v", err)
	}

	err = s.client.Schema().ClassCreator().WithClass(KB_CLASS_OBJECT).Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to create KnowledgeEntry class: %v", err)
	}
	return nil
}

func (s *WeaviateKBStore) QueryByFilter(ctx context.Context, filter TextFilter, limit int) ([]types.KnowledgeEntry, error) {
	where := buildWhere(filter)
	if where == nil {
		return nil, nil
	}

	builder := s.client.GraphQL().Get().
		WithClassName(KB_CLASS).
		WithFields(kbFields...).
		WithWhere(where)
	if limit > 0 {
		builder = builder.WithLimit(limit)
	}

	result, err := builder.Do(ctx)
	if err != nil {
		return nil, err
	}
	if result.Errors != nil {
		return nil, fmt.Errorf("filter query failed: %v", result.Errors[0].Message)
	}
	return s.parseEntries(result.Data), nil
}

func (s *WeaviateKBStore) Search(ctx context.Context, query string, limit int) ([]types.KnowledgeEntry, error) {
	bm25 := (&graphql.BM25ArgumentBuilder{}).
		WithQuery(query).
		WithProperties("title", "description", "keywords")

	builder := s.client.GraphQL().Get().
		WithClassName(KB_CLASS).
		WithFields(kbFields...).
		WithBM25(bm25)
	if limit > 0 {
		builder = builder.WithLimit(limit)
	}

	result, err := builder.Do(ctx)
	if err != nil {
		return nil, err
	}
	if result.Errors != nil {
		return nil, fmt.Errorf("bm25 search failed: %v", result.Errors[0].Message)
	}
	return s.parseEntries(result.Data), nil
}

func (s *WeaviateKBStore) QueryByCategory(ctx context.Context, category string, limit int) ([]types.KnowledgeEntry, error) {
	where := filters.Where().
		WithPath([]string{"category"}).
		WithOperator(filters.Equal).
		WithValueText(category)

	builder := s.client.GraphQL().Get().
		WithClassName(KB_CLASS).
		WithFields(kbFields...).
		WithWhere(where)
	if limit > 0 {
		builder = builder.WithLimit(limit)
	}

	result, err := builder.Do(ctx)
	if err != nil {
		return nil, err
	}
	if result.Errors != nil {
		return nil, fmt.Errorf("category query failed: %v", result.Errors[0].Message)
	}
	return s.parseEntries(result.Data), nil
}

func (s *WeaviateKBStore) CreateEntry(ctx context.Context, entry *types.KnowledgeEntry) (*types.CreatedEntry, error) {
	properties := map[string]interface{}{
		"title":       entry.Title,
		"category":    entry.Category,
		"subcategory": entry.Subcategory,
		"description": entry.Description,
		"keywords":    entry.Keywords,
		"process":     entry.Process,
		"resolvers":   entry.Resolvers,
		"actionCrm":   entry.ActionCRM,
		"detailLink":  entry.DetailLink,
		"confidence":  entry.Confidence,
		"frequency":   entry.Frequency,
		"language":    entry.Language,
		"lastUpdated": entry.LastUpdated,
	}

	result, err := s.client.Data().Creator().
		WithClassName(KB_CLASS).
		WithProperties(properties).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	id := string(result.Object.ID)
	return &types.CreatedEntry{
		ID:  id,
		URL: s.entryURL(id),
	}, nil
}

func (s *WeaviateKBStore) entryURL(id string) string {
	if s.kbBaseURL == "" {
		return ""
	}
	return s.kbBaseURL + "/" + id
}

// buildWhere translates a TextFilter into a Weaviate where filter. A single
// clause degrades to a bare Like filter without a combining operator.
func buildWhere(filter TextFilter) *filters.WhereBuilder {
	if len(filter.Clauses) == 0 {
		return nil
	}

	operands := make([]*filters.WhereBuilder, 0, len(filter.Clauses))
	for _, clause := range filter.Clauses {
		operands = append(operands, filters.Where().
			WithPath([]string{clause.Field}).
			WithOperator(filters.Like).
			WithValueText("*"+clause.Contains+"*"))
	}
	if len(operands) == 1 {
		return operands[0]
	}

	operator := filters.Or
	if filter.Mode == MatchAll {
		operator = filters.And
	}
	return filters.Where().
		WithOperator(operator).
		WithOperands(operands)
}

func (s *WeaviateKBStore) parseEntries(data map[string]models.JSONObject) []types.KnowledgeEntry {
	var entries []types.KnowledgeEntry
	get, ok := data["Get"].(map[string]interface{})
	if !ok {
		return entries
	}
	items, ok := get[KB_CLASS].([]interface{})
	if !ok {
		return entries
	}
	for _, item := range items {
		raw, ok := item.(map[string]interface{})
		if !ok {
			log.Printf("Skipping unparseable KB record: %v", item)
			continue
		}
		entry := types.KnowledgeEntry{
			Title:       parseString(raw["title"]),
			Category:    parseString(raw["category"]),
			Subcategory: parseString(raw["subcategory"]),
			Description: parseString(raw["description"]),
			Keywords:    parseString(raw["keywords"]),
			Process:     parseString(raw["process"]),
			Resolvers:   parseStringArray(raw["resolvers"]),
			ActionCRM:   parseBool(raw["actionCrm"]),
			DetailLink:  parseString(raw["detailLink"]),
			Confidence:  parseString(raw["confidence"]),
			Frequency:   parseString(raw["frequency"]),
			Language:    parseString(raw["language"]),
			LastUpdated: parseInt64(raw["lastUpdated"]),
		}
		if additional, ok := raw["_additional"].(map[string]interface{}); ok {
			entry.ID = parseString(additional["id"])
		}
		entry.URL = s.entryURL(entry.ID)
		entries = append(entries, entry)
	}
	return entries
}

func parseString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func parseBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

func parseInt64(v interface{}) int64 {
	f, _ := v.(float64)
	return int64(f)
}

func parseStringArray(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
