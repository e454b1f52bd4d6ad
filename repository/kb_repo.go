package repository

import (
	"context"
	"log"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/quentinbedos-gif/ops-help-raul/database"
	"github.com/quentinbedos-gif/ops-help-raul/types"
)

// kbRepo implements database.KnowledgeStore on a MongoDB collection.
// Containment clauses map to case-insensitive quoted $regex and Search to a
// $text index over title, description and keywords.
type kbRepo struct {
	collection *mongo.Collection
	kbBaseURL  string
}

func NewKBRepo(collection *mongo.Collection, kbBaseURL string) database.KnowledgeStore {
	return &kbRepo{
		collection: collection,
		kbBaseURL:  strings.TrimSuffix(kbBaseURL, "/"),
	}
}

// EnsureIndexes creates the text index Search relies on. Call once at startup.
func EnsureIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
			{Key: "keywords", Value: "text"},
		},
	})
	return err
}

func (r *kbRepo) QueryByFilter(ctx context.Context, filter database.TextFilter, limit int) ([]types.KnowledgeEntry, error) {
	if len(filter.Clauses) == 0 {
		return nil, nil
	}

	clauses := make([]bson.M, 0, len(filter.Clauses))
	for _, clause := range filter.Clauses {
		clauses = append(clauses, bson.M{
			clause.Field: bson.M{
				"$regex":   regexp.QuoteMeta(clause.Contains),
				"$options": "i",
			},
		})
	}

	var query bson.M
	switch {
	case len(clauses) == 1:
		query = clauses[0]
	case filter.Mode == database.MatchAll:
		query = bson.M{"$and": clauses}
	default:
		query = bson.M{"$or": clauses}
	}

	return r.find(ctx, query, limit)
}

func (r *kbRepo) Search(ctx context.Context, query string, limit int) ([]types.KnowledgeEntry, error) {
	return r.find(ctx, bson.M{"$text": bson.M{"$search": query}}, limit)
}

func (r *kbRepo) QueryByCategory(ctx context.Context, category string, limit int) ([]types.KnowledgeEntry, error) {
	return r.find(ctx, bson.M{"category": category}, limit)
}

func (r *kbRepo) CreateEntry(ctx context.Context, entry *types.KnowledgeEntry) (*types.CreatedEntry, error) {
	if entry.ID == "" {
		entry.ID = bson.NewObjectID().Hex()
	}
	entry.URL = r.entryURL(entry.ID)

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return nil, err
	}
	return &types.CreatedEntry{
		ID:  entry.ID,
		URL: entry.URL,
	}, nil
}

func (r *kbRepo) find(ctx context.Context, query bson.M, limit int) ([]types.KnowledgeEntry, error) {
	opts := options.Find()
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []types.KnowledgeEntry
	for cursor.Next(ctx) {
		var entry types.KnowledgeEntry
		if err := cursor.Decode(&entry); err != nil {
			log.Printf("Skipping unparseable KB record: %v", err)
			continue
		}
		if entry.URL == "" {
			entry.URL = r.entryURL(entry.ID)
		}
		entries = append(entries, entry)
	}
	return entries, cursor.Err()
}

func (r *kbRepo) entryURL(id string) string {
	if r.kbBaseURL == "" {
		return ""
	}
	return r.kbBaseURL + "/" + id
}
