package cmd

import (
	"context"
	"fmt"

	"github.com/quentinbedos-gif/ops-help-raul/config"
	"github.com/quentinbedos-gif/ops-help-raul/database"
	"github.com/quentinbedos-gif/ops-help-raul/repository"
	"github.com/quentinbedos-gif/ops-help-raul/service"
)

// newKnowledgeStore builds the configured store backend.
func newKnowledgeStore(ctx context.Context, cfg *config.Config) (database.KnowledgeStore, error) {
	switch cfg.Store.Backend {
	case "weaviate":
		return database.NewWeaviateKBStore(cfg.Store.Weaviate, cfg.Store.KBBaseURL)
	case "mongo":
		client, err := database.ConnectMongo(ctx, cfg.Store.MongoURI)
		if err != nil {
			return nil, err
		}
		collection := client.Database(cfg.Store.MongoDatabase).Collection(cfg.Store.MongoCollection)
		if err := repository.EnsureIndexes(ctx, collection); err != nil {
			return nil, fmt.Errorf("failed to create KB indexes: %v", err)
		}
		return repository.NewKBRepo(collection, cfg.Store.KBBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}

// newAIService builds the configured generation provider.
func newAIService(cfg *config.Config) (service.AIService, error) {
	switch cfg.AIProvider {
	case "openai":
		return service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIKey, cfg.Model, cfg.MaxTokens), nil
	case "gemini":
		return service.NewGeminiService(cfg.GeminiKeys, cfg.Model, cfg.MaxTokens)
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", cfg.AIProvider)
	}
}

// newAgent wires the full answer pipeline.
func newAgent(ctx context.Context, cfg *config.Config) (*service.Agent, *service.Retriever, error) {
	store, err := newKnowledgeStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	ai, err := newAIService(cfg)
	if err != nil {
		return nil, nil, err
	}

	extractor := service.NewKeywordExtractor(cfg.StopWords)
	classifier := service.NewCategoryClassifier(cfg.Categories)
	retriever := service.NewRetriever(store, extractor, classifier, cfg.Retrieval.MaxResults)
	guard := service.NewDuplicateGuard(store, extractor)
	post := service.NewPostProcessor(store, guard, classifier, extractor, cfg.Escalation)

	return service.NewAgent(retriever, ai, post, cfg.Escalation), retriever, nil
}
