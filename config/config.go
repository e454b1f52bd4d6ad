package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/quentinbedos-gif/ops-help-raul/types"
)

type Config struct {
	Port       string           `mapstructure:"port"`
	AIProvider string           `mapstructure:"ai_provider"`
	AIEndpoint string           `mapstructure:"ai_endpoint"`
	Model      string           `mapstructure:"model"`
	MaxTokens  int              `mapstructure:"max_tokens"`
	OpenAIKey  string           `mapstructure:"OPENAI_API_KEY"`
	GeminiKeys []string         `mapstructure:"gemini_api_keys"`
	JWTSecret  string           `mapstructure:"JWT_SECRET"`
	Slack      SlackConfig      `mapstructure:"slack"`
	Escalation EscalationConfig `mapstructure:"escalation"`
	Store      StoreConfig      `mapstructure:"store"`
	Retrieval  RetrievalConfig  `mapstructure:"retrieval"`

	// Classification tables. Defaults ship in knowledge.go and may be
	// overridden from the config file per deployment or language.
	StopWords  []string                 `mapstructure:"stop_words"`
	Categories []types.CategoryKeywords `mapstructure:"categories"`
}

type SlackConfig struct {
	BotToken  string `mapstructure:"SLACK_BOT_TOKEN"`
	AppToken  string `mapstructure:"SLACK_APP_TOKEN"`
	ChannelID string `mapstructure:"channel_id"`
}

// EscalationConfig holds the Slack user IDs tagged when the bot cannot answer.
type EscalationConfig struct {
	PaulHenriID  string `mapstructure:"PAUL_HENRI_SLACK_ID"`
	ConstantinID string `mapstructure:"CONSTANTIN_SLACK_ID"`
}

type StoreConfig struct {
	Backend         string              `mapstructure:"backend"` // mongo or weaviate
	MongoURI        string              `mapstructure:"MONGODB_URI"`
	MongoDatabase   string              `mapstructure:"mongo_database"`
	MongoCollection string              `mapstructure:"mongo_collection"`
	KBBaseURL       string              `mapstructure:"kb_base_url"`
	Weaviate        WeaviateStoreConfig `mapstructure:"weaviate"`
}

type WeaviateStoreConfig struct {
	Host   string `mapstructure:"host"`
	APIKey string `mapstructure:"WEAVIATE_APIKEY"`
}

type RetrievalConfig struct {
	MaxResults int `mapstructure:"max_results"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("ai_provider", "openai")
	v.SetDefault("model", "gpt-4o")
	v.SetDefault("max_tokens", 1500)
	v.SetDefault("store.backend", "mongo")
	v.SetDefault("store.mongo_database", "opshelp")
	v.SetDefault("store.mongo_collection", "kb_entries")
	v.SetDefault("retrieval.max_results", 8)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("slack.SLACK_BOT_TOKEN", "SLACK_BOT_TOKEN")
	v.BindEnv("slack.SLACK_APP_TOKEN", "SLACK_APP_TOKEN")
	v.BindEnv("escalation.PAUL_HENRI_SLACK_ID", "PAUL_HENRI_SLACK_ID")
	v.BindEnv("escalation.CONSTANTIN_SLACK_ID", "CONSTANTIN_SLACK_ID")
	v.BindEnv("store.MONGODB_URI", "MONGODB_URI")
	v.BindEnv("store.weaviate.WEAVIATE_APIKEY", "WEAVIATE_APIKEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if len(config.StopWords) == 0 {
		config.StopWords = DefaultStopWords
	}
	if len(config.Categories) == 0 {
		config.Categories = DefaultCategories
	}

	return &config, nil
}
