/*
Copyright © 2025 quentinbedos-gif
*/
package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/quentinbedos-gif/ops-help-raul/config"
	"github.com/quentinbedos-gif/ops-help-raul/database"
	"github.com/quentinbedos-gif/ops-help-raul/repository"
)

// initStoreCmd represents the init-store command
var initStoreCmd = &cobra.Command{
	Use:   "init-store",
	Short: "Initialize the knowledge store schema",
	Long: `Creates the KnowledgeEntry class (Weaviate) or the text index (MongoDB)
for the configured backend. With --recreate the Weaviate class is dropped
first, deleting all entries.`,
	Run: func(cmd *cobra.Command, args []string) {
		recreate, _ := cmd.Flags().GetBool("recreate")

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		ctx := context.Background()
		switch cfg.Store.Backend {
		case "weaviate":
			store, err := database.NewWeaviateKBStore(cfg.Store.Weaviate, cfg.Store.KBBaseURL)
			if err != nil {
				log.Fatalf("Failed to connect to Weaviate: %v", err)
			}
			if recreate {
				if err := store.ReInit(); err != nil {
					log.Fatalf("Failed to recreate KnowledgeEntry class: %v", err)
				}
			}
		case "mongo":
			client, err := database.ConnectMongo(ctx, cfg.Store.MongoURI)
			if err != nil {
				log.Fatalf("Failed to connect to MongoDB: %v", err)
			}
			collection := client.Database(cfg.Store.MongoDatabase).Collection(cfg.Store.MongoCollection)
			if err := repository.EnsureIndexes(ctx, collection); err != nil {
				log.Fatalf("Failed to create KB indexes: %v", err)
			}
		default:
			log.Fatalf("Unknown store backend: %s", cfg.Store.Backend)
		}
		log.Println("Knowledge store initialized")
	},
}

func init() {
	rootCmd.AddCommand(initStoreCmd)
	initStoreCmd.Flags().BoolP("recreate", "r", false, "Drop and recreate the store schema")
}
