/*
Copyright © 2025 quentinbedos-gif
*/
package cmd

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/quentinbedos-gif/ops-help-raul/config"
	"github.com/quentinbedos-gif/ops-help-raul/types"
)

// importKbCmd represents the import-kb command
var importKbCmd = &cobra.Command{
	Use:   "import-kb",
	Short: "Batch import knowledge entries from a JSON file",
	Long: `Reads a JSON array of knowledge entries and creates them in the configured
store. Entries exported from the documentation workflow can be loaded this
way when bootstrapping a deployment.`,
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
		if filePath == "" {
			log.Fatal("--file is required")
		}

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		ctx := context.Background()
		store, err := newKnowledgeStore(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to knowledge store: %v", err)
		}

		data, err := os.ReadFile(filePath)
		if err != nil {
			log.Fatalf("Failed to read file: %v", err)
		}
		var entries []types.KnowledgeEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			log.Fatalf("Failed to parse entries: %v", err)
		}

		imported := 0
		for i := range entries {
			entry := entries[i]
			if entry.Title == "" {
				log.Printf("Skipping entry %d: empty title", i)
				continue
			}
			if entry.Language == "" {
				entry.Language = types.DefaultLanguage
			}
			created, err := store.CreateEntry(ctx, &entry)
			if err != nil {
				log.Printf("Failed to import entry %q: %v", entry.Title, err)
				continue
			}
			imported++
			log.Printf("Imported %q (%s)", entry.Title, created.ID)
		}
		log.Printf("Imported %d/%d entries", imported, len(entries))
	},
}

func init() {
	rootCmd.AddCommand(importKbCmd)
	importKbCmd.Flags().StringP("file", "f", "", "Path to the JSON file to import")
}
