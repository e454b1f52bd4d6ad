/*
Copyright © 2025 quentinbedos-gif
*/
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quentinbedos-gif/ops-help-raul/config"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Ask a question from the command line",
	Long: `Runs the full answer pipeline for one question, or starts an interactive
prompt when no question is given. Useful for testing without Slack.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		ctx := context.Background()
		agent, _, err := newAgent(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize agent: %v", err)
		}

		if len(args) > 0 {
			question := strings.Join(args, " ")
			fmt.Printf("\n--- Question: %s ---\n\n", question)
			fmt.Println(agent.Answer(ctx, question, ""))
			return
		}

		fmt.Println("Ops Help Raul - Mode Test CLI (tape 'quit' pour quitter)")
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("\nQuestion > ")
			if !scanner.Scan() {
				return
			}
			question := strings.TrimSpace(scanner.Text())
			if question == "quit" || question == "exit" || question == "q" {
				return
			}
			if question == "" {
				continue
			}
			fmt.Println("\nRecherche en cours...")
			fmt.Printf("\n%s\n", agent.Answer(ctx, question, ""))
		}
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
