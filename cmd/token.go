/*
Copyright © 2025 quentinbedos-gif
*/
package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/quentinbedos-gif/ops-help-raul/config"
	"github.com/quentinbedos-gif/ops-help-raul/utils"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an API token for the HTTP endpoints",
	Run: func(cmd *cobra.Command, args []string) {
		subject, _ := cmd.Flags().GetString("subject")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if cfg.JWTSecret == "" {
			log.Fatal("JWT_SECRET is not configured")
		}

		token, err := utils.CreateAPIToken(cfg.JWTSecret, subject, ttl)
		if err != nil {
			log.Fatalf("Failed to create token: %v", err)
		}
		fmt.Println(token)
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringP("subject", "s", "api", "Token subject")
	tokenCmd.Flags().Duration("ttl", 30*24*time.Hour, "Token lifetime")
}
