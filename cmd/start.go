/*
Copyright © 2025 quentinbedos-gif
*/
package cmd

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quentinbedos-gif/ops-help-raul/config"
	"github.com/quentinbedos-gif/ops-help-raul/handler"
	"github.com/quentinbedos-gif/ops-help-raul/middleware"
	"github.com/quentinbedos-gif/ops-help-raul/slack"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Slack bot and the HTTP API",
	Long:  `Connects to Slack in Socket Mode, answers questions on the configured channel, and serves the HTTP API.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		agent, retriever, err := newAgent(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize agent: %v", err)
		}

		// HTTP API
		askHandler := handler.NewAskHandler(agent)
		searchHandler := handler.NewSearchHandler(retriever)
		auth := middleware.AuthMiddleware(cfg.JWTSecret)

		mux := http.NewServeMux()
		mux.Handle("/health", handler.Health())
		mux.Handle("/api/v1/ask", auth(askHandler.HandleAsk()))
		mux.Handle("/api/v1/kb/search", auth(searchHandler.HandleSearch()))

		go func() {
			log.Printf("Starting server on port %s...", cfg.Port)
			if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil {
				log.Fatalf("Server error: %v", err)
			}
		}()

		// Slack Socket Mode
		slackClient := slack.NewClient(cfg.Slack.BotToken, cfg.Slack.AppToken)
		listener := slack.NewListener(slackClient, agent, cfg.Slack.ChannelID)
		if err := listener.Run(ctx); err != nil && ctx.Err() == nil {
			log.Fatalf("Slack listener error: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
