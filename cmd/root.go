/*
Copyright © 2025 quentinbedos-gif
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ops-help-raul",
	Short: "RevOps Q&A assistant for the #help_raul Slack channel",
	Long: `Ops Help Raul answers RevOps questions by retrieving entries from the
knowledge base, building a prompt, and calling a generative model. It runs as
a Slack Socket Mode bot with an HTTP API on the side, and captures
undocumented questions as placeholder KB entries.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config/config.yaml", "config file")
}
