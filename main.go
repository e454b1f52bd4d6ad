/*
Copyright © 2025 quentinbedos-gif
*/
package main

import (
	"github.com/joho/godotenv"

	"github.com/quentinbedos-gif/ops-help-raul/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	// Secrets come from the environment; a local .env is optional.
	godotenv.Load()
}
