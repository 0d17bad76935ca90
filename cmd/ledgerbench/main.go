package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/ledgerbench-dev/ledgerbench/internal/commands"
)

func main() {
	// Provider credentials commonly live in a local .env; missing is fine.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
