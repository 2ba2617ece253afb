package main

import (
	"os"

	"github.com/texspell/texspell/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
