package main

import (
	"os"

	"github.com/mattdeluco/later/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
