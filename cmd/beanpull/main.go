package main

import (
	"os"

	"github.com/beanpull-dev/beanpull/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
