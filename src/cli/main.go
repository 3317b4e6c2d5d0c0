package main

import (
	"os"

	"github.com/tidyplan/guardrails/src/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
