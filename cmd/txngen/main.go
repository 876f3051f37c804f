package main

import (
	"os"

	"github.com/vaku568/FinBuddy-AI/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
