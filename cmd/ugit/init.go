package main

import (
	"fmt"
	"os"

	"github.com/night-slayer18/ugit/internal/gitcore"
)

func runInit(args []string) int {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 128
	}

	repo, err := gitcore.Init(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 128
	}

	fmt.Printf("Initialized empty ugit repository in %s\n", repo.GitDir())
	return 0
}
