package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/night-slayer18/ugit/internal/gitcore"
	"github.com/night-slayer18/ugit/internal/progress"
)

func runAdd(repo *gitcore.Repository, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: ugit add <path>...")
		return 1
	}

	spin := progress.New("staging files")
	spin.Start()
	result, err := repo.Add(args)
	spin.Stop()

	if result != nil {
		paths := make([]string, 0, len(result.Files))
		for p := range result.Files {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			fmt.Printf("Staged %s (%s)\n", p, result.Files[p].Short())
		}
		for dir, n := range result.DirectoriesWalked {
			if n == 0 {
				fmt.Printf("No files added from directory '%s'\n", dir)
			} else {
				fmt.Printf("Added %d files from directory '%s'\n", n, dir)
			}
		}
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
