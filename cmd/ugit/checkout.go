package main

import (
	"fmt"
	"os"

	"github.com/night-slayer18/ugit/internal/gitcore"
	"github.com/night-slayer18/ugit/internal/progress"
)

func runCheckout(repo *gitcore.Repository, args []string) int {
	branchFlag := false
	var target string
	for _, arg := range args {
		if arg == "--branch" {
			branchFlag = true
			continue
		}
		target = arg
	}

	if target == "" {
		fmt.Fprintln(os.Stderr, "usage: ugit checkout [--branch] <name-or-hash>")
		return 1
	}

	spin := progress.New("checking out " + target)
	spin.Start()
	defer spin.Stop()

	if branchFlag {
		if err := repo.CheckoutBranch(target); err != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
			return 128
		}
		fmt.Printf("Switched to branch '%s'\n", target)
		return 0
	}

	if tip, err := repo.Refs().ReadBranch(target); err == nil && !tip.IsZero() {
		if err := repo.CheckoutBranch(target); err != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
			return 128
		}
		fmt.Printf("Switched to branch '%s'\n", target)
		return 0
	}

	hash, err := resolveRevision(repo, target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 128
	}
	if err := repo.CheckoutCommit(hash); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 128
	}
	fmt.Printf("HEAD is now detached at %s\n", hash.Short())
	return 0
}
