package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/night-slayer18/ugit/internal/gitcore"
)

func runCommit(repo *gitcore.Repository, args []string) int {
	var message, author string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-m", "--message":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "error: -m requires a value")
				return 1
			}
			i++
			message = args[i]
		case "--author":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "error: --author requires a value")
				return 1
			}
			i++
			author = args[i]
		default:
			fmt.Fprintf(os.Stderr, "error: unknown option: %q\n", args[i])
			return 1
		}
	}

	if strings.TrimSpace(message) == "" {
		fmt.Fprintln(os.Stderr, "error: commit message required (-m)")
		return 1
	}

	hash, err := repo.Commit(gitcore.CommitOptions{Message: message, Author: author})
	if err != nil {
		if errors.Is(err, gitcore.ErrEmptyIndex) {
			fmt.Println("nothing to commit")
			return 0
		}
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 128
	}

	fmt.Printf("Committed %s\n", hash.Short())
	return 0
}
