package main

import (
	"fmt"
	"os"

	"github.com/night-slayer18/ugit/internal/gitcore"
	"github.com/night-slayer18/ugit/internal/termcolor"
)

func runDiff(repo *gitcore.Repository, args []string, cw *termcolor.Writer) int {
	stat := false
	var revs []string

	for _, arg := range args {
		if arg == "--stat" {
			stat = true
		} else {
			revs = append(revs, arg)
		}
	}

	if len(revs) != 2 {
		fmt.Fprintln(os.Stderr, "usage: ugit diff [--stat] <commit1> <commit2>")
		return 1
	}

	hash1, err := resolveRevision(repo, revs[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 128
	}
	hash2, err := resolveRevision(repo, revs[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 128
	}

	diff, err := repo.Diff(hash1, hash2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 128
	}

	if stat {
		printDiffStat(diff)
		return 0
	}

	for _, e := range diff.Entries {
		switch e.Status {
		case gitcore.DiffAdded:
			fmt.Println(cw.Green(fmt.Sprintf("added:    %s (%s)", e.Path, e.New.Short())))
		case gitcore.DiffModified:
			fmt.Println(cw.Yellow(fmt.Sprintf("modified: %s (%s -> %s)", e.Path, e.Old.Short(), e.New.Short())))
		case gitcore.DiffDeleted:
			fmt.Println(cw.Red(fmt.Sprintf("deleted:  %s (%s)", e.Path, e.Old.Short())))
		}
	}
	return 0
}

func printDiffStat(diff *gitcore.TreeDiff) {
	if len(diff.Entries) == 0 {
		return
	}
	maxNameLen := 0
	for _, e := range diff.Entries {
		if len(e.Path) > maxNameLen {
			maxNameLen = len(e.Path)
		}
	}
	for _, e := range diff.Entries {
		fmt.Printf(" %-*s | %s\n", maxNameLen, e.Path, e.Status)
	}
	added, modified, deleted := diff.Stat()
	fmt.Printf(" %d file(s) changed, %d added, %d modified, %d deleted\n",
		len(diff.Entries), added, modified, deleted)
}
