package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/night-slayer18/ugit/internal/gitcore"
	"github.com/night-slayer18/ugit/internal/termcolor"
)

const (
	statusModified = "modified"
	statusDeleted  = "deleted"
)

func runStatus(repo *gitcore.Repository, args []string, cw *termcolor.Writer) int {
	porcelain := false
	watch := false
	for _, arg := range args {
		switch arg {
		case "-s", "--porcelain":
			porcelain = true
		case "--watch":
			watch = true
		}
	}

	if watch {
		return runStatusWatch(repo, porcelain, cw)
	}

	status, err := repo.ComputeStatus()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 128
	}
	printStatus(repo, status, porcelain, cw)
	return 0
}

func runStatusWatch(repo *gitcore.Repository, porcelain bool, cw *termcolor.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := repo.Watch(ctx, func(status *gitcore.Status) {
		fmt.Print("\033[H\033[2J") // clear screen between redraws
		printStatus(repo, status, porcelain, cw)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 128
	}
	return 130
}

func printStatus(repo *gitcore.Repository, status *gitcore.Status, porcelain bool, cw *termcolor.Writer) {
	sort.Slice(status.Files, func(i, j int) bool {
		return status.Files[i].Path < status.Files[j].Path
	})

	if porcelain {
		printPorcelain(status)
		return
	}
	printLongStatus(repo, status, cw)
}

func printPorcelain(status *gitcore.Status) {
	for _, f := range status.Files {
		x, y := statusCodes(f)
		fmt.Printf("%c%c %s\n", x, y, f.Path)
	}
}

func statusCodes(f gitcore.FileStatus) (x, y byte) {
	x, y = ' ', ' '

	if f.Untracked {
		return '?', '?'
	}

	switch f.IndexStatus {
	case "added":
		x = 'A'
	case statusModified:
		x = 'M'
	case statusDeleted:
		x = 'D'
	}

	switch f.WorkStatus {
	case statusModified:
		y = 'M'
	case statusDeleted:
		y = 'D'
	}

	return x, y
}

func printLongStatus(repo *gitcore.Repository, status *gitcore.Status, cw *termcolor.Writer) {
	head, err := repo.Head()
	if err == nil {
		switch head.Kind {
		case gitcore.HeadSymbolic, gitcore.HeadUnborn:
			fmt.Printf("On branch %s\n", head.Branch)
		case gitcore.HeadDetached:
			fmt.Printf("HEAD detached at %s\n", head.Commit.Short())
		}
	}

	var staged, unstaged, deleted, untracked []gitcore.FileStatus
	for _, f := range status.Files {
		if f.Untracked {
			untracked = append(untracked, f)
			continue
		}
		if f.IndexStatus != "" {
			staged = append(staged, f)
		}
		switch f.WorkStatus {
		case statusModified:
			unstaged = append(unstaged, f)
		case statusDeleted:
			deleted = append(deleted, f)
		}
	}

	if len(staged) > 0 {
		fmt.Println(cw.Green("Changes to be committed:"))
		for _, f := range staged {
			prefix := ""
			switch f.IndexStatus {
			case "added":
				prefix = "new file:   "
			case statusModified:
				prefix = "modified:   "
			case statusDeleted:
				prefix = "deleted:    "
			}
			fmt.Printf("\t%s\n", cw.Green(prefix+f.Path))
		}
		fmt.Println()
	}

	if len(unstaged) > 0 {
		fmt.Println(cw.Red("Changes not staged for commit:"))
		for _, f := range unstaged {
			fmt.Printf("\t%s\n", cw.Red("modified:   "+f.Path))
		}
		fmt.Println()
	}

	if len(deleted) > 0 {
		fmt.Println(cw.Red("Deleted files:"))
		for _, f := range deleted {
			fmt.Printf("\t%s\n", cw.Red(f.Path))
		}
		fmt.Println()
	}

	if len(untracked) > 0 {
		fmt.Println(cw.Yellow("Untracked files:"))
		for _, f := range untracked {
			fmt.Printf("\t%s\n", cw.Yellow(f.Path))
		}
		fmt.Println()
	}

	if len(staged) == 0 && len(unstaged) == 0 && len(deleted) == 0 && len(untracked) == 0 {
		fmt.Println("Nothing to commit, working tree clean")
	}
}
