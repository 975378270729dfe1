package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/night-slayer18/ugit/internal/gitcore"
	"github.com/night-slayer18/ugit/internal/termcolor"
)

func runLog(repo *gitcore.Repository, args []string, cw *termcolor.Writer) int {
	maxCount := 0
	oneline := false

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--oneline":
			oneline = true
		case args[i] == "-n" && i+1 < len(args):
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: invalid -n value: %q\n", args[i])
				return 1
			}
			maxCount = n
		case strings.HasPrefix(args[i], "-n"):
			n, err := strconv.Atoi(args[i][2:])
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: invalid -n value: %q\n", args[i][2:])
				return 1
			}
			maxCount = n
		default:
			fmt.Fprintf(os.Stderr, "error: unknown option: %q\n", args[i])
			return 1
		}
	}

	entries, err := repo.Log("", maxCount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 128
	}
	if len(entries) == 0 {
		return 0
	}

	head, _ := repo.Head()

	for i, e := range entries {
		decor := ""
		if e.Hash == head.Commit {
			switch head.Kind {
			case gitcore.HeadSymbolic, gitcore.HeadUnborn:
				decor = " " + cw.Yellow("(") + cw.BoldCyan("HEAD -> ") + cw.Green(head.Branch) + cw.Yellow(")")
			case gitcore.HeadDetached:
				decor = " " + cw.Yellow("(") + cw.BoldCyan("HEAD") + cw.Yellow(")")
			}
		}

		if oneline {
			fmt.Printf("%s%s %s\n", cw.Yellow(e.Hash.Short()), decor, firstLine(e.Commit.Message))
			continue
		}

		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s %s%s\n", cw.Yellow("commit"), cw.Yellow(string(e.Hash)), decor)
		fmt.Printf("Author: %s\n", e.Commit.Author)
		fmt.Printf("Date:   %s\n", ugitDateFormat(e.Commit.Timestamp))
		fmt.Println()
		for _, line := range strings.Split(e.Commit.Message, "\n") {
			fmt.Printf("    %s\n", line)
		}
	}

	return 0
}

func firstLine(msg string) string {
	if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
		return msg[:idx]
	}
	return msg
}
