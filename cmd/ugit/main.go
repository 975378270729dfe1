package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/night-slayer18/ugit/internal/cli"
	"github.com/night-slayer18/ugit/internal/gitcore"
	"github.com/night-slayer18/ugit/internal/termcolor"
)

// Build-time variables set via -ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	gf, args := parseGlobalFlags(os.Args[1:])

	for _, a := range args {
		if a == "--version" {
			printVersion()
			os.Exit(0)
		}
	}

	cw := termcolor.NewWriter(os.Stdout, gf.colorMode)

	app := cli.NewApp("ugit", version)
	app.Stderr = os.Stderr

	// repo is declared here and assigned after dispatch determines that the
	// matched command needs it (NeedsRepo). Closures capture the pointer
	// variable, which is populated before they execute.
	var repo *gitcore.Repository

	app.Register(&cli.Command{
		Name:    "init",
		Summary: "Create a new ugit repository",
		Usage:   "ugit init [path]",
		Run:     func(args []string) int { return runInit(args) },
	})

	app.Register(&cli.Command{
		Name:      "add",
		Summary:   "Stage files or directories",
		Usage:     "ugit add <path>...",
		Examples:  []string{"ugit add file.txt", "ugit add src/"},
		NeedsRepo: true,
		Run:       func(args []string) int { return runAdd(repo, args) },
	})

	app.Register(&cli.Command{
		Name:      "commit",
		Summary:   "Record staged changes",
		Usage:     "ugit commit -m <message> [--author <name>]",
		Examples:  []string{"ugit commit -m \"first commit\""},
		NeedsRepo: true,
		Run:       func(args []string) int { return runCommit(repo, args) },
	})

	app.Register(&cli.Command{
		Name:      "status",
		Summary:   "Show working tree status",
		Usage:     "ugit status [-s|--porcelain] [--watch]",
		Examples:  []string{"ugit status", "ugit status --porcelain", "ugit status --watch"},
		NeedsRepo: true,
		Run:       func(args []string) int { return runStatus(repo, args, cw) },
	})

	app.Register(&cli.Command{
		Name:      "log",
		Summary:   "Show commit log",
		Usage:     "ugit log [--oneline] [-n <count>]",
		Examples:  []string{"ugit log", "ugit log --oneline -n5"},
		NeedsRepo: true,
		Run:       func(args []string) int { return runLog(repo, args, cw) },
	})

	app.Register(&cli.Command{
		Name:      "checkout",
		Summary:   "Switch the working directory to a branch or commit",
		Usage:     "ugit checkout [--branch] <name-or-hash>",
		Examples:  []string{"ugit checkout main", "ugit checkout --branch feature", "ugit checkout a1b2c3d"},
		NeedsRepo: true,
		Run:       func(args []string) int { return runCheckout(repo, args) },
	})

	app.Register(&cli.Command{
		Name:      "diff",
		Summary:   "Show file-level differences between two commits",
		Usage:     "ugit diff [--stat] <commit1> <commit2>",
		Examples:  []string{"ugit diff a1b2c3d HEAD", "ugit diff --stat main dev"},
		NeedsRepo: true,
		Run:       func(args []string) int { return runDiff(repo, args, cw) },
	})

	app.Register(&cli.Command{
		Name:    "version",
		Summary: "Show version information",
		Usage:   "ugit version",
		Run:     func([]string) int { printVersion(); return 0 },
	})

	if len(args) > 0 {
		cmd := app.Lookup(args[0])
		if cmd != nil && cmd.NeedsRepo {
			repoPath := os.Getenv("UGIT_DIR")
			if repoPath == "" {
				repoPath = "."
			}
			var err error
			repo, err = gitcore.Open(repoPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
				os.Exit(128)
			}
		}
	}

	os.Exit(app.Run(args, cw))
}

func printVersion() {
	fmt.Printf("ugit %s\n", version)
	fmt.Printf("  commit:     %s\n", commit)
	fmt.Printf("  built:      %s\n", buildDate)
	fmt.Printf("  go version: %s\n", runtime.Version())
	fmt.Printf("  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
