package main

import (
	"fmt"
	"os"
	"regexp"
	"sync"

	"atac/internal/atacx/logging"
	"atac/internal/config"
	"atac/internal/workspace"
)

// globalFlags carries the flags named in §6: "Global flags: --directory,
// --filter (regex on collection filenames), --tui, --dry-run,
// --no-ansi-log, -v/-q".
type globalFlags struct {
	Directory string
	Filter    *regexp.Regexp
	TUI       bool
	DryRun    bool
	NoANSILog bool
	Verbose   bool
	Quiet     bool

	KeyBindings config.KeyBindings
}

// parseGlobalFlags consumes recognized global flags wherever they appear in
// args (before or after the subcommand) and returns the remaining arguments
// in their original order.
func parseGlobalFlags(args []string) (*globalFlags, []string, error) {
	g := &globalFlags{Directory: envOr("ATAC_MAIN_DIR", ".")}
	rest := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--directory":
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("--directory requires a value")
			}
			i++
			g.Directory = args[i]
		case a == "--filter":
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("--filter requires a value")
			}
			i++
			re, err := regexp.Compile(args[i])
			if err != nil {
				return nil, nil, fmt.Errorf("invalid --filter: %w", err)
			}
			g.Filter = re
		case a == "--tui":
			g.TUI = true
		case a == "--dry-run":
			g.DryRun = true
		case a == "--no-ansi-log":
			g.NoANSILog = true
			ansiEnabled = false
		case a == "-v":
			g.Verbose = true
		case a == "-q":
			g.Quiet = true
		default:
			rest = append(rest, a)
		}
	}
	if kbPath := os.Getenv("ATAC_KEY_BINDINGS"); kbPath != "" {
		kb, err := config.LoadKeyBindings(kbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("ATAC_KEY_BINDINGS: %w", err)
		}
		g.KeyBindings = kb
	}

	return g, rest, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

var (
	wsOnce sync.Once
	wsInst *workspace.Workspace
	wsErr  error
)

// openWorkspace lazily opens the workspace directory once per process run.
// Unless -q is given it installs a no-op event logger; no JSONL sink is
// opened, so no structured log is written either way.
func openWorkspace(g *globalFlags) *workspace.Workspace {
	wsOnce.Do(func() {
		wsInst, wsErr = workspace.Open(g.Directory, g.Filter, g.DryRun)
		if wsErr == nil && !g.Quiet {
			wsInst.UseLogger(logging.NoopLogger{})
		}
	})
	if wsErr != nil {
		fatal(wsErr)
	}
	return wsInst
}
