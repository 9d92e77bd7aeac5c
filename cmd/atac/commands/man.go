package commands

import "fmt"

// Man prints a troff-formatted man page to stdout, generated from the same
// command table completions draws from.
func Man(args []string) {
	fmt.Print(".TH ATAC 1\n")
	fmt.Print(".SH NAME\n")
	fmt.Print("atac \\- a terminal-native HTTP and WebSocket API workbench\n")
	fmt.Print(".SH SYNOPSIS\n")
	fmt.Print(".B atac\n[global flags] <command> [args...]\n")
	fmt.Print(".SH COMMANDS\n")
	for _, cmd := range rootCommands {
		fmt.Printf(".TP\n.B %s\n", cmd)
		if subs, ok := subcommands[cmd]; ok {
			fmt.Printf("%s\n", joinWords(subs))
		}
	}
	fmt.Print(".SH GLOBAL FLAGS\n")
	fmt.Print(".TP\n.B --directory <dir>\nworkspace directory (default: $ATAC_MAIN_DIR or \".\")\n")
	fmt.Print(".TP\n.B --filter <regex>\nonly load collection files matching regex\n")
	fmt.Print(".TP\n.B --tui\naccepted and recorded; this binary has no terminal UI\n")
	fmt.Print(".TP\n.B --dry-run\nperform every operation without touching disk\n")
	fmt.Print(".TP\n.B --no-ansi-log\ndisable ANSI color in log/output\n")
}
