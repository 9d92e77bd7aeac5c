// Command atac is a terminal-native HTTP/WebSocket API workbench. This
// binary is a thin wrapper over internal/workspace's Facade (§6), following
// the same flat dispatch-table pattern as the teacher's si CLI.
package main

import (
	"os"
)

func main() {
	args := os.Args[1:]
	g, rest, err := parseGlobalFlags(args)
	if err != nil {
		fatal(err)
	}
	if len(rest) == 0 {
		usage()
		os.Exit(1)
	}
	cmd := rest[0]
	cmdArgs := rest[1:]

	if !dispatchRootCommand(g, cmd, cmdArgs) {
		printUnknown("", cmd)
		usage()
		os.Exit(1)
	}
}
