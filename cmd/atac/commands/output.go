// Package commands implements the bodies of atac's subcommand families
// (collection, request, env, import, try, completions, man): one file per
// family, dispatched into from cmd/atac's flat root command table.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
)

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}

func printUsage(line string) {
	fmt.Println(strings.TrimSpace(line))
}

func printUnknown(kind, cmd string) {
	kind = strings.TrimSpace(kind)
	if kind != "" {
		kind += " "
	}
	fmt.Fprintf(os.Stderr, "unknown %scommand: %s\n", kind, cmd)
}

// table renders space-padded columns using display width, matching
// cmd/atac's own list output.
type table struct {
	headers []string
	rows    [][]string
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

func (t *table) addRow(cols ...string) {
	t.rows = append(t.rows, cols)
}

func (t *table) print() {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, c := range row {
			if i >= len(widths) {
				continue
			}
			if w := runewidth.StringWidth(c); w > widths[i] {
				widths[i] = w
			}
		}
	}

	writeRow := func(cols []string) {
		for i, c := range cols {
			if i >= len(widths) {
				continue
			}
			fmt.Print(c)
			if i != len(cols)-1 {
				fmt.Print(strings.Repeat(" ", widths[i]-runewidth.StringWidth(c)+2))
			}
		}
		fmt.Println()
	}

	writeRow(t.headers)
	for _, row := range t.rows {
		writeRow(row)
	}
}
