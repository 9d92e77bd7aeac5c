package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// table renders space-padded columns using display width (not byte or rune
// count), the way nomad's CLI formats its column output — necessary once
// collection/request names carry multi-byte characters.
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

func (t *table) render() string {
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

	var b strings.Builder
	writeRow := func(cols []string) {
		for i, c := range cols {
			if i >= len(widths) {
				continue
			}
			pad := widths[i] - runewidth.StringWidth(c)
			b.WriteString(c)
			if i != len(cols)-1 {
				b.WriteString(strings.Repeat(" ", pad+2))
			}
		}
		b.WriteString("\n")
	}

	writeRow(t.headers)
	for _, row := range t.rows {
		writeRow(row)
	}
	return b.String()
}

func (t *table) print() { fmt.Print(t.render()) }
