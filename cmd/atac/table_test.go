package main

import (
	"strings"
	"testing"
)

func TestTableRenderAlignsColumns(t *testing.T) {
	tbl := newTable("NAME", "METHOD")
	tbl.addRow("get-me", "GET")
	tbl.addRow("create-widget-long-name", "POST")
	out := tbl.render()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines: %q", len(lines), out)
	}
	for _, line := range lines {
		if !strings.Contains(line, "METHOD") && !strings.Contains(line, "GET") && !strings.Contains(line, "POST") {
			t.Fatalf("unexpected row shape: %q", line)
		}
	}
}

func TestTableRenderEmptyRows(t *testing.T) {
	tbl := newTable("A", "B")
	out := tbl.render()
	if strings.TrimRight(out, "\n") != "A  B" {
		t.Fatalf("got %q", out)
	}
}
