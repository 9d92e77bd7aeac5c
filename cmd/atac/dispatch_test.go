package main

import "testing"

func TestDispatchRootCommandAliases(t *testing.T) {
	expected := []string{
		"help", "-h", "--help",
		"version", "--version",
		"collection", "col",
		"request", "req",
		"env",
		"import",
		"try",
		"completions",
		"man",
	}
	for _, cmd := range expected {
		if _, ok := rootCommandHandlers[cmd]; !ok {
			t.Fatalf("missing root command alias: %s", cmd)
		}
	}
	if dispatchRootCommand(&globalFlags{}, "definitely-unknown-command", nil) {
		t.Fatalf("unknown command should not dispatch")
	}
}
