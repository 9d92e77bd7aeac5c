package main

import "atac/cmd/atac/commands"

// rootCommandHandler mirrors the teacher's flat dispatch-table pattern
// (root_commands.go): one handler per top-level subcommand name, built
// once and looked up by string.
type rootCommandHandler func(g *globalFlags, args []string)

func buildRootCommandHandlers() map[string]rootCommandHandler {
	handlers := make(map[string]rootCommandHandler, 16)
	register := func(h rootCommandHandler, names ...string) {
		for _, n := range names {
			handlers[n] = h
		}
	}

	register(func(_ *globalFlags, _ []string) { usage() }, "help", "-h", "--help")
	register(func(_ *globalFlags, _ []string) { printVersion() }, "version", "--version")
	register(func(g *globalFlags, args []string) { commands.Collection(openWorkspace(g), args) }, "collection", "col")
	register(func(g *globalFlags, args []string) { commands.Request(openWorkspace(g), args) }, "request", "req")
	register(func(g *globalFlags, args []string) { commands.Env(openWorkspace(g), args) }, "env")
	register(func(g *globalFlags, args []string) { commands.Import(openWorkspace(g), args) }, "import")
	register(func(_ *globalFlags, args []string) { commands.Try(args) }, "try")
	register(func(_ *globalFlags, args []string) { commands.Completions(args) }, "completions")
	register(func(_ *globalFlags, args []string) { commands.Man(args) }, "man")

	return handlers
}

var rootCommandHandlers = buildRootCommandHandlers()

func dispatchRootCommand(g *globalFlags, cmd string, args []string) bool {
	handler, ok := rootCommandHandlers[cmd]
	if !ok {
		return false
	}
	handler(g, args)
	return true
}

const atacVersion = "v0.1.0"

func printVersion() { infof(atacVersion) }
