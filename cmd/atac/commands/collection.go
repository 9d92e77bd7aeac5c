package commands

import (
	"flag"
	"fmt"

	"atac/internal/model"
	"atac/internal/workspace"
)

const collectionUsageText = "usage: atac collection <list|info|new|delete|rename|send>"

// Collection dispatches the "collection" subcommand family against ws.
func Collection(ws *workspace.Workspace, args []string) {
	if len(args) == 0 {
		printUsage(collectionUsageText)
		return
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "help", "-h", "--help":
		printUsage(collectionUsageText)
	case "list":
		collectionList(ws, rest)
	case "info":
		collectionInfo(ws, rest)
	case "new":
		collectionNew(ws, rest)
	case "delete":
		collectionDelete(ws, rest)
	case "rename":
		collectionRename(ws, rest)
	case "send":
		collectionSend(ws, rest)
	default:
		printUnknown("collection", cmd)
		printUsage(collectionUsageText)
	}
}

func collectionList(ws *workspace.Workspace, args []string) {
	cols := ws.ListCollections()
	tbl := newTable("NAME", "REQUESTS", "FORMAT", "PATH")
	for _, c := range cols {
		tbl.addRow(c.Name, fmt.Sprintf("%d", len(c.Requests)), string(c.Format), c.Path)
	}
	tbl.print()
}

func collectionInfo(ws *workspace.Workspace, args []string) {
	if len(args) != 1 {
		printUsage("usage: atac collection info <name>")
		return
	}
	col, err := ws.GetCollection(args[0])
	if err != nil {
		fatal(err)
	}
	fmt.Printf("name:     %s\n", col.Name)
	fmt.Printf("format:   %s\n", col.Format)
	fmt.Printf("path:     %s\n", col.Path)
	fmt.Printf("requests: %d\n", len(col.Requests))
	if sel := col.SelectedRequest(); sel != nil {
		fmt.Printf("selected: %s\n", sel.Name)
	}
	for _, r := range col.Requests {
		fmt.Printf("  - %s %s %s\n", r.Method, r.Name, r.URL)
	}
}

func collectionNew(ws *workspace.Workspace, args []string) {
	fs := flag.NewFlagSet("collection new", flag.ExitOnError)
	format := fs.String("format", "json", "storage format (json|yaml)")
	fs.Parse(args)
	if fs.NArg() != 1 {
		printUsage("usage: atac collection new <name> [--format json|yaml]")
		return
	}
	ff, ok := model.ParseFileFormat(*format)
	if !ok {
		fatal(fmt.Errorf("unrecognized --format %q", *format))
	}
	col, err := ws.CreateCollection(fs.Arg(0), ff)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("created collection %s (%s)\n", col.Name, col.Path)
}

func collectionDelete(ws *workspace.Workspace, args []string) {
	if len(args) != 1 {
		printUsage("usage: atac collection delete <name>")
		return
	}
	if err := ws.DeleteCollection(args[0]); err != nil {
		fatal(err)
	}
	fmt.Printf("deleted collection %s\n", args[0])
}

func collectionRename(ws *workspace.Workspace, args []string) {
	if len(args) != 2 {
		printUsage("usage: atac collection rename <old> <new>")
		return
	}
	if err := ws.RenameCollection(args[0], args[1]); err != nil {
		fatal(err)
	}
	fmt.Printf("renamed collection %s -> %s\n", args[0], args[1])
}

func collectionSend(ws *workspace.Workspace, args []string) {
	if len(args) != 2 {
		printUsage("usage: atac collection send <collection> <request>")
		return
	}
	printResponse(ws, args[0], args[1])
}
