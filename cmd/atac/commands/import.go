package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"atac/internal/importer"
	"atac/internal/workspace"
)

const importUsageText = "usage: atac import <postman|curl|openapi> <path> [--name NAME]"

// Import dispatches the "import" subcommand family against ws.
func Import(ws *workspace.Workspace, args []string) {
	if len(args) == 0 {
		printUsage(importUsageText)
		return
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "help", "-h", "--help":
		printUsage(importUsageText)
	case "postman":
		importPostman(ws, rest)
	case "curl":
		importCurl(ws, rest)
	case "openapi":
		importOpenAPI(ws, rest)
	default:
		printUnknown("import", cmd)
		printUsage(importUsageText)
	}
}

func defaultImportName(path, name string) string {
	if name != "" {
		return name
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func printImportResult(idx *importer.CollectionIndex) {
	fmt.Printf("imported collection %s (%d requests)\n", idx.Collection.Name, len(idx.Collection.Requests))
	for _, w := range idx.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
}

func importPostman(ws *workspace.Workspace, args []string) {
	fs := flag.NewFlagSet("import postman", flag.ExitOnError)
	name := fs.String("name", "", "name for the imported collection (default: file name)")
	fs.Parse(args)
	if fs.NArg() != 1 {
		printUsage("usage: atac import postman <file> [--name NAME]")
		return
	}
	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		fatal(err)
	}
	idx, err := ws.ImportPostman(data, defaultImportName(path, *name))
	if err != nil {
		fatal(err)
	}
	printImportResult(idx)
}

func importCurl(ws *workspace.Workspace, args []string) {
	fs := flag.NewFlagSet("import curl", flag.ExitOnError)
	name := fs.String("name", "", "name for the imported collection (default: file name)")
	fs.Parse(args)
	if fs.NArg() != 1 {
		printUsage("usage: atac import curl <path> [--name NAME]")
		return
	}
	path := fs.Arg(0)
	idx, err := ws.ImportCurl(path, defaultImportName(path, *name))
	if err != nil {
		fatal(err)
	}
	printImportResult(idx)
}

func importOpenAPI(ws *workspace.Workspace, args []string) {
	fs := flag.NewFlagSet("import openapi", flag.ExitOnError)
	name := fs.String("name", "", "name for the imported collection (default: file name)")
	fs.Parse(args)
	if fs.NArg() != 1 {
		printUsage("usage: atac import openapi <file> [--name NAME]")
		return
	}
	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		fatal(err)
	}
	idx, err := ws.ImportOpenAPI(data, defaultImportName(path, *name))
	if err != nil {
		fatal(err)
	}
	printImportResult(idx)
}
