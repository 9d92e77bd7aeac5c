package commands

import (
	"flag"
	"fmt"
	"os"

	"atac/internal/model"
	"atac/internal/workspace"
)

func requestBody(ws *workspace.Workspace, colName, reqName string, args []string) {
	if len(args) == 0 {
		printBody(ws, colName, reqName)
		return
	}
	kind, rest := args[0], args[1:]
	switch model.BodyKind(kind) {
	case model.BodyNone:
		setBody(ws, colName, reqName, model.Body{Kind: model.BodyNone})
	case model.BodyRaw, model.BodyJSON, model.BodyXML, model.BodyHTML, model.BodyJavascript:
		fs := flag.NewFlagSet("request body "+kind, flag.ExitOnError)
		text := fs.String("text", "", "inline body text")
		file := fs.String("file", "", "read body text from a file")
		fs.Parse(rest)
		payload := *text
		if *file != "" {
			data, err := os.ReadFile(*file)
			if err != nil {
				fatal(err)
			}
			payload = string(data)
		}
		setBody(ws, colName, reqName, model.Body{Kind: model.BodyKind(kind), Text: payload})
	case model.BodyForm, model.BodyMultipart:
		fs := flag.NewFlagSet("request body "+kind, flag.ExitOnError)
		var entries kvEntries
		fs.Var(&entries, "entry", "key=value entry, repeatable")
		fs.Parse(rest)
		setBody(ws, colName, reqName, model.Body{Kind: model.BodyKind(kind), Entries: entries.list})
	case model.BodyFile:
		fs := flag.NewFlagSet("request body file", flag.ExitOnError)
		path := fs.String("path", "", "path whose contents form the body")
		fs.Parse(rest)
		setBody(ws, colName, reqName, model.Body{Kind: model.BodyFile, Path: *path})
	default:
		printUnknown("request body", kind)
		printUsage("usage: atac request body <collection> <request> <none|raw|json|xml|html|javascript|form|multipart|file> [flags]")
	}
}

func setBody(ws *workspace.Workspace, colName, reqName string, body model.Body) {
	if err := ws.UpdateRequest(colName, reqName, func(r *model.Request) { r.Body = body }); err != nil {
		fatal(err)
	}
}

func printBody(ws *workspace.Workspace, colName, reqName string) {
	req, err := ws.GetRequest(colName, reqName)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("kind: %s\n", req.Body.Kind)
	switch req.Body.Kind {
	case model.BodyFile:
		fmt.Printf("path: %s\n", req.Body.Path)
	case model.BodyForm, model.BodyMultipart:
		kvList(req.Body.Entries)
	default:
		fmt.Println(req.Body.Text)
	}
}
