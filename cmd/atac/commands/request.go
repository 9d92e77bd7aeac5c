package commands

import (
	"fmt"

	"atac/internal/model"
	"atac/internal/workspace"
)

const requestUsageText = "usage: atac request <info|new|delete|rename|url|method|params|auth|headers|body|scripts|send|settings>"

// Request dispatches the "request" subcommand family against ws.
func Request(ws *workspace.Workspace, args []string) {
	if len(args) == 0 {
		printUsage(requestUsageText)
		return
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "help", "-h", "--help":
		printUsage(requestUsageText)
	case "info":
		requestInfo(ws, rest)
	case "new":
		requestNew(ws, rest)
	case "delete":
		requestDelete(ws, rest)
	case "rename":
		requestRename(ws, rest)
	case "url":
		requestURL(ws, rest)
	case "method":
		requestMethod(ws, rest)
	case "params":
		requestParams(ws, rest)
	case "auth":
		requestAuthCmd(ws, rest)
	case "headers":
		requestHeaders(ws, rest)
	case "body":
		requestBodyCmd(ws, rest)
	case "scripts":
		requestScriptsCmd(ws, rest)
	case "settings":
		requestSettingsCmd(ws, rest)
	case "send":
		requestSend(ws, rest)
	default:
		printUnknown("request", cmd)
		printUsage(requestUsageText)
	}
}

func requestInfo(ws *workspace.Workspace, args []string) {
	if len(args) != 2 {
		printUsage("usage: atac request info <collection> <request>")
		return
	}
	req, err := ws.GetRequest(args[0], args[1])
	if err != nil {
		fatal(err)
	}
	fmt.Printf("name:     %s\n", req.Name)
	fmt.Printf("protocol: %s\n", req.Protocol)
	fmt.Printf("method:   %s\n", req.Method)
	fmt.Printf("url:      %s\n", req.URL)
	fmt.Printf("auth:     %s\n", req.Auth.Kind)
	fmt.Printf("body:     %s\n", req.Body.Kind)
}

func requestNew(ws *workspace.Workspace, args []string) {
	if len(args) != 2 {
		printUsage("usage: atac request new <collection> <request>")
		return
	}
	req, err := ws.CreateRequest(args[0], args[1])
	if err != nil {
		fatal(err)
	}
	fmt.Printf("created request %s in %s\n", req.Name, args[0])
}

func requestDelete(ws *workspace.Workspace, args []string) {
	if len(args) != 2 {
		printUsage("usage: atac request delete <collection> <request>")
		return
	}
	if err := ws.DeleteRequest(args[0], args[1]); err != nil {
		fatal(err)
	}
	fmt.Printf("deleted request %s from %s\n", args[1], args[0])
}

func requestRename(ws *workspace.Workspace, args []string) {
	if len(args) != 3 {
		printUsage("usage: atac request rename <collection> <old> <new>")
		return
	}
	if err := ws.RenameRequest(args[0], args[1], args[2]); err != nil {
		fatal(err)
	}
	fmt.Printf("renamed request %s -> %s\n", args[1], args[2])
}

func requestURL(ws *workspace.Workspace, args []string) {
	if len(args) != 3 {
		printUsage("usage: atac request url <collection> <request> <url>")
		return
	}
	err := ws.UpdateRequest(args[0], args[1], func(r *model.Request) { r.URL = args[2] })
	if err != nil {
		fatal(err)
	}
}

func requestMethod(ws *workspace.Workspace, args []string) {
	if len(args) != 3 {
		printUsage("usage: atac request method <collection> <request> <METHOD>")
		return
	}
	err := ws.UpdateRequest(args[0], args[1], func(r *model.Request) { r.Method = args[2] })
	if err != nil {
		fatal(err)
	}
}

func requestParams(ws *workspace.Workspace, args []string) {
	if len(args) < 2 {
		printUsage("usage: atac request params <collection> <request> <list|add|set|delete>")
		return
	}
	kvCommand(ws, "params", args[0], args[1], args[2:],
		func(r *model.Request) model.KVList { return r.Params },
		func(r *model.Request, v model.KVList) { r.Params = v })
}

func requestHeaders(ws *workspace.Workspace, args []string) {
	if len(args) < 2 {
		printUsage("usage: atac request headers <collection> <request> <list|add|set|delete>")
		return
	}
	kvCommand(ws, "headers", args[0], args[1], args[2:],
		func(r *model.Request) model.KVList { return r.Headers },
		func(r *model.Request, v model.KVList) { r.Headers = v })
}

func requestAuthCmd(ws *workspace.Workspace, args []string) {
	if len(args) < 2 {
		printUsage("usage: atac request auth <collection> <request> [<none|basic|bearer|jwt|digest> [flags]]")
		return
	}
	requestAuth(ws, args[0], args[1], args[2:])
}

func requestBodyCmd(ws *workspace.Workspace, args []string) {
	if len(args) < 2 {
		printUsage("usage: atac request body <collection> <request> [<kind> [flags]]")
		return
	}
	requestBody(ws, args[0], args[1], args[2:])
}

func requestScriptsCmd(ws *workspace.Workspace, args []string) {
	if len(args) < 2 {
		printUsage("usage: atac request scripts <collection> <request> <pre|post> <file>")
		return
	}
	requestScripts(ws, args[0], args[1], args[2:])
}

func requestSettingsCmd(ws *workspace.Workspace, args []string) {
	if len(args) < 2 {
		printUsage("usage: atac request settings <collection> <request> [flags]")
		return
	}
	requestSettings(ws, args[0], args[1], args[2:])
}

func requestSend(ws *workspace.Workspace, args []string) {
	if len(args) != 2 {
		printUsage("usage: atac request send <collection> <request>")
		return
	}
	printResponse(ws, args[0], args[1])
}
