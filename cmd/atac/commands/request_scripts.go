package commands

import (
	"os"

	"atac/internal/model"
	"atac/internal/workspace"
)

func requestScripts(ws *workspace.Workspace, colName, reqName string, args []string) {
	if len(args) != 2 {
		printUsage("usage: atac request scripts <collection> <request> <pre|post> <file>")
		return
	}
	phase, path := args[0], args[1]
	data, err := os.ReadFile(path)
	if err != nil {
		fatal(err)
	}
	switch phase {
	case "pre":
		err = ws.UpdateRequest(colName, reqName, func(r *model.Request) { r.PreRequestScript = string(data) })
	case "post":
		err = ws.UpdateRequest(colName, reqName, func(r *model.Request) { r.PostRequestScript = string(data) })
	default:
		printUnknown("request scripts", phase)
		printUsage("usage: atac request scripts <collection> <request> <pre|post> <file>")
		return
	}
	if err != nil {
		fatal(err)
	}
}
