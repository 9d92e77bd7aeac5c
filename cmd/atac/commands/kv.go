package commands

import (
	"flag"
	"fmt"
	"strings"

	"atac/internal/model"
	"atac/internal/workspace"
)

// kvEntries collects repeated "--entry key=value" flags into a KVList, the
// way curl's "-H" or "-F" flags accumulate.
type kvEntries struct{ list model.KVList }

func (e *kvEntries) String() string { return "" }

func (e *kvEntries) Set(s string) error {
	parts := strings.SplitN(s, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	e.list = append(e.list, model.KVEntry{Key: parts[0], Value: parts[1], Enabled: true})
	return nil
}

func kvList(list model.KVList) {
	tbl := newTable("KEY", "VALUE", "ENABLED")
	for _, e := range list {
		tbl.addRow(e.Key, e.Value, fmt.Sprintf("%v", e.Enabled))
	}
	tbl.print()
}

// kvCommand implements the {list,add,set,delete} sub-dispatch shared by
// "request headers" and "request params".
func kvCommand(ws *workspace.Workspace, label, colName, reqName string, args []string,
	get func(*model.Request) model.KVList, set func(*model.Request, model.KVList)) {

	usage := fmt.Sprintf("usage: atac request %s <collection> <request> <list|add|set|delete>", label)
	if len(args) == 0 {
		printUsage(usage)
		return
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "list":
		req, err := ws.GetRequest(colName, reqName)
		if err != nil {
			fatal(err)
		}
		kvList(get(req))
	case "add", "set":
		fs := flag.NewFlagSet("request "+label+" "+cmd, flag.ExitOnError)
		disabled := fs.Bool("disabled", false, "store the entry disabled")
		fs.Parse(rest)
		if fs.NArg() != 2 {
			printUsage(fmt.Sprintf("usage: atac request %s %s <collection> <request> <key> <value>", label, cmd))
			return
		}
		key, value := fs.Arg(0), fs.Arg(1)
		err := ws.UpdateRequest(colName, reqName, func(r *model.Request) {
			list := get(r)
			for i, e := range list {
				if e.Key == key {
					list[i].Value = value
					list[i].Enabled = !*disabled
					set(r, list)
					return
				}
			}
			set(r, append(list, model.KVEntry{Key: key, Value: value, Enabled: !*disabled}))
		})
		if err != nil {
			fatal(err)
		}
	case "delete":
		if len(rest) != 1 {
			printUsage(fmt.Sprintf("usage: atac request %s delete <collection> <request> <key>", label))
			return
		}
		key := rest[0]
		err := ws.UpdateRequest(colName, reqName, func(r *model.Request) {
			list := get(r)
			out := list[:0]
			for _, e := range list {
				if e.Key != key {
					out = append(out, e)
				}
			}
			set(r, out)
		})
		if err != nil {
			fatal(err)
		}
	default:
		printUnknown("request "+label, cmd)
		printUsage(usage)
	}
}
