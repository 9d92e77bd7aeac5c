package commands

import (
	"fmt"

	"atac/internal/workspace"
)

const envUsageText = "usage: atac env <info|key> ..."

// Env dispatches the "env" subcommand family against ws.
func Env(ws *workspace.Workspace, args []string) {
	if len(args) == 0 {
		printUsage(envUsageText)
		return
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "help", "-h", "--help":
		printUsage(envUsageText)
	case "info":
		envInfo(ws, rest)
	case "key":
		envKey(ws, rest)
	default:
		printUnknown("env", cmd)
		printUsage(envUsageText)
	}
}

func envInfo(ws *workspace.Workspace, args []string) {
	if len(args) == 0 {
		active := ws.ActiveEnvironment()
		tbl := newTable("NAME", "VARS", "FORMAT", "ACTIVE")
		for _, e := range ws.ListEnvironments() {
			isActive := active != nil && active.Name == e.Name
			tbl.addRow(e.Name, fmt.Sprintf("%d", len(e.Vars)), string(e.Format), fmt.Sprintf("%v", isActive))
		}
		tbl.print()
		return
	}
	if len(args) != 1 {
		printUsage("usage: atac env info [name]")
		return
	}
	env, err := ws.GetEnvironment(args[0])
	if err != nil {
		fatal(err)
	}
	fmt.Printf("name:   %s\n", env.Name)
	fmt.Printf("format: %s\n", env.Format)
	fmt.Printf("path:   %s\n", env.Path)
	tbl := newTable("KEY", "VALUE")
	for _, v := range env.Vars {
		tbl.addRow(v.Key, v.Value)
	}
	tbl.print()
}

func envKey(ws *workspace.Workspace, args []string) {
	usage := "usage: atac env key <get|add|set|delete|rename> <env> ..."
	if len(args) < 2 {
		printUsage(usage)
		return
	}
	cmd, env, rest := args[0], args[1], args[2:]
	switch cmd {
	case "get":
		if len(rest) != 1 {
			printUsage("usage: atac env key get <env> <key>")
			return
		}
		value, ok := envGet(ws, env, rest[0])
		if !ok {
			fatal(fmt.Errorf("no such variable %q in %q", rest[0], env))
		}
		fmt.Println(value)
	case "add":
		if len(rest) != 2 {
			printUsage("usage: atac env key add <env> <key> <value>")
			return
		}
		if _, ok := envGet(ws, env, rest[0]); ok {
			fatal(fmt.Errorf("variable %q already exists in %q", rest[0], env))
		}
		if err := ws.SetVar(env, rest[0], rest[1]); err != nil {
			fatal(err)
		}
	case "set":
		if len(rest) != 2 {
			printUsage("usage: atac env key set <env> <key> <value>")
			return
		}
		if err := ws.SetVar(env, rest[0], rest[1]); err != nil {
			fatal(err)
		}
	case "delete":
		if len(rest) != 1 {
			printUsage("usage: atac env key delete <env> <key>")
			return
		}
		if err := ws.DeleteVar(env, rest[0]); err != nil {
			fatal(err)
		}
	case "rename":
		if len(rest) != 2 {
			printUsage("usage: atac env key rename <env> <old> <new>")
			return
		}
		if err := ws.RenameVar(env, rest[0], rest[1]); err != nil {
			fatal(err)
		}
	default:
		printUnknown("env key", cmd)
		printUsage(usage)
	}
}

func envGet(ws *workspace.Workspace, env, key string) (string, bool) {
	vars, err := ws.ListVars(env)
	if err != nil {
		fatal(err)
	}
	for _, v := range vars {
		if v.Key == key {
			return v.Value, true
		}
	}
	return "", false
}
