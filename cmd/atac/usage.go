package main

import "fmt"

func usage() {
	fmt.Print(`atac [global flags] <command> [args...]

A terminal-native HTTP and WebSocket API workbench: organize requests into
collections, parameterize them with environments, execute them, and export
equivalent invocations in several foreign formats.

Commands:
  collection {list,info,new,delete,rename,send}
  request {info,new,delete,rename,url,method,params,auth,headers,body,scripts,send,settings}
  env {info,key {get,add,set,delete,rename}}
  import {postman,curl,openapi}
  try
  completions
  man
  help | -h | --help
  version | --version

Global flags:
  --directory <dir>   workspace directory (default: $ATAC_MAIN_DIR or ".")
  --filter <regex>    only load collection files matching regex
  --tui               accepted and recorded; this binary has no terminal UI
  --dry-run           perform every operation without touching disk
  --no-ansi-log       disable ANSI color in log/output
  -v                  verbose
  -q                  quiet (suppress structured logging)

Environment variables:
  ATAC_MAIN_DIR       workspace directory
  ATAC_KEY_BINDINGS   key-binding TOML file path
`)
}
