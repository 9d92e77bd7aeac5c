package commands

import "fmt"

// rootCommands lists the top-level words dispatchRootCommand recognizes,
// used to generate shell completion scripts and the man page.
var rootCommands = []string{
	"collection", "request", "env", "import", "try", "completions", "man", "help", "version",
}

var subcommands = map[string][]string{
	"collection": {"list", "info", "new", "delete", "rename", "send"},
	"request":    {"info", "new", "delete", "rename", "url", "method", "params", "auth", "headers", "body", "scripts", "send", "settings"},
	"env":        {"info", "key"},
	"import":     {"postman", "curl", "openapi"},
}

const completionsUsageText = "usage: atac completions <bash|zsh|fish>"

// Completions prints a shell completion script to stdout.
func Completions(args []string) {
	if len(args) != 1 {
		printUsage(completionsUsageText)
		return
	}
	switch args[0] {
	case "bash":
		fmt.Print(bashCompletion())
	case "zsh":
		fmt.Print(zshCompletion())
	case "fish":
		fmt.Print(fishCompletion())
	default:
		printUnknown("completions", args[0])
		printUsage(completionsUsageText)
	}
}

func bashCompletion() string {
	s := "_atac_completions() {\n"
	s += "  local cur prev words\n"
	s += "  cur=\"${COMP_WORDS[COMP_CWORD]}\"\n"
	s += "  prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n"
	s += "  case \"$prev\" in\n"
	for cmd, subs := range subcommands {
		s += fmt.Sprintf("    %s) COMPREPLY=($(compgen -W \"%s\" -- \"$cur\")); return ;;\n", cmd, joinWords(subs))
	}
	s += "  esac\n"
	s += fmt.Sprintf("  COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", joinWords(rootCommands))
	s += "}\n"
	s += "complete -F _atac_completions atac\n"
	return s
}

func zshCompletion() string {
	s := "#compdef atac\n\n"
	s += fmt.Sprintf("local -a commands\ncommands=(%s)\n", joinWords(rootCommands))
	s += "_describe 'command' commands\n"
	return s
}

func fishCompletion() string {
	s := ""
	for _, c := range rootCommands {
		s += fmt.Sprintf("complete -c atac -n \"__fish_use_subcommand\" -a %s\n", c)
	}
	for cmd, subs := range subcommands {
		for _, sub := range subs {
			s += fmt.Sprintf("complete -c atac -n \"__fish_seen_subcommand_from %s\" -a %s\n", cmd, sub)
		}
	}
	return s
}

func joinWords(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}
