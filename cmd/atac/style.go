package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ansiEnabled mirrors the teacher's initAnsiEnabled: honor NO_COLOR/TERM,
// and --no-ansi-log overrides at parse time (see global.go).
var ansiEnabled = initAnsiEnabled()

func initAnsiEnabled() bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv("TERM")), "dumb") {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func ansi(codes ...string) string {
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func colorize(s string, codes ...string) string {
	if !ansiEnabled || s == "" {
		return s
	}
	return ansi(codes...) + s + ansi("0")
}

func styleCmd(s string) string     { return colorize(s, "1", "32") }
func styleDim(s string) string     { return colorize(s, "90") }
func styleInfo(s string) string    { return colorize(s, "36") }
func styleSuccess(s string) string { return colorize(s, "32") }
func styleWarn(s string) string    { return colorize(s, "33") }
func styleError(s string) string   { return colorize(s, "31") }

func styleStatus(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CANCELED", "TIMEOUT", "ERROR", "INVALID URL":
		return styleError(s)
	default:
		if len(s) > 0 && s[0] >= '2' && s[0] < '4' {
			return styleSuccess(s)
		}
		return styleWarn(s)
	}
}

func fatal(err error) {
	os.Stderr.WriteString(styleError(err.Error()) + "\n")
	os.Exit(1)
}

func printUnknown(kind, cmd string) {
	if kind != "" {
		kind += " "
	}
	os.Stderr.WriteString(styleError("unknown") + " " + kind + "command: " + styleCmd(cmd) + "\n")
}

func infof(format string, args ...any) {
	fmt.Println(styleInfo(fmt.Sprintf(format, args...)))
}

func successf(format string, args ...any) {
	fmt.Println(styleSuccess(fmt.Sprintf(format, args...)))
}

func warnf(format string, args ...any) {
	fmt.Println(styleWarn("warning: ") + fmt.Sprintf(format, args...))
}
