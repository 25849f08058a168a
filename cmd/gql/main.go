// Command gql is the GQL command-line front end described in spec.md §6:
// it parses and runs a GQL program file, or opens an interactive prompt
// when given none, and exits 0 on success, 1 on a parse error, 2 on a
// runtime error.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/tracing"

	"github.com/gql-lang/cfpq/errs"
	"github.com/gql-lang/cfpq/interp"
	"github.com/gql-lang/cfpq/internal/xlog"
	"github.com/gql-lang/cfpq/parser"
)

func init() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func main() {
	tlevel := flag.String("trace", "Error", "trace level [Debug|Info|Error]")
	initf := flag.String("init", "", "file of GQL statements to run before the prompt or program")
	flag.Parse()
	xlog.SetLevel(tracing.TraceLevelFromString(*tlevel))

	if args := flag.Args(); len(args) > 0 {
		os.Exit(runFile(args[0], *initf))
	}
	repl(*initf)
}

// runFile parses and interprets the program at path, returning the
// process exit code spec.md §6 requires: 0 success, 1 parse error, 2
// runtime error.
func runFile(path, initPath string) int {
	ip := interp.New(os.Stdout)
	if initPath != "" {
		if err := loadInit(ip, initPath); err != nil {
			fmt.Fprintln(os.Stderr, renderRuntimeError(err))
			return 2
		}
	}
	src, err := os.ReadFile(path)
	if err != nil {
		pterm.Error.Println(err.Error())
		return 2
	}
	prog, err := parser.Parse(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, renderParseError(err))
		return 1
	}
	if err := ip.Run(prog); err != nil {
		fmt.Fprintln(os.Stderr, renderRuntimeError(err))
		return 2
	}
	return 0
}

// renderParseError formats a parser failure as "Parsing error at L:C: msg"
// (spec.md §6); errs.Error already renders ParseError this way.
func renderParseError(err error) string {
	return err.Error()
}

// renderRuntimeError reformats any *errs.Error's "<Kind> at L:C: msg" into
// the "Runtime error at L:C: msg" wording spec.md §6 requires at the CLI
// boundary (errs.Error itself keeps the specific Kind for programmatic
// callers; only this command-line rendering collapses it to "Runtime
// error").
func renderRuntimeError(err error) string {
	e, ok := err.(*errs.Error)
	if !ok {
		return fmt.Sprintf("Runtime error: %s", err.Error())
	}
	return fmt.Sprintf("Runtime error at %s: %s", e.Pos, e.Msg)
}

// repl starts an interactive prompt: one GQL program (possibly spanning
// several statements) per line, evaluated against a persistent
// interpreter so earlier `let` bindings stay visible.
func repl(initPath string) {
	rl, err := readline.New("gql> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	defer rl.Close()

	pterm.Info.Println("GQL interactive prompt. Ctrl-D to quit.")
	ip := interp.New(os.Stdout)
	if initPath != "" {
		if err := loadInit(ip, initPath); err != nil {
			pterm.Error.Println(renderRuntimeError(err))
		}
	}
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF on Ctrl-D
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		prog, err := parser.Parse(line)
		if err != nil {
			pterm.Error.Println(renderParseError(err))
			continue
		}
		if err := ip.Run(prog); err != nil {
			pterm.Error.Println(renderRuntimeError(err))
		}
	}
}

// loadInit reads a file of newline-separated GQL statements and runs each
// through ip in order, aborting on the first error.
func loadInit(ip *interp.Interp, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		prog, err := parser.Parse(line)
		if err != nil {
			return err
		}
		if err := ip.Run(prog); err != nil {
			return err
		}
	}
	return scanner.Err()
}
