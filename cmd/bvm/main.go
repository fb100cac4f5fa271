package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/ZebulonRouseFrantzich/bvm/internal/config"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		printError(stderr, err, a.debug)
		return 1
	}
	return 0
}

// printError writes err to w, with a red prefix when w is a terminal.
func printError(w io.Writer, err error, verbose bool) {
	prefix := color.New(color.FgRed, color.Bold)
	if isTerminal(w) {
		prefix.EnableColor()
	} else {
		prefix.DisableColor()
	}

	msg := err.Error()
	var parseErr *config.ParseError
	if errors.As(err, &parseErr) {
		msg = config.FormatError(err, verbose)
	}
	fmt.Fprintf(w, "%s %s\n", prefix.Sprint("Error:"), msg)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
