package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Exit codes, matching the convention a compiler frontend's scripts expect: 0 for a
// clean compile, 1 when diagnostics surfaced, 3 for an internal/usage failure that
// never got far enough to produce diagnostics at all.
const (
	exitOK       = 0
	exitIssues   = 1
	exitInternal = 3
)

// run builds the root command, executes it against args, and returns the process exit
// code. It never calls os.Exit itself so tests can drive it directly.
func run(args []string, stdout, stderr io.Writer) int {
	exitCode := exitOK

	root := newRootCmd(stdout, stderr, &exitCode)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitInternal
	}
	return exitCode
}

func newRootCmd(stdout, stderr io.Writer, exitCode *int) *cobra.Command {
	root := &cobra.Command{
		Use:           "slicec",
		Short:         "Semantic analyzer and linter for Slice IDL files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCheckCmd(exitCode))
	root.AddCommand(newVersionCmd())
	return root
}
