package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"darwin/internal/prof"
	"darwin/internal/version"
)

// errDiagnostics is returned when diagnostics with error severity were
// printed; the process exits with status 1 without printing anything else.
var errDiagnostics = errors.New("errors reported")

// runState lives for one CLI invocation.
type runState struct {
	stderr io.Writer
	// set by PersistentPreRunE
	closeTrace func(failed bool)
	profiling  *prof.Session
}

func (s *runState) finish(failed bool) {
	if err := s.profiling.Stop(); err != nil {
		fmt.Fprintf(s.stderr, "profiling: %v\n", err)
	}
	s.profiling = nil
	if s.closeTrace != nil {
		s.closeTrace(failed)
		s.closeTrace = nil
	}
}

func newRootCmd(state *runState) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "darwin",
		Short:         "Darwin lexical scanner",
		Long:          `Darwin splits source text into tokens: whitespace, line terminators, comments, punctuators, operators, identifiers and numeric literals.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			session, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			state.profiling = session

			closeTrace, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			state.closeTrace = closeTrace
			return nil
		},
	}

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("timings", false, "print phase timings to stderr")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	flags.String("trace", "", "trace output file (\"-\" for stderr)")
	flags.String("trace-level", "off", "trace level (off|phase|file|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.String("cpu-profile", "", "write CPU profile to file")
	flags.String("mem-profile", "", "write heap profile to file on exit")
	flags.String("runtime-trace", "", "write Go runtime trace to file")

	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	state := &runState{stderr: stderr}
	rootCmd := newRootCmd(state)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	// PersistentPostRun не вызывается при ошибке, поэтому трасса закрывается здесь
	state.finish(err != nil)

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errDiagnostics):
		return 1
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
