package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"blanklines/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "blanklines",
	Short: "Blank line placement for Python syntax trees",
	Long: `blanklines annotates lib2to3-shaped Python syntax trees with the number of
blank lines each definition and statement needs, and applies the result to
the source files the trees were parsed from.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(annotateCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(styleCmd)
	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("style", "", "style file to use instead of discovering blanklines.toml")
	flags.Int("jobs", 0, "documents processed in parallel (0 = GOMAXPROCS)")
	flags.Bool("cache", false, "reuse annotation results from the user cache directory")
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.String("ui", "auto", "progress UI (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics kept per document")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept in ring mode")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")

	cobra.OnFinalize(runCleanups)
}

func main() {
	// .env is optional; values already in the environment win.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "blanklines:", err)
		os.Exit(1)
	}
}

var cleanups []func()

func setupRun(cmd *cobra.Command, _ []string) error {
	if err := setupColor(cmd); err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, cleanup)
	return setupProfiling(cmd)
}

func runCleanups() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
