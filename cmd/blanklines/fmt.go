package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"blanklines/internal/diag"
	"blanklines/internal/driver"
	"blanklines/internal/pipeline"
)

var errChangesRequired = errors.New("fmt: blank line changes required")

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Rewrite blank lines in the sources named by tree documents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "report files that need changes without writing them")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted sources to stdout instead of rewriting files")
}

func runFmt(cmd *cobra.Command, args []string) error {
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	global, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	base, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	files, err := driver.CollectDocuments(ctx, args)
	if err != nil {
		return err
	}
	run := func(sink pipeline.ProgressSink) ([]driver.FormatResult, error) {
		opts := driver.FormatOptions{Options: base, Check: check, Stdout: writeToStdout}
		opts.Progress = sink
		return driver.FormatPaths(ctx, files, opts)
	}
	var results []driver.FormatResult
	stdoutBusy := writeToStdout || outputFormat == "json"
	if shouldUseTUI(global.ui, stdoutBusy) && !global.quiet {
		results, err = runWithUI("fmt", pipeline.DisplayPaths(files, base.BaseDir), run)
	} else {
		results, err = run(nil)
	}
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var hasErrors, hasChanges bool
	switch {
	case writeToStdout:
		hasErrors = renderFmtStdout(out, errOut, results)
	case outputFormat == "json":
		hasErrors, hasChanges, err = renderFmtJSON(out, results, check)
		if err != nil {
			return err
		}
	default:
		hasErrors, hasChanges = renderFmtText(out, errOut, results, check, global.quiet)
	}

	if !global.quiet {
		paths := make([]string, 0, len(results))
		bags := make(map[string]*diag.Bag, len(results))
		for _, res := range results {
			paths = append(paths, res.Path)
			bags[res.Path] = res.Bag
		}
		if err := printDiagnostics(errOut, paths, bags); err != nil {
			return err
		}
	}
	if global.timings {
		for _, res := range results {
			printFileTimings(errOut, res.Path, res.Timings)
		}
		printTimerSummary(errOut, base.Timer)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return errChangesRequired
	}
	return nil
}

func renderFmtStdout(out, errOut io.Writer, results []driver.FormatResult) (hasErrors bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(errOut, "%s %s: %v\n", errColor.Sprint("error"), res.Path, res.Err)
			continue
		}
		_, _ = out.Write(res.Formatted)
	}
	return hasErrors
}

func renderFmtText(out, errOut io.Writer, results []driver.FormatResult, check, quiet bool) (hasErrors, hasChanges bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(errOut, "%s %s: %v\n", errColor.Sprint("error"), res.Path, res.Err)
			continue
		}
		if !res.Changed {
			continue
		}
		hasChanges = true
		if quiet {
			continue
		}
		if check {
			fmt.Fprintf(out, "%s %s (lines %v)\n", warnColor.Sprint("would reformat"), res.Source, res.Lines)
			continue
		}
		fmt.Fprintf(out, "%s %s\n", okColor.Sprint("reformatted"), res.Source)
	}
	return hasErrors, hasChanges
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool) (hasErrors, hasChanges bool, err error) {
	type jsonResult struct {
		Path     string `json:"path"`
		Source   string `json:"source,omitempty"`
		Changed  bool   `json:"changed"`
		Lines    []int  `json:"lines,omitempty"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}
	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Source: res.Source, Changed: res.Changed, Lines: res.Lines, CheckRun: check}
		if res.Err != nil {
			hasErrors = true
			jr.Error = res.Err.Error()
		}
		if res.Changed {
			hasChanges = true
		}
		payload = append(payload, jr)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return hasErrors, hasChanges, enc.Encode(payload)
}
