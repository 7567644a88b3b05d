package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"blanklines/internal/diag"
	"blanklines/internal/driver"
	"blanklines/internal/pipeline"
	"blanklines/internal/treeio"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [flags] <path> [path...]",
	Short: "Print the blank lines required before each annotated token",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnnotate,
}

func init() {
	annotateCmd.Flags().String("format", "text", "output format (text|json|msgpack)")
	annotateCmd.Flags().Bool("rules", false, "include the rule that decided each annotation")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	formatName, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	reportFormat, err := treeio.ParseReportFormat(formatName)
	if err != nil {
		return fmt.Errorf("annotate: %w", err)
	}
	rules, err := cmd.Flags().GetBool("rules")
	if err != nil {
		return err
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
	run := func(sink pipeline.ProgressSink) ([]driver.AnnotateResult, error) {
		opts := driver.AnnotateOptions{Options: base, Rules: rules}
		opts.Progress = sink
		return driver.AnnotatePaths(ctx, files, opts)
	}
	var results []driver.AnnotateResult
	if shouldUseTUI(global.ui, true) && !global.quiet {
		results, err = runWithUI("annotate", pipeline.DisplayPaths(files, base.BaseDir), run)
	} else {
		results, err = run(nil)
	}
	if err != nil {
		return err
	}

	reports := make([]treeio.AnnotationReport, 0, len(results))
	paths := make([]string, 0, len(results))
	bags := make(map[string]*diag.Bag, len(results))
	failed := 0
	for _, res := range results {
		paths = append(paths, res.Path)
		bags[res.Path] = res.Bag
		if res.Err != nil {
			failed++
			continue
		}
		reports = append(reports, res.Report())
	}

	if err := treeio.WriteReports(cmd.OutOrStdout(), reports, reportFormat); err != nil {
		return err
	}
	if !global.quiet {
		if err := printDiagnostics(cmd.ErrOrStderr(), paths, bags); err != nil {
			return err
		}
		for _, res := range results {
			if res.Err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %v\n", errColor.Sprint("error"), res.Path, res.Err)
			}
		}
	}
	if global.timings {
		for _, res := range results {
			printFileTimings(cmd.ErrOrStderr(), res.Path, res.Timings)
		}
		printTimerSummary(cmd.ErrOrStderr(), base.Timer)
	}
	if failed > 0 {
		return fmt.Errorf("annotate: %d of %d documents failed", failed, len(results))
	}
	return nil
}
