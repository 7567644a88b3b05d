package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"blanklines/internal/driver"
	"blanklines/internal/observ"
	"blanklines/internal/style"
)

type globalFlags struct {
	quiet   bool
	timings bool
	ui      uiMode
}

func readGlobalFlags(cmd *cobra.Command) (globalFlags, error) {
	flags := cmd.Root().PersistentFlags()
	var g globalFlags
	var err error
	if g.quiet, err = flags.GetBool("quiet"); err != nil {
		return g, err
	}
	if g.timings, err = flags.GetBool("timings"); err != nil {
		return g, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return g, err
	}
	g.ui, err = readUIMode(uiValue)
	return g, err
}

// driverOptions builds the options shared by annotate and fmt from the
// persistent flags.
func driverOptions(cmd *cobra.Command) (driver.Options, error) {
	flags := cmd.Root().PersistentFlags()
	stylePath, err := flags.GetString("style")
	if err != nil {
		return driver.Options{}, err
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return driver.Options{}, err
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, err
	}
	useCache, err := flags.GetBool("cache")
	if err != nil {
		return driver.Options{}, err
	}

	resolver, err := style.NewResolver(style.ResolverOptions{Path: stylePath})
	if err != nil {
		return driver.Options{}, fmt.Errorf("style: %w", err)
	}
	opts := driver.Options{
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Resolver:       resolver,
		Timer:          observ.NewTimer(),
	}
	if wd, err := os.Getwd(); err == nil {
		opts.BaseDir = wd
	}
	if useCache {
		cache, err := driver.OpenDiskCache("blanklines")
		if err != nil {
			return driver.Options{}, fmt.Errorf("cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}
