package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"blanklines/internal/style"
)

var styleCmd = &cobra.Command{
	Use:   "style [dir]",
	Short: "Print the style that governs a directory as TOML",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStyle,
}

func init() {
	styleCmd.Flags().String("preset", "", "print a base style instead ("+strings.Join(style.PresetNames(), "|")+")")
}

func runStyle(cmd *cobra.Command, args []string) error {
	preset, err := cmd.Flags().GetString("preset")
	if err != nil {
		return err
	}
	if preset != "" {
		s, err := style.Preset(preset)
		if err != nil {
			return err
		}
		return s.WriteTOML(cmd.OutOrStdout())
	}

	stylePath, err := cmd.Root().PersistentFlags().GetString("style")
	if err != nil {
		return err
	}
	resolver, err := style.NewResolver(style.ResolverOptions{Path: stylePath, CacheSize: 1})
	if err != nil {
		return err
	}
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	s, err := resolver.Resolve(dir)
	if err != nil {
		return fmt.Errorf("style: %w", err)
	}
	return s.WriteTOML(cmd.OutOrStdout())
}
