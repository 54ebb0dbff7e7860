package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shopfeed/internal/cli"
)

func main() {
	root := &cobra.Command{
		Use:           "shopfeed",
		Short:         "Feed value resolution and validation engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		cli.MigrateCommand(),
		cli.SeedDemoCommand(),
		cli.SpecsCommand(),
		cli.ReprocessCommand(),
		cli.OverrideCommand(),
		cli.PropagateCommand(),
		cli.CountOverridesCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
