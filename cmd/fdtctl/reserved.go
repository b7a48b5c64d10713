package main

import (
	"fmt"
	"os"

	"github.com/joshuapare/dtbkit/dtb"
	"github.com/joshuapare/dtbkit/dtb/printer"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newReservedCmd())
}

func newReservedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reserved <dtb>",
		Short: "List memory reservations",
		Long: `The reserved command prints the memory reservation block: physical
regions the operating system must leave untouched.

Example:
  fdtctl reserved board.dtb
  fdtctl reserved board.dtb --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReserved(args)
		},
	}
	return cmd
}

func runReserved(args []string) error {
	path := args[0]

	printVerbose("Opening blob: %s\n", path)

	f, err := dtb.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open blob: %w", err)
	}
	defer f.Close()

	opts := printer.DefaultOptions()
	opts.Color = !noColor
	if jsonOut {
		opts.Format = printer.FormatJSON
	}

	p := printer.New(f.Tree(), os.Stdout, opts)
	return p.PrintReservations()
}
