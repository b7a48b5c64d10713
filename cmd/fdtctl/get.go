package main

import (
	"fmt"
	"os"

	"github.com/joshuapare/dtbkit/dtb"
	"github.com/joshuapare/dtbkit/dtb/printer"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newGetCmd())
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <dtb> <path> <property>",
		Short: "Read a single property",
		Long: `The get command resolves a node by absolute path and prints one of its
properties.

Example:
  fdtctl get board.dtb /soc/uart@10000000 compatible
  fdtctl get board.dtb /memory@80000000 reg --json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

func runGet(args []string) error {
	path, nodePath, propName := args[0], args[1], args[2]

	printVerbose("Opening blob: %s\n", path)

	f, err := dtb.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open blob: %w", err)
	}
	defer f.Close()

	n, err := f.Tree().NodeAtPath(nodePath)
	if err != nil {
		return fmt.Errorf("failed to resolve node: %w", err)
	}
	pr, err := n.Prop(propName)
	if err != nil {
		return fmt.Errorf("failed to read property: %w", err)
	}

	opts := printer.DefaultOptions()
	opts.Color = !noColor
	opts.MaxValueBytes = 0
	if jsonOut {
		opts.Format = printer.FormatJSON
	}

	p := printer.New(f.Tree(), os.Stdout, opts)
	return p.PrintProp(pr)
}
