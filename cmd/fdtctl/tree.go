package main

import (
	"fmt"
	"os"

	"github.com/joshuapare/dtbkit/dtb"
	"github.com/joshuapare/dtbkit/dtb/printer"
	"github.com/spf13/cobra"
)

var (
	treeDepth   int
	treeNoProps bool
	treeCompact bool
	treeYAML    bool
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().IntVar(&treeDepth, "depth", 0, "Maximum depth (0 = unlimited)")
	cmd.Flags().BoolVar(&treeNoProps, "no-props", false, "Hide property values")
	cmd.Flags().BoolVar(&treeCompact, "compact", false, "Compact output")
	cmd.Flags().BoolVar(&treeYAML, "yaml", false, "Output in YAML format")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <dtb> [path]",
		Short: "Display tree structure",
		Long: `The tree command prints a device tree in source style, starting at the
root or at the given absolute path.

Example:
  fdtctl tree board.dtb
  fdtctl tree board.dtb /soc --depth 2
  fdtctl tree board.dtb --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
	return cmd
}

func runTree(args []string) error {
	path := args[0]
	nodePath := "/"
	if len(args) > 1 {
		nodePath = args[1]
	}

	printVerbose("Opening blob: %s\n", path)

	f, err := dtb.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open blob: %w", err)
	}
	defer f.Close()

	opts := printer.DefaultOptions()
	opts.MaxDepth = treeDepth
	opts.ShowProps = !treeNoProps
	opts.Color = !noColor

	switch {
	case jsonOut:
		opts.Format = printer.FormatJSON
	case treeYAML:
		opts.Format = printer.FormatYAML
	default:
		opts.Format = printer.FormatText
	}
	if treeCompact {
		opts.IndentSize = 1
	}

	p := printer.New(f.Tree(), os.Stdout, opts)
	return p.PrintTree(nodePath)
}
