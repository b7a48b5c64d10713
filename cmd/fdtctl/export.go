package main

import (
	"fmt"
	"os"

	"github.com/joshuapare/dtbkit/dtb"
	"github.com/joshuapare/dtbkit/dtb/printer"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

func init() {
	cmd := newExportCmd()
	cmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format (text, json, yaml)")
	cmd.Flags().StringVarP(&exportOut, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(cmd)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <dtb> [path]",
		Short: "Export a tree to JSON, YAML, or source form",
		Long: `The export command serializes a device tree, or the subtree at the given
path, to a file or stdout.

Example:
  fdtctl export board.dtb -f yaml -o board.yaml
  fdtctl export board.dtb /soc -f json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}
	return cmd
}

func runExport(args []string) error {
	path := args[0]
	nodePath := "/"
	if len(args) > 1 {
		nodePath = args[1]
	}

	var format printer.Format
	switch exportFormat {
	case "text":
		format = printer.FormatText
	case "json":
		format = printer.FormatJSON
	case "yaml":
		format = printer.FormatYAML
	default:
		return fmt.Errorf("unknown format %q (want text, json, or yaml)", exportFormat)
	}

	printVerbose("Opening blob: %s\n", path)

	f, err := dtb.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open blob: %w", err)
	}
	defer f.Close()

	out := os.Stdout
	if exportOut != "" {
		out, err = os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer out.Close()
	}

	opts := printer.DefaultOptions()
	opts.Format = format
	opts.MaxValueBytes = 0

	p := printer.New(f.Tree(), out, opts)
	if err := p.PrintTree(nodePath); err != nil {
		return err
	}
	if exportOut != "" {
		printVerbose("Exported %s to %s\n", nodePath, exportOut)
	}
	return nil
}
