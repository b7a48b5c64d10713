package main

import (
	"fmt"
	"io"

	"github.com/joshuapare/dtbkit/dtb"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newSearchCmd())
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <dtb> <compatible>",
		Short: "Find nodes by compatible string",
		Long: `The search command lists every node whose "compatible" property contains
the given string as an exact list element, in tree order. This mirrors how an
operating system matches device drivers against the tree.

Example:
  fdtctl search board.dtb ns16550a
  fdtctl search board.dtb arm,gic-400 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(args)
		},
	}
	return cmd
}

type searchHit struct {
	Name   string `json:"name"`
	Offset int    `json:"offset"`
	Depth  int    `json:"depth"`
}

func runSearch(args []string) error {
	path, compat := args[0], args[1]

	printVerbose("Opening blob: %s\n", path)

	f, err := dtb.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open blob: %w", err)
	}
	defer f.Close()

	var hits []searchHit
	it := f.Tree().CompatibleNodes(compat)
	for {
		n, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		name, err := n.Name()
		if err != nil {
			return err
		}
		hits = append(hits, searchHit{Name: name, Offset: n.Offset(), Depth: n.Depth()})
	}

	if jsonOut {
		if hits == nil {
			hits = []searchHit{}
		}
		return printJSON(hits)
	}

	if len(hits) == 0 {
		printInfo("No nodes compatible with %q\n", compat)
		return nil
	}
	for _, h := range hits {
		printInfo("%s (offset 0x%x, depth %d)\n", h.Name, h.Offset, h.Depth)
	}
	printInfo("\n%d node(s) found\n", len(hits))
	return nil
}
