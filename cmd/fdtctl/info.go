package main

import (
	"fmt"
	"io"

	"github.com/joshuapare/dtbkit/dtb"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <dtb>",
		Short: "Validate a blob header and report basic metadata",
		Long: `The info command validates a device tree blob and displays its header
metadata: total size, format version, block offsets and sizes, the boot CPU,
and the number of nodes, properties, and memory reservations.

Example:
  fdtctl info board.dtb
  fdtctl info board.dtb --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

type blobInfo struct {
	File            string `json:"file"`
	FileSize        int64  `json:"file_size"`
	TotalSize       int    `json:"total_size"`
	Version         uint32 `json:"version"`
	LastCompVersion uint32 `json:"last_comp_version"`
	BootCPU         uint32 `json:"boot_cpuid_phys"`
	StructOffset    int    `json:"struct_offset"`
	StructSize      int    `json:"struct_size"`
	StringsOffset   int    `json:"strings_offset"`
	StringsSize     int    `json:"strings_size"`
	ReserveOffset   int    `json:"reserve_offset"`
	Nodes           int    `json:"nodes"`
	Properties      int    `json:"properties"`
	Reservations    int    `json:"reservations"`
}

func runInfo(args []string) error {
	path := args[0]

	printVerbose("Opening blob: %s\n", path)

	f, err := dtb.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open blob: %w", err)
	}
	defer f.Close()
	t := f.Tree()

	info := blobInfo{
		File:            path,
		FileSize:        f.Size(),
		TotalSize:       t.TotalSize(),
		Version:         t.Version(),
		LastCompVersion: t.LastCompVersion(),
		BootCPU:         t.BootCPU(),
		StructOffset:    t.StructOffset(),
		StructSize:      t.StructSize(),
		StringsOffset:   t.StringsOffset(),
		StringsSize:     t.StringsSize(),
		ReserveOffset:   t.ReserveOffset(),
	}

	// Counting doubles as a full-structure validation pass.
	items := t.Items()
	for {
		item, err := items.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("blob structure invalid: %w", err)
		}
		if item.Kind == dtb.ItemNode {
			info.Nodes++
		} else {
			info.Properties++
		}
	}

	rsv := t.ReservedEntries()
	for {
		if _, err := rsv.Next(); err == io.EOF {
			break
		} else if err != nil {
			return fmt.Errorf("reservation block invalid: %w", err)
		}
		info.Reservations++
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nBlob Information:\n")
	printInfo("  File: %s (%d bytes)\n", info.File, info.FileSize)
	printInfo("  Total size: %d bytes\n", info.TotalSize)
	printInfo("  Version: %d (last compatible: %d)\n", info.Version, info.LastCompVersion)
	printInfo("  Boot CPU: %d\n", info.BootCPU)
	printInfo("  Struct block: offset 0x%x, %d bytes\n", info.StructOffset, info.StructSize)
	printInfo("  Strings block: offset 0x%x, %d bytes\n", info.StringsOffset, info.StringsSize)
	printInfo("  Reservations: offset 0x%x, %d entries\n", info.ReserveOffset, info.Reservations)
	printInfo("  Nodes: %d, Properties: %d\n", info.Nodes, info.Properties)
	printInfo("\nValidation:\n")
	printInfo("  ✓ Header valid\n")
	printInfo("  ✓ Structure walks cleanly\n")

	return nil
}
