// Package dtb provides low-level access to Flattened Device Tree blobs.
//
// # Overview
//
// This package implements zero-copy parsing and traversal of Flattened Device
// Tree (FDT/DTB) blobs, the binary format bootloaders and firmware use to
// describe hardware topology to an operating system. It provides direct access
// to the on-disk structures without materializing a tree, making it suitable
// for memory-constrained environments and for inspecting untrusted blobs.
//
// # Key Types
//
// The main types provided by this package are:
//
//   - Tree: the validated top-level handle over a blob
//   - Token / Tokenizer: the raw struct-block pull parser
//   - Node: an offset cursor at a node's open token
//   - Prop: an offset cursor at a property token, with value decoders
//   - ReserveEntry: one memory reservation range
//
// # Blob Structure
//
// A device tree blob consists of:
//
//	[fdt_header - 40 bytes] [memory reservation block] [struct block] [strings block]
//
// The struct block is a token stream (node open/close, property, nop, end)
// with all tokens aligned to 4 bytes; the strings block is a flat table of
// NUL-terminated property names referenced by offset.
//
// # Opening a Blob
//
// From a file, Open memory-maps the blob read-only (falling back to a plain
// read on platforms without mmap):
//
//	f, err := dtb.Open("virt.dtb")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//	t := f.Tree()
//
// From a buffer already in memory (firmware handoff, flash copy), construct
// the handle directly. This is the package's one trusted-input boundary: the
// caller asserts the buffer really holds a complete blob of at least the
// declared size at 4-byte alignment; NewTree verifies magic, version, and the
// self-consistency of every declared offset, but it cannot vouch for the
// backing memory itself:
//
//	size, err := dtb.PeekTotalSize(prefix) // read only the first 8 bytes
//	...
//	t, err := dtb.NewTree(blob[:size])
//
// # Traversal
//
// Traversal is depth-first pre-order with siblings in on-disk order. All
// iterators follow the same contract: Next returns io.EOF when the sequence
// is exhausted, and any malformed encoding surfaces as a decode error rather
// than a panic or an out-of-bounds read:
//
//	nodes := t.Nodes()
//	for {
//	    n, err := nodes.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    name, _ := n.Name()
//	    fmt.Println(name)
//	}
//
// # Zero-Copy Design
//
// Node and Prop are plain offset cursors into the blob; two cursors at the
// same offset behave identically, and no per-node state is cached. Property
// payloads are returned as sub-slices of the blob. Helpers that must build
// heap structures (StrList, NodePath) are gated behind Options.EnableAlloc so
// the default configuration keeps O(1) auxiliary memory per step.
//
// # Untrusted Input
//
// Every read is bounds-checked against the blob and the declared block
// extents, and multi-byte integers are reassembled byte-wise, so a malformed
// or adversarial blob produces an error, never undefined behavior. Corrupt
// input is a permanent condition: there are no retries and no recovery
// attempts.
//
// # Thread Safety
//
// A Tree and all cursors derived from it are read-only views; any number of
// goroutines may traverse the same Tree concurrently provided nothing mutates
// the backing buffer for the lifetime of the handle.
package dtb
