package dtb

import (
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/dtbkit/internal/format"
)

// --- small blob builder (keeps tests readable) ---

type blobBuilder struct {
	version  uint32
	lastComp uint32
	bootCPU  uint32

	reservations []ReserveEntry
	noTerminator bool // omit the reservation terminator (for negative tests)

	structBuf []byte
	strBuf    []byte
	strOff    map[string]uint32

	skipEnd bool // omit the final end token (for negative tests)

	// mutate raw blob after assembly (for negative tests)
	mutate func(b []byte)
}

func newBlob() *blobBuilder {
	return &blobBuilder{
		version:  format.SupportedVersion,
		lastComp: format.MinSupportedVersion,
		strOff:   map[string]uint32{},
	}
}

func (b *blobBuilder) reserve(addr, size uint64) *blobBuilder {
	b.reservations = append(b.reservations, ReserveEntry{Address: addr, Size: size})
	return b
}

func (b *blobBuilder) word(v uint32) *blobBuilder {
	var w [4]byte
	binary.BigEndian.PutUint32(w[:], v)
	b.structBuf = append(b.structBuf, w[:]...)
	return b
}

func (b *blobBuilder) beginNode(name string) *blobBuilder {
	b.word(format.TokBeginNode)
	b.structBuf = append(b.structBuf, name...)
	b.structBuf = append(b.structBuf, 0)
	for len(b.structBuf)%format.StructAlignment != 0 {
		b.structBuf = append(b.structBuf, 0)
	}
	return b
}

func (b *blobBuilder) endNode() *blobBuilder { return b.word(format.TokEndNode) }
func (b *blobBuilder) nop() *blobBuilder     { return b.word(format.TokNop) }

func (b *blobBuilder) prop(name string, payload []byte) *blobBuilder {
	b.word(format.TokProp)
	b.word(uint32(len(payload)))
	b.word(b.internString(name))
	b.structBuf = append(b.structBuf, payload...)
	for len(b.structBuf)%format.StructAlignment != 0 {
		b.structBuf = append(b.structBuf, 0)
	}
	return b
}

func (b *blobBuilder) propStr(name string, elems ...string) *blobBuilder {
	var payload []byte
	for _, s := range elems {
		payload = append(payload, s...)
		payload = append(payload, 0)
	}
	return b.prop(name, payload)
}

func (b *blobBuilder) propU32(name string, vals ...uint32) *blobBuilder {
	payload := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint32(payload[i*4:], v)
	}
	return b.prop(name, payload)
}

func (b *blobBuilder) internString(s string) uint32 {
	if off, ok := b.strOff[s]; ok {
		return off
	}
	off := uint32(len(b.strBuf))
	b.strBuf = append(b.strBuf, s...)
	b.strBuf = append(b.strBuf, 0)
	b.strOff[s] = off
	return off
}

func (b *blobBuilder) build(t *testing.T) []byte {
	t.Helper()

	structBuf := b.structBuf
	if !b.skipEnd {
		var w [4]byte
		binary.BigEndian.PutUint32(w[:], format.TokEnd)
		structBuf = append(structBuf, w[:]...)
	}

	rsvOff := format.HeaderSize
	rsvLen := len(b.reservations) * format.ReserveEntrySize
	if !b.noTerminator {
		rsvLen += format.ReserveEntrySize
	}
	structOff := rsvOff + rsvLen
	stringsOff := structOff + len(structBuf)
	total := stringsOff + len(b.strBuf)

	blob := make([]byte, total)
	put := func(off int, v uint32) { binary.BigEndian.PutUint32(blob[off:], v) }
	put(format.MagicOffset, format.Magic)
	put(format.TotalSizeOffset, uint32(total))
	put(format.OffDTStructOffset, uint32(structOff))
	put(format.OffDTStringsOffset, uint32(stringsOff))
	put(format.OffMemRsvmapOffset, uint32(rsvOff))
	put(format.VersionOffset, b.version)
	put(format.LastCompVersionOffset, b.lastComp)
	put(format.BootCPUIDPhysOffset, b.bootCPU)
	put(format.SizeDTStringsOffset, uint32(len(b.strBuf)))
	put(format.SizeDTStructOffset, uint32(len(structBuf)))

	off := rsvOff
	for _, e := range b.reservations {
		binary.BigEndian.PutUint64(blob[off:], e.Address)
		binary.BigEndian.PutUint64(blob[off+8:], e.Size)
		off += format.ReserveEntrySize
	}
	copy(blob[structOff:], structBuf)
	copy(blob[stringsOff:], b.strBuf)

	if b.mutate != nil {
		b.mutate(blob)
	}
	return blob
}

// testBlob is the shared fixture used across the package: a small board-like
// tree with two UARTs, an interrupt controller, and one reservation.
//
//	/ {
//	    model = "test,board";
//	    #address-cells = <1>;
//	    soc {
//	        uart@10000000 { compatible = "ns16550a"; reg = <0x10000000 0x100>; };
//	        uart@10001000 { compatible = "ns16550a", "snps,dw-apb-uart";
//	                        reg = <0x10001000 0x100>; clock-frequency = <0x16e3600>; };
//	        intc@c000000 { compatible = "riscv,cpu-intc"; phandle = <0x1>;
//	                       interrupt-controller; };
//	    };
//	    chosen { stdout-path = "/soc/uart@10000000"; };
//	};
func testBlob(t *testing.T) []byte {
	t.Helper()
	return newBlob().
		reserve(0x80000000, 0x10000).
		beginNode("").
		propStr("model", "test,board").
		propU32("#address-cells", 1).
		beginNode("soc").
		beginNode("uart@10000000").
		propStr("compatible", "ns16550a").
		propU32("reg", 0x10000000, 0x100).
		endNode().
		beginNode("uart@10001000").
		propStr("compatible", "ns16550a", "snps,dw-apb-uart").
		propU32("reg", 0x10001000, 0x100).
		propU32("clock-frequency", 0x16e3600).
		endNode().
		beginNode("intc@c000000").
		propStr("compatible", "riscv,cpu-intc").
		propU32("phandle", 1).
		prop("interrupt-controller", nil).
		endNode().
		endNode().
		beginNode("chosen").
		propStr("stdout-path", "/soc/uart@10000000").
		endNode().
		endNode().
		build(t)
}

func testTree(t *testing.T) *Tree {
	t.Helper()
	tree, err := NewTree(testBlob(t))
	require.NoError(t, err)
	return tree
}

func testTreeAlloc(t *testing.T) *Tree {
	t.Helper()
	tree, err := NewTreeWith(testBlob(t), Options{EnableAlloc: true})
	require.NoError(t, err)
	return tree
}

// collectNodeNames drains a node iterator into a name list.
func collectNodeNames(t *testing.T, next func() (Node, error)) []string {
	t.Helper()
	var names []string
	for {
		n, err := next()
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			return names
		}
		name, err := n.Name()
		require.NoError(t, err)
		names = append(names, name)
	}
}
