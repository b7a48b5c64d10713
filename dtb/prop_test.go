package dtb

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPropU32(t *testing.T) {
	tree := testTree(t)
	uart, err := tree.NodeAtPath("/soc/uart@10000000")
	require.NoError(t, err)

	reg, err := uart.Prop("reg")
	require.NoError(t, err)
	require.Equal(t, 8, reg.Len())

	base, err := reg.U32(0)
	require.NoError(t, err)
	require.Equal(t, uint32(0x10000000), base)

	size, err := reg.U32(1)
	require.NoError(t, err)
	require.Equal(t, uint32(0x100), size)

	_, err = reg.U32(2)
	require.ErrorIs(t, err, ErrInsufficientLength)
	_, err = reg.U32(-1)
	require.ErrorIs(t, err, ErrInsufficientLength)
}

func TestPropU64(t *testing.T) {
	payload := make([]byte, 8)
	binary.BigEndian.PutUint64(payload, 0x123456789abcdef0)
	blob := newBlob().
		beginNode("").
		prop("wide", payload).
		endNode().
		build(t)
	tree, err := NewTree(blob)
	require.NoError(t, err)

	root, err := tree.Root()
	require.NoError(t, err)
	p, err := root.Prop("wide")
	require.NoError(t, err)

	v, err := p.U64(0)
	require.NoError(t, err)
	require.Equal(t, uint64(0x123456789abcdef0), v)

	// Eight bytes hold one u64, not two.
	_, err = p.U64(1)
	require.ErrorIs(t, err, ErrInsufficientLength)
}

func TestPropPhandle(t *testing.T) {
	tree := testTree(t)
	intc, err := tree.NodeAtPath("/soc/intc@c000000")
	require.NoError(t, err)

	p, err := intc.Prop("phandle")
	require.NoError(t, err)
	ph, err := p.Phandle()
	require.NoError(t, err)
	require.Equal(t, uint32(1), ph)
}

func TestPropStr(t *testing.T) {
	tree := testTree(t)
	root, err := tree.Root()
	require.NoError(t, err)

	model, err := root.Prop("model")
	require.NoError(t, err)
	s, err := model.Str()
	require.NoError(t, err)
	require.Equal(t, "test,board", s)

	// An empty payload is a flag, not a string.
	intc, err := tree.NodeAtPath("/soc/intc@c000000")
	require.NoError(t, err)
	flag, err := intc.Prop("interrupt-controller")
	require.NoError(t, err)
	require.Equal(t, 0, flag.Len())
	_, err = flag.Str()
	require.ErrorIs(t, err, ErrBadString)
}

func TestPropIterStrings(t *testing.T) {
	tree := testTree(t)
	uart, err := tree.NodeAtPath("/soc/uart@10001000")
	require.NoError(t, err)

	compat, err := uart.Prop("compatible")
	require.NoError(t, err)

	var elems []string
	err = compat.IterStrings(func(s string) error {
		elems = append(elems, s)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"ns16550a", "snps,dw-apb-uart"}, elems)
}

func TestPropIterStringsStopsOnCallbackError(t *testing.T) {
	tree := testTree(t)
	uart, err := tree.NodeAtPath("/soc/uart@10001000")
	require.NoError(t, err)
	compat, err := uart.Prop("compatible")
	require.NoError(t, err)

	stop := errStopWalk
	calls := 0
	err = compat.IterStrings(func(string) error {
		calls++
		return stop
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 1, calls)
}

func TestPropStrAt(t *testing.T) {
	tree := testTree(t)
	uart, err := tree.NodeAtPath("/soc/uart@10001000")
	require.NoError(t, err)
	compat, err := uart.Prop("compatible")
	require.NoError(t, err)

	s, err := compat.StrAt(0)
	require.NoError(t, err)
	require.Equal(t, "ns16550a", s)

	s, err = compat.StrAt(1)
	require.NoError(t, err)
	require.Equal(t, "snps,dw-apb-uart", s)

	_, err = compat.StrAt(2)
	require.ErrorIs(t, err, ErrInsufficientLength)
	_, err = compat.StrAt(-1)
	require.ErrorIs(t, err, ErrInsufficientLength)
}

func TestPropStrListRequiresAlloc(t *testing.T) {
	tree := testTree(t)
	uart, err := tree.NodeAtPath("/soc/uart@10001000")
	require.NoError(t, err)
	compat, err := uart.Prop("compatible")
	require.NoError(t, err)

	_, err = compat.StrList()
	require.ErrorIs(t, err, ErrAllocRequired)
}

func TestPropStrList(t *testing.T) {
	tree := testTreeAlloc(t)
	uart, err := tree.NodeAtPath("/soc/uart@10001000")
	require.NoError(t, err)
	compat, err := uart.Prop("compatible")
	require.NoError(t, err)

	list, err := compat.StrList()
	require.NoError(t, err)
	require.Equal(t, []string{"ns16550a", "snps,dw-apb-uart"}, list)
}

func TestPropRawAndNode(t *testing.T) {
	tree := testTree(t)
	uart, err := tree.NodeAtPath("/soc/uart@10000000")
	require.NoError(t, err)

	reg, err := uart.Prop("reg")
	require.NoError(t, err)
	require.Equal(t, uart.Offset(), reg.Node().Offset())

	raw := reg.Raw()
	require.Len(t, raw, 8)
	require.Equal(t, uint32(0x10000000), binary.BigEndian.Uint32(raw))
}

func TestPropMissing(t *testing.T) {
	tree := testTree(t)
	root, err := tree.Root()
	require.NoError(t, err)

	_, err = root.Prop("no-such-prop")
	require.ErrorIs(t, err, ErrNotFound)
}

// A property whose name offset points outside the strings block must fail on
// name resolution, not read adjacent memory.
func TestPropBadNameOffset(t *testing.T) {
	b := newBlob().beginNode("")
	b.word(3) // FDT_PROP
	b.word(0)
	b.word(0x4000) // name offset past the strings block
	b.endNode()
	b.internString("pad") // ensure the strings block is non-empty
	tree, err := NewTree(b.build(t))
	require.NoError(t, err)

	it := tree.Props()
	p, err := it.Next()
	require.NoError(t, err)
	_, err = p.Name()
	require.ErrorIs(t, err, ErrBadStructure)
}
