package dtb

import (
	"fmt"
	"io"

	"github.com/joshuapare/dtbkit/internal/buf"
	"github.com/joshuapare/dtbkit/internal/format"
)

// TokenKind identifies a struct block token.
type TokenKind uint32

const (
	TokenBeginNode TokenKind = format.TokBeginNode
	TokenEndNode   TokenKind = format.TokEndNode
	TokenProp      TokenKind = format.TokProp
	TokenNop       TokenKind = format.TokNop
	TokenEnd       TokenKind = format.TokEnd
)

// String returns the token kind's name from the devicetree specification.
func (k TokenKind) String() string {
	switch k {
	case TokenBeginNode:
		return "FDT_BEGIN_NODE"
	case TokenEndNode:
		return "FDT_END_NODE"
	case TokenProp:
		return "FDT_PROP"
	case TokenNop:
		return "FDT_NOP"
	case TokenEnd:
		return "FDT_END"
	}
	return fmt.Sprintf("FDT_UNKNOWN(0x%x)", uint32(k))
}

// Token is one decoded struct block token. A token carries only offsets into
// the blob (plus a zero-copy name view for node opens), so it can be
// reconstructed at any time by re-entering a Tokenizer at Off.
type Token struct {
	Kind TokenKind
	Off  int // offset of the token's tag within the blob

	// Name is the node name for TokenBeginNode, including any unit-address
	// suffix, as a zero-copy view without the NUL terminator.
	Name []byte

	// NameOff, DataOff, and DataLen describe a TokenProp: the property name's
	// offset inside the strings block, and the payload's position and length
	// inside the blob.
	NameOff int
	DataOff int
	DataLen int
}

// Tokenizer is the pull parser for the struct block. Its entire state is the
// current offset and a nesting depth counter, so cursors can spawn fresh
// tokenizers at any known token offset for the price of a struct copy.
//
// Next surfaces every token, including TokenNop and the final TokenEnd; the
// navigation layer elides nops uniformly, the raw stream does not.
type Tokenizer struct {
	t     *Tree
	off   int
	depth int
	done  bool
}

// Tokenizer returns a pull parser positioned at the start of the struct block.
func (t *Tree) Tokenizer() Tokenizer {
	return Tokenizer{t: t, off: t.StructOffset()}
}

// tokenizerAt re-enters the struct block at a known token offset. depth seeds
// the nesting counter so bracketing checks stay meaningful for sub-walks.
func (t *Tree) tokenizerAt(off, depth int) Tokenizer {
	return Tokenizer{t: t, off: off, depth: depth}
}

// Depth returns the current nesting depth: the number of node opens without a
// matching close consumed so far.
func (tz *Tokenizer) Depth() int { return tz.depth }

// Next returns the next token, io.EOF once the end token has been consumed,
// or a decode error. After any error the tokenizer is exhausted.
//
// Grammar enforcement: a node close below depth zero, an end token inside an
// open node, and an unrecognized tag are ErrBadStructure; reads crossing the
// struct block's declared end are ErrTruncated.
func (tz *Tokenizer) Next() (Token, error) {
	if tz.done {
		return Token{}, io.EOF
	}

	tagOff := tz.off
	tag, err := tz.readU32()
	if err != nil {
		tz.done = true
		return Token{}, err
	}

	switch TokenKind(tag) {
	case TokenBeginNode:
		name, err := tz.readNodeName()
		if err != nil {
			tz.done = true
			return Token{}, err
		}
		tz.depth++
		return Token{Kind: TokenBeginNode, Off: tagOff, Name: name}, nil

	case TokenEndNode:
		if tz.depth == 0 {
			tz.done = true
			return Token{}, fmt.Errorf("dtb: unmatched node close at 0x%x: %w",
				tagOff, ErrBadStructure)
		}
		tz.depth--
		return Token{Kind: TokenEndNode, Off: tagOff}, nil

	case TokenProp:
		tok, err := tz.readProp(tagOff)
		if err != nil {
			tz.done = true
			return Token{}, err
		}
		return tok, nil

	case TokenNop:
		return Token{Kind: TokenNop, Off: tagOff}, nil

	case TokenEnd:
		tz.done = true
		if tz.depth != 0 {
			return Token{}, fmt.Errorf("dtb: end token inside %d open node(s) at 0x%x: %w",
				tz.depth, tagOff, ErrBadStructure)
		}
		return Token{Kind: TokenEnd, Off: tagOff}, nil

	default:
		tz.done = true
		return Token{}, fmt.Errorf("dtb: unrecognized token 0x%x at 0x%x: %w",
			tag, tagOff, ErrBadStructure)
	}
}

// readU32 reads the big-endian uint32 at the cursor and advances past it.
// The read is bounded by the struct block's declared end, not the blob.
func (tz *Tokenizer) readU32() (uint32, error) {
	end, ok := buf.AddOverflowSafe(tz.off, format.TokenSize)
	if !ok || end > tz.t.structEnd() {
		return 0, fmt.Errorf("dtb: struct block ends mid-token at 0x%x: %w",
			tz.off, ErrTruncated)
	}
	v, _ := buf.U32BEAt(tz.t.data, tz.off)
	tz.off = end
	return v, nil
}

// readNodeName consumes the NUL-terminated name after a node-open tag and the
// padding that realigns the stream to 4 bytes.
func (tz *Tokenizer) readNodeName() ([]byte, error) {
	limit := tz.t.structEnd() - tz.off
	if limit < 0 {
		limit = 0
	}
	name, ok := buf.CStringN(tz.t.data, tz.off, limit)
	if !ok {
		return nil, fmt.Errorf("dtb: unterminated node name at 0x%x: %w",
			tz.off, ErrBadString)
	}
	next := format.Align4(tz.off + len(name) + 1)
	if next > tz.t.structEnd() {
		return nil, fmt.Errorf("dtb: node name padding at 0x%x exceeds struct block: %w",
			tz.off, ErrTruncated)
	}
	tz.off = next
	return name, nil
}

// readProp consumes a property's length/name-offset header and its padded
// payload.
func (tz *Tokenizer) readProp(tagOff int) (Token, error) {
	length, err := tz.readU32()
	if err != nil {
		return Token{}, err
	}
	nameOff, err := tz.readU32()
	if err != nil {
		return Token{}, err
	}

	dataOff := tz.off
	end, err := buf.CheckListBounds(tz.t.structEnd(), dataOff, int(length), 1)
	if err != nil {
		return Token{}, fmt.Errorf("dtb: property payload at 0x%x: %w (%v)",
			tagOff, ErrTruncated, err)
	}
	next := format.Align4(end)
	if next > tz.t.structEnd() {
		return Token{}, fmt.Errorf("dtb: property padding at 0x%x exceeds struct block: %w",
			tagOff, ErrTruncated)
	}
	tz.off = next

	return Token{
		Kind:    TokenProp,
		Off:     tagOff,
		NameOff: int(nameOff),
		DataOff: dataOff,
		DataLen: int(length),
	}, nil
}
