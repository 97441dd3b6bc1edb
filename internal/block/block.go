// Package block decodes individual fixed-size blocks: the 16-byte block
// header, and the key-compressed records packed into the payload that
// follows it.
package block

import (
	"encoding/binary"

	gdserrors "github.com/corvidlabs/gdsread/pkg/errors"
)

// HeaderSize is the fixed byte length of a block's own header, which
// precedes its payload.
const HeaderSize = 16

// Type classifies what a block's records mean. It is inferred by the
// caller from where the block sits in a traversal - never from anything
// stored in the block itself - and handed to Parse as declaredType, which
// attaches it to the returned Block for the integ checker's use; parsing
// itself does not depend on it.
type Type int

const (
	// DirectoryTree marks a block belonging to the directory tree, whose
	// records map global names to global variable tree roots.
	DirectoryTree Type = iota
	// IndexBlock marks a non-leaf block of a global variable tree, whose
	// records map key prefixes to child block numbers.
	IndexBlock
	// DataBlock marks a leaf block of a global variable tree, whose
	// records map fully-subscripted keys to values.
	DataBlock
	// LocalBitmap marks one of the fixed-stride blocks holding 2-bit
	// allocation entries for the blocks in its group.
	LocalBitmap
	// MasterBitmap marks the file-wide allocation bitmap that immediately
	// follows the file header. It is never read through Parse - it has no
	// logical block number of its own - but the variant exists so a
	// Type value can name it wherever one is needed (e.g. reporting).
	MasterBitmap
)

// InferChildType applies §4.6's child-type-inference rule: a child's type
// depends only on its parent's type and the parent's own level, never on
// anything read from the child itself, so the caller can always compute it
// before issuing the read that will fetch that child.
func InferChildType(parentType Type, parentLevel uint8) Type {
	switch parentType {
	case DirectoryTree:
		if parentLevel >= 2 {
			return DirectoryTree
		}
		return IndexBlock
	default:
		if parentLevel >= 2 {
			return IndexBlock
		}
		return DataBlock
	}
}

func (t Type) String() string {
	switch t {
	case DirectoryTree:
		return "directory_tree"
	case IndexBlock:
		return "index_block"
	case DataBlock:
		return "data_block"
	case LocalBitmap:
		return "local_bitmap"
	case MasterBitmap:
		return "master_bitmap"
	default:
		return "unknown"
	}
}

// Header is the fixed 16-byte structure that precedes every block's
// payload.
type Header struct {
	// Version is the producer's block format version.
	Version uint16
	// Filler is an unused alignment byte.
	Filler uint8
	// Level is the block's depth in its tree; zero means a leaf (data)
	// block, and any positive value means an index block that many
	// levels above the leaves.
	Level uint8
	// ByteSize is the number of bytes of payload actually in use,
	// including this header.
	ByteSize uint32
	// TxnNumber is the transaction number that last wrote this block.
	TxnNumber uint64
}

// Block is a single decoded fixed-size block: its header, its logical
// block number, the caller-declared Type it was read as, and the portion
// of its payload that is actually in use.
type Block struct {
	Num     uint64
	Type    Type
	Header  Header
	Payload []byte
}

// IsLeaf reports whether the block is a leaf (data) block, i.e. its header
// declares level zero.
func (b *Block) IsLeaf() bool {
	return b.Header.Level == 0
}

// Parse decodes a block's header and payload from raw, which must be
// exactly blkSize bytes as declared in the file header. blockNum identifies
// the block for error reporting. declaredType is the type the caller
// inferred for this block from its position in the traversal (per §4.6);
// Parse attaches it to the result without otherwise acting on it - decoding
// the header and payload is the same regardless of declared type.
func Parse(raw []byte, blockNum uint64, blkSize uint32, declaredType Type) (*Block, error) {
	if len(raw) < HeaderSize {
		return nil, gdserrors.NewMalformedBlockError(blockNum, uint32(len(raw)), blkSize)
	}

	h := Header{
		Version:   binary.LittleEndian.Uint16(raw[0:2]),
		Filler:    raw[2],
		Level:     raw[3],
		ByteSize:  binary.LittleEndian.Uint32(raw[4:8]),
		TxnNumber: binary.LittleEndian.Uint64(raw[8:16]),
	}

	if h.ByteSize < HeaderSize || h.ByteSize > uint32(len(raw)) {
		return nil, gdserrors.NewMalformedBlockError(blockNum, h.ByteSize, blkSize)
	}

	return &Block{
		Num:     blockNum,
		Type:    declaredType,
		Header:  h,
		Payload: raw[HeaderSize:h.ByteSize],
	}, nil
}
