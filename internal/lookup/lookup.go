package lookup

import (
	"io"

	"github.com/corvidlabs/gdsread/internal/block"
	gdserrors "github.com/corvidlabs/gdsread/pkg/errors"
)

// FindValue descends the directory tree to find global's variable tree
// root, then descends that tree to find the record matching subscripts
// exactly, returning its stored value.
func (l *Lookup) FindValue(global string, subscripts []string) ([]byte, error) {
	root, err := l.findGlobalRoot(global)
	if err != nil {
		return nil, err
	}

	fullKey := BuildKey(global, subscripts)
	leaf, err := l.descendToLeaf(root, fullKey)
	if err != nil {
		return nil, err
	}

	value, found, err := scanLeafForExactMatch(leaf, fullKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, gdserrors.NewSubscriptNotFoundError(global, len(subscripts), leaf.Num)
	}
	return value, nil
}

// FindBlock descends the directory tree and global's variable tree down to
// the leaf block that would contain the fully-subscripted key, without
// requiring the key to actually be present in that block: the same leaf a
// point lookup for that key would scan.
func (l *Lookup) FindBlock(global string, subscripts []string) (*block.Block, error) {
	root, err := l.findGlobalRoot(global)
	if err != nil {
		return nil, err
	}
	return l.descendToLeaf(root, BuildKey(global, subscripts))
}

// findGlobalRoot descends the directory tree in search of global, and
// returns the block number of the root of its variable tree.
//
// Per spec §4.6, a directory-tree block's pointer names another
// directory-tree block as long as the current block's level is >= 2; once
// the current block's level drops to 1, its pointer leads directly into a
// global variable tree, ending the directory phase in that same hop. This
// is a single-hop operation in the common case of a one-level directory
// tree: read block 1, scan it for the record that routes to global, and
// treat that record's pointer as the variable tree root.
//
// A record whose key matches global exactly must still be followed here
// (SortsEqual counts as a match, the same as SortsAfter): a global's
// directory entry routes by its own bare name, so an exact match is the
// expected, common case, not an edge case to skip past.
func (l *Lookup) findGlobalRoot(global string) (uint64, error) {
	globalKey := BuildKey(global, nil)
	blockNum := directoryRootBlock

	for {
		blk, err := l.reader.ReadBlock(blockNum, block.DirectoryTree)
		if err != nil {
			return 0, err
		}

		ptr, found, err := descendOneLevel(blk, globalKey, true)
		if err != nil {
			return 0, err
		}
		if !found {
			return 0, gdserrors.NewMalformedBlockError(blk.Num, 0, 0).
				WithDetail("reason", "directory tree block ended without a star record")
		}

		if blk.Header.Level <= 1 {
			if l.log != nil {
				l.log.Debugw("found global variable tree root", "global", global, "root", ptr)
			}
			return ptr, nil
		}
		blockNum = ptr
	}
}

// descendToLeaf follows index records from startBlock down through
// successive levels of a global variable tree, always choosing the child
// whose subtree could contain goal, until it reaches a block at level 0.
// A failure to route out of the tree's own root is reported as
// GlobalNotFound, since that root is the first block this global's tree
// ever exposes; a failure at any deeper level is SubscriptNotFound.
func (l *Lookup) descendToLeaf(startBlock uint64, goal []byte) (*block.Block, error) {
	// startBlock is always a directory-tree block's pointer taken at level
	// 1, so per §4.6 it is declared an index block of a global variable
	// tree, regardless of whether it happens to also be that tree's only
	// (leaf) block.
	blk, err := l.reader.ReadBlock(startBlock, block.IndexBlock)
	if err != nil {
		return nil, err
	}

	depth := 0
	for !blk.IsLeaf() {
		ptr, found, err := descendOneLevel(blk, goal, true)
		if err != nil {
			return nil, err
		}
		if !found {
			if depth == 0 {
				return nil, gdserrors.NewGlobalNotFoundError(string(goal))
			}
			return nil, gdserrors.NewSubscriptNotFoundError("", 0, blk.Num).WithDepth(depth)
		}

		childType := block.InferChildType(blk.Type, blk.Header.Level)
		blk, err = l.reader.ReadBlock(ptr, childType)
		if err != nil {
			return nil, err
		}
		depth++
	}

	return blk, nil
}

// descendOneLevel scans blk's records in order looking for the first
// record that routes toward goal: with acceptEqual, the first record that
// sorts at or after goal; without it, the first record that strictly
// sorts after goal. That record's child pointer is the one whose subtree
// could contain goal. It returns found=false if the block has no such
// record, including the degenerate case of an empty block with no star
// record at all.
func descendOneLevel(blk *block.Block, goal []byte, acceptEqual bool) (uint64, bool, error) {
	state := block.NewScanState(goal)
	cur := block.NewCursor(blk)

	for {
		rec, err := cur.Next()
		if err == io.EOF {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}

		order, err := block.Compare(rec, state)
		if err != nil {
			return 0, false, err
		}
		if order == block.SortsAfter || (acceptEqual && order == block.SortsEqual) {
			ptr, err := rec.Pointer()
			if err != nil {
				return 0, false, err
			}
			return ptr, true, nil
		}
	}
}

// scanLeafForExactMatch scans a leaf (data) block's records in order
// looking for one whose key matches goal exactly, stopping as soon as a
// record sorts after goal since no later record could match.
func scanLeafForExactMatch(blk *block.Block, goal []byte) ([]byte, bool, error) {
	state := block.NewScanState(goal)
	cur := block.NewCursor(blk)

	for {
		rec, err := cur.Next()
		if err == io.EOF {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}

		order, err := block.Compare(rec, state)
		if err != nil {
			return nil, false, err
		}
		switch order {
		case block.SortsEqual:
			value, err := rec.Value()
			if err != nil {
				return nil, false, err
			}
			return value, true, nil
		case block.SortsAfter:
			return nil, false, nil
		}
	}
}
