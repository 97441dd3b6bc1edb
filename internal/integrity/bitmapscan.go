package integrity

import (
	"github.com/corvidlabs/gdsread/internal/bitmap"
	"github.com/corvidlabs/gdsread/internal/block"
	"github.com/corvidlabs/gdsread/internal/header"
	gdserrors "github.com/corvidlabs/gdsread/pkg/errors"
)

// scanBitmaps reads every local bitmap block in turn and returns the set
// of block numbers the bitmaps mark busy. It stops at the first local
// bitmap block it cannot read, which in a well-formed file means the scan
// has walked past the end of allocated storage; that boundary is not
// itself an error. maxGroups bounds the scan against the total range the
// master bitmap could ever address, as a backstop against a corrupt file
// that reports a bitmap entry forever.
func (c *Checker) scanBitmaps() (map[uint64]bool, []error) {
	expectedBusy := make(map[uint64]bool)
	var bitmapErrors []error

	maxGroups := uint64(header.MasterBitmapSize) * uint64(bitmap.EntriesPerByte)

	for group := uint64(0); group < maxGroups; group++ {
		bitmapBlockNum := group * localBitmapStride

		blk, err := c.reader.ReadBlock(bitmapBlockNum, block.LocalBitmap)
		if err != nil {
			break
		}

		// Entry 0 describes the bitmap block itself, which is always
		// busy by definition; it carries no independent information.
		for entryIdx := 1; entryIdx < localBitmapStride; entryIdx++ {
			entry, err := bitmap.Decode(blk.Payload, entryIdx)
			if err != nil {
				if ie, ok := gdserrors.AsIntegrityError(err); ok {
					ie.WithGroupNum(group)
				}
				bitmapErrors = append(bitmapErrors, err)
				continue
			}
			if bitmap.IsAllocated(entry) {
				expectedBusy[bitmapBlockNum+uint64(entryIdx)] = true
			}
		}

		if c.log != nil {
			c.log.Debugw("scanned local bitmap", "group", group, "blockNum", bitmapBlockNum)
		}
	}

	return expectedBusy, bitmapErrors
}
