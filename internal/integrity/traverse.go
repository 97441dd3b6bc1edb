package integrity

import (
	"bytes"
	"context"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/corvidlabs/gdsread/internal/block"
	gdserrors "github.com/corvidlabs/gdsread/pkg/errors"
)

// traversalResult accumulates everything discovered while walking every
// block reachable from the directory tree.
type traversalResult struct {
	mu           sync.Mutex
	visited      map[uint64]bool
	freeButUsed  []uint64
	recordErrors []error
}

func newTraversalResult() *traversalResult {
	return &traversalResult{visited: make(map[uint64]bool)}
}

func (r *traversalResult) addRecordError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recordErrors = append(r.recordErrors, err)
}

func (r *traversalResult) flagIncorrectlyFree(blockNum uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.freeButUsed = append(r.freeButUsed, blockNum)
}

// traverse walks every block reachable from the directory tree root,
// bounding concurrent block reads to c.threads at a time. A block that
// fails to read or decode is recorded as a record error and does not halt
// the rest of the traversal; only a canceled context aborts early.
func (c *Checker) traverse(ctx context.Context, expectedBusy map[uint64]bool) (*traversalResult, error) {
	result := newTraversalResult()
	sem := semaphore.NewWeighted(int64(c.threads))
	g, gctx := errgroup.WithContext(ctx)

	var wg sync.WaitGroup
	var mu sync.Mutex

	var submit func(item queueItem)
	submit = func(item queueItem) {
		mu.Lock()
		if result.visited[item.blockNum] {
			mu.Unlock()
			return
		}
		result.visited[item.blockNum] = true
		mu.Unlock()

		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()

			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			blk, err := c.reader.ReadBlock(item.blockNum, item.declaredType)
			if err != nil {
				result.addRecordError(err)
				return nil
			}

			if !expectedBusy[item.blockNum] {
				result.flagIncorrectlyFree(item.blockNum)
				if c.log != nil {
					c.log.Warnw("block reachable from traversal marked free in local bitmap",
						"blockNum", item.blockNum,
					)
				}
			}

			children, errs := validateAndCollectChildren(blk)
			for _, e := range errs {
				result.addRecordError(e)
			}
			for _, child := range children {
				submit(child)
			}
			return nil
		})
	}

	submit(queueItem{blockNum: directoryRootBlock, declaredType: block.DirectoryTree})
	wg.Wait()

	if err := g.Wait(); err != nil {
		return nil, gdserrors.NewIntegrityError(err, gdserrors.ErrorCodeInternal, "traversal aborted")
	}

	return result, nil
}

// validateAndCollectChildren walks blk's records in on-disk order, checking
// that expanded keys are strictly increasing and collecting the child block
// pointers that should be visited next. The star record is exempt from key
// expansion and ordering checks, since it carries no key of its own, and
// its pointer is not queued: children are collected from non-star records
// only.
//
// Per spec §4.6, a block's children are typed from its own declared type
// and level alone via block.InferChildType, independent of anything read
// from the children themselves. A block at level 0 is always a leaf (a
// directory tree never reaches level 0 itself), so it never has children.
func validateAndCollectChildren(blk *block.Block) ([]queueItem, []error) {
	var children []queueItem
	var errs []error

	hasChildren := blk.Header.Level > 0
	childType := block.InferChildType(blk.Type, blk.Header.Level)
	isDataBlock := !hasChildren

	cur := block.NewCursor(blk)
	var prevKey []byte

	for i := 0; ; i++ {
		rec, err := cur.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			errs = append(errs, err)
			break
		}

		if !rec.IsStar() {
			if isDataBlock && i > 0 && rec.Cmpc == 0 {
				errs = append(errs, gdserrors.NewZeroCompressionCountError(blk.Num, i))
			}

			key, err := block.ExpandKey(rec, prevKey)
			if err != nil {
				errs = append(errs, err)
			} else {
				// Per spec §9's redesign note, the correct check is that the
				// predecessor must NOT sort at-or-after the current key - a
				// tie is as much a violation of strict increase as a
				// regression, not merely a predecessor that sorts greater.
				if prevKey != nil && bytes.Compare(prevKey, key) >= 0 {
					errs = append(errs, gdserrors.NewIncorrectSortError(blk.Num, i))
				}
				prevKey = key
			}
		}

		if hasChildren && !rec.IsStar() {
			ptr, err := rec.Pointer()
			if err != nil {
				errs = append(errs, err)
				continue
			}
			children = append(children, queueItem{blockNum: ptr, declaredType: childType})
		}
	}

	return children, errs
}
