// Package integrity cross-checks the local bitmaps against the blocks
// actually reachable by descending the directory tree and every global
// variable tree, using a bounded pool of concurrent workers.
package integrity

import (
	"go.uber.org/zap"

	"github.com/corvidlabs/gdsread/internal/block"
	"github.com/corvidlabs/gdsread/internal/blockio"
	"github.com/corvidlabs/gdsread/internal/header"
)

// localBitmapStride is how many logical blocks each local bitmap block
// covers, including itself.
const localBitmapStride = 512

// directoryRootBlock is the fixed logical block number at which the
// directory tree begins.
const directoryRootBlock uint64 = 1

// Config carries everything a Checker needs to construct itself.
type Config struct {
	// Reader reads blocks from the database file by logical block number.
	Reader *blockio.Reader

	// Header is the decoded file header. The Checker stores it but does
	// not currently read it: the bitmap scan is bounded by
	// header.MasterBitmapSize instead.
	Header header.Header

	// Threads bounds how many blocks are read and validated concurrently
	// during the traversal phase. Values less than 1 are treated as 1.
	Threads int

	// Logger receives structured diagnostics about the scan.
	Logger *zap.SugaredLogger
}

// Checker cross-checks bitmap allocation state against tree reachability.
type Checker struct {
	reader  *blockio.Reader
	fhead   header.Header
	threads int
	log     *zap.SugaredLogger
}

// New constructs a Checker from config.
func New(config Config) *Checker {
	threads := config.Threads
	if threads < 1 {
		threads = 1
	}
	return &Checker{
		reader:  config.Reader,
		fhead:   config.Header,
		threads: threads,
		log:     config.Logger,
	}
}

// Report summarizes the result of a full integrity check.
type Report struct {
	// BlocksScanned is how many blocks were read and validated during
	// the traversal phase.
	BlocksScanned int

	// ExpectedBusy is how many blocks the local bitmaps marked busy.
	ExpectedBusy int

	// IncorrectlyMarkedBusy lists blocks marked busy in their local
	// bitmap that no traversal ever reached.
	IncorrectlyMarkedBusy []uint64

	// IncorrectlyMarkedFree lists blocks reached by a traversal whose
	// local bitmap marks them free or never-used.
	IncorrectlyMarkedFree []uint64

	// RecordErrors lists every decode or ordering error encountered
	// while validating the records inside a reached block.
	RecordErrors []error

	// BitmapErrors lists every decode error encountered while scanning
	// the local bitmaps themselves.
	BitmapErrors []error
}

// Clean reports whether the check found no disagreements at all.
func (r *Report) Clean() bool {
	return len(r.IncorrectlyMarkedBusy) == 0 &&
		len(r.IncorrectlyMarkedFree) == 0 &&
		len(r.RecordErrors) == 0 &&
		len(r.BitmapErrors) == 0
}

// queueItem is one block awaiting traversal. declaredType is the Type the
// parent inferred for this block per §4.6, attached to the Block read for
// it and used to decide how its own children should in turn be typed.
type queueItem struct {
	blockNum     uint64
	declaredType block.Type
}
