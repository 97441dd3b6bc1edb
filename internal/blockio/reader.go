// Package blockio reads individual fixed-size blocks from an open database
// file at their computed byte offsets, optionally caching recently-read
// blocks in memory.
package blockio

import (
	"io"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/corvidlabs/gdsread/internal/block"
	"github.com/corvidlabs/gdsread/internal/header"
	gdserrors "github.com/corvidlabs/gdsread/pkg/errors"
)

// Config carries everything Reader needs to construct itself.
type Config struct {
	// File is the already-opened database file. Reader only ever issues
	// positioned reads against it (ReadAt), so a single *os.File can
	// safely be shared across concurrently-reading goroutines.
	File io.ReaderAt

	// Header is the decoded file header, used to compute byte offsets
	// and validate block sizes.
	Header header.Header

	// CacheSize is the number of recently-read blocks to keep in memory.
	// Zero disables caching.
	CacheSize int

	// Logger receives structured diagnostics about block reads.
	Logger *zap.SugaredLogger
}

// Reader reads blocks from a database file by logical block number.
type Reader struct {
	file      io.ReaderAt
	fhead     header.Header
	cache     *lru.Cache[uint64, *block.Block]
	log       *zap.SugaredLogger
	reads     atomic.Int64
	cacheHits atomic.Int64
}

// New constructs a Reader from config.
func New(config Config) (*Reader, error) {
	r := &Reader{
		file:  config.File,
		fhead: config.Header,
		log:   config.Logger,
	}

	if config.CacheSize > 0 {
		cache, err := lru.New[uint64, *block.Block](config.CacheSize)
		if err != nil {
			return nil, gdserrors.NewBlockError(err, gdserrors.ErrorCodeInternal, "failed to construct block cache")
		}
		r.cache = cache
	}

	return r, nil
}

// ReadBlock reads and parses the block with the given logical block
// number, consulting the cache first if one is configured. declaredType is
// the type the caller inferred for this block from its position in the
// traversal (per §4.6) and is attached to the parsed Block for the integ
// checker's use; it plays no part in how the block itself is decoded.
func (r *Reader) ReadBlock(blockNum uint64, declaredType block.Type) (*block.Block, error) {
	if r.cache != nil {
		if b, ok := r.cache.Get(blockNum); ok {
			r.cacheHits.Add(1)
			return b, nil
		}
	}

	offset := r.fhead.BlockOffset(blockNum)
	raw := make([]byte, r.fhead.BlkSize)
	if _, err := r.file.ReadAt(raw, offset); err != nil {
		if r.log != nil {
			r.log.Errorw("failed to read block",
				"blockNum", blockNum,
				"offset", offset,
				"error", err,
			)
		}
		return nil, gdserrors.NewBlockIOError(err, blockNum, offset)
	}

	b, err := block.Parse(raw, blockNum, r.fhead.BlkSize, declaredType)
	if err != nil {
		if r.log != nil {
			r.log.Errorw("failed to parse block",
				"blockNum", blockNum,
				"offset", offset,
				"error", err,
			)
		}
		return nil, err
	}

	r.reads.Add(1)
	if r.cache != nil {
		r.cache.Add(blockNum, b)
	}
	return b, nil
}

// Stats reports how many blocks have been read from the file and how many
// reads were satisfied from the cache instead.
type Stats struct {
	Reads     int64
	CacheHits int64
}

// Stats returns a snapshot of the reader's read and cache-hit counters.
func (r *Reader) Stats() Stats {
	return Stats{Reads: r.reads.Load(), CacheHits: r.cacheHits.Load()}
}
