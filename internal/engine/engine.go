// Package engine provides the core database engine implementation for the
// block-structured database reader.
//
// The engine serves as the central coordinator and entry point for all
// read operations. It orchestrates the interaction between four main
// subsystems:
//   - Header: decodes the file header and master bitmap at the start of
//     the database file
//   - Block I/O: reads and parses individual fixed-size blocks by logical
//     block number, optionally caching recently-read blocks
//   - Lookup: descends the directory tree and a global variable tree to
//     answer point lookups
//   - Integrity: cross-checks the bitmaps against the blocks reachable
//     from the tree roots
//
// The engine implements a thread-safe interface with proper lifecycle
// management, ensuring the underlying file handle is closed exactly once.
package engine

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/corvidlabs/gdsread/internal/blockio"
	gdsheader "github.com/corvidlabs/gdsread/internal/header"
	"github.com/corvidlabs/gdsread/internal/integrity"
	"github.com/corvidlabs/gdsread/internal/lookup"
	"github.com/corvidlabs/gdsread/pkg/errors"
	"github.com/corvidlabs/gdsread/pkg/options"
)

// ErrEngineClosed is returned when attempting to perform operations on a
// closed engine.
var ErrEngineClosed = errors.NewBlockError(nil, errors.ErrorCodeInvalidInput, "operation failed: cannot access closed engine")

// Engine is the main database engine that coordinates all subsystems. It
// acts as the primary interface for read operations and manages the
// lifecycle of the underlying file handle. The engine is designed to be
// thread-safe and supports concurrent lookups and integrity checks.
type Engine struct {
	options *options.Options
	log     *zap.SugaredLogger
	closed  atomic.Bool

	file   fileHandle
	header *gdsheader.Database
	reader *blockio.Reader
	lookup *lookup.Lookup
}

// fileHandle is the subset of *os.File the engine depends on, so tests can
// substitute an in-memory implementation.
type fileHandle interface {
	ReadAt(p []byte, off int64) (int, error)
	Close() error
}

// Config holds all the parameters needed to initialize a new Engine
// instance.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger

	// File, if set, is used instead of opening Options.Path. This is the
	// seam tests use to exercise the engine against an in-memory file.
	File fileHandle
}

// New creates and initializes a new Engine instance with the provided
// configuration. This constructor follows the dependency injection
// pattern, making the engine testable and allowing for different
// configurations in different environments.
func New(ctx context.Context, config *Config) (*Engine, error) {
	file := config.File
	if file == nil {
		f, err := openFile(config.Options.Path)
		if err != nil {
			return nil, err
		}
		file = f
	}

	db, err := gdsheader.Read(&offsetReader{file: file})
	if err != nil {
		file.Close()
		return nil, err
	}

	reader, err := blockio.New(blockio.Config{
		File:      file,
		Header:    db.Header,
		CacheSize: config.Options.BlockCacheSize,
		Logger:    config.Logger,
	})
	if err != nil {
		file.Close()
		return nil, err
	}

	l := lookup.New(lookup.Config{Reader: reader, Logger: config.Logger})

	if config.Logger != nil {
		config.Logger.Infow("engine initialized",
			"path", config.Options.Path,
			"blkSize", db.Header.BlkSize,
			"startVBN", db.Header.StartVBN,
		)
	}

	return &Engine{
		options: config.Options,
		log:     config.Logger,
		file:    file,
		header:  db,
		reader:  reader,
		lookup:  l,
	}, nil
}

// Header returns the decoded file header. The master bitmap read alongside
// it is not exposed here.
func (e *Engine) Header() gdsheader.Header {
	return e.header.Header
}

// FindValue looks up the value stored for global and its subscripts,
// returning a LookupError if the global or the subscripts cannot be found.
func (e *Engine) FindValue(global string, subscripts []string) ([]byte, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	return e.lookup.FindValue(global, subscripts)
}

// CheckIntegrity runs a full bitmap-versus-reachability integrity check
// over the database file, using the configured number of worker threads.
func (e *Engine) CheckIntegrity(ctx context.Context) (*integrity.Report, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	checker := integrity.New(integrity.Config{
		Reader:  e.reader,
		Header:  e.header.Header,
		Threads: e.options.IntegThreads,
		Logger:  e.log,
	})
	return checker.Run(ctx)
}

// Close gracefully shuts down the engine and releases the underlying file
// handle. Close is safe to call more than once; only the first call does
// any work.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}
	return e.file.Close()
}
