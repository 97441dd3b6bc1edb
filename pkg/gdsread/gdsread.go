// Package gdsread is the public entry point for reading a block-structured
// database file: opening it, looking up values by global and subscripts,
// and running a parallel integrity check.
package gdsread

import (
	"context"

	"go.uber.org/zap"

	"github.com/corvidlabs/gdsread/internal/engine"
	"github.com/corvidlabs/gdsread/internal/integrity"
	"github.com/corvidlabs/gdsread/pkg/logger"
	"github.com/corvidlabs/gdsread/pkg/options"
)

// Database is a handle on an open database file.
type Database struct {
	engine *engine.Engine
}

// Open opens the database file named by the configured options and
// returns a Database ready to serve lookups and integrity checks.
func Open(ctx context.Context, opts ...options.OptionFunc) (*Database, error) {
	config := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&config)
	}

	log, err := logger.New("gdsread")
	if err != nil {
		return nil, err
	}

	eng, err := engine.New(ctx, &engine.Config{Options: &config, Logger: log})
	if err != nil {
		return nil, err
	}

	return &Database{engine: eng}, nil
}

// OpenWithLogger is like Open, but lets the caller supply its own logger
// instead of constructing a production zap logger.
func OpenWithLogger(ctx context.Context, log *zap.SugaredLogger, opts ...options.OptionFunc) (*Database, error) {
	config := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&config)
	}

	eng, err := engine.New(ctx, &engine.Config{Options: &config, Logger: log})
	if err != nil {
		return nil, err
	}

	return &Database{engine: eng}, nil
}

// Get looks up the value stored for global with the given subscripts.
func (d *Database) Get(global string, subscripts ...string) ([]byte, error) {
	return d.engine.FindValue(global, subscripts)
}

// Integ runs a full bitmap-versus-reachability integrity check over the
// database file.
func (d *Database) Integ(ctx context.Context) (*integrity.Report, error) {
	return d.engine.CheckIntegrity(ctx)
}

// Close releases the underlying file handle.
func (d *Database) Close() error {
	return d.engine.Close()
}
