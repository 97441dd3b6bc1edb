// Package options provides data structures and functions for configuring
// the database engine: the path to the database file being read, how many
// blocks to cache in memory, and how many workers the integrity checker
// may run concurrently.
package options

import (
	"strings"
)

// Options defines the configuration parameters for an engine instance.
type Options struct {
	// Path is the filesystem path to the database file to open for
	// reading.
	Path string `json:"path"`

	// BlockCacheSize is how many recently-read blocks to keep in memory.
	// Zero disables caching.
	BlockCacheSize int `json:"blockCacheSize"`

	// IntegThreads bounds how many blocks the integrity checker may read
	// and validate concurrently.
	IntegThreads int `json:"integThreads"`
}

// OptionFunc is a function type that modifies an engine's configuration.
type OptionFunc func(*Options)

// WithDefaultOptions applies a predefined set of default configuration
// values to the Options struct.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		opts := NewDefaultOptions()
		o.BlockCacheSize = opts.BlockCacheSize
		o.IntegThreads = opts.IntegThreads
	}
}

// WithPath sets the filesystem path to the database file to open.
func WithPath(path string) OptionFunc {
	return func(o *Options) {
		path = strings.TrimSpace(path)
		if path != "" {
			o.Path = path
		}
	}
}

// WithBlockCacheSize sets how many recently-read blocks to keep cached in
// memory. Values outside [MinBlockCacheSize, MaxBlockCacheSize] are
// ignored, except zero, which explicitly disables the cache.
func WithBlockCacheSize(size int) OptionFunc {
	return func(o *Options) {
		if size == 0 || (size >= MinBlockCacheSize && size <= MaxBlockCacheSize) {
			o.BlockCacheSize = size
		}
	}
}

// WithIntegThreads sets how many workers the integrity checker may run
// concurrently. Values outside [1, MaxIntegThreads] are ignored.
func WithIntegThreads(threads int) OptionFunc {
	return func(o *Options) {
		if threads >= 1 && threads <= MaxIntegThreads {
			o.IntegThreads = threads
		}
	}
}
