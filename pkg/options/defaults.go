package options

const (
	// DefaultBlockCacheSize is the default number of recently-read blocks
	// kept in memory by the block reader. Zero disables caching.
	DefaultBlockCacheSize = 1024

	// MinBlockCacheSize is the smallest cache size WithBlockCacheSize will
	// accept, short of disabling the cache entirely with zero.
	MinBlockCacheSize = 16

	// MaxBlockCacheSize is the largest cache size WithBlockCacheSize will
	// accept.
	MaxBlockCacheSize = 1 << 20

	// DefaultIntegThreads is the default number of concurrent workers the
	// integrity checker uses to read and validate blocks.
	DefaultIntegThreads = 4

	// MaxIntegThreads is the largest worker count WithIntegThreads will
	// accept.
	MaxIntegThreads = 256
)

// Holds the default configuration settings for an engine instance.
var defaultOptions = Options{
	BlockCacheSize: DefaultBlockCacheSize,
	IntegThreads:   DefaultIntegThreads,
}

// NewDefaultOptions returns a copy of the package's default option values.
func NewDefaultOptions() Options {
	return defaultOptions
}
