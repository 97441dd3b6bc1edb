package lookup

import (
	"go.uber.org/zap"

	"github.com/corvidlabs/gdsread/internal/blockio"
)

// directoryRootBlock is the fixed logical block number at which the
// directory tree begins.
const directoryRootBlock uint64 = 1

// sep is the 0x00 0x00 byte sequence that separates the global name from
// its first subscript, separates subscripts from one another, and
// terminates the final subscript (or the global name itself, if there are
// no subscripts).
var sep = []byte{0x00, 0x00}

// Config carries everything a Lookup needs to construct itself.
type Config struct {
	// Reader reads blocks from the database file by logical block number.
	Reader *blockio.Reader

	// Logger receives structured diagnostics about tree descents.
	Logger *zap.SugaredLogger
}

// Lookup performs point lookups by descending the directory tree and a
// global variable tree in search of a specific, fully-subscripted key.
type Lookup struct {
	reader *blockio.Reader
	log    *zap.SugaredLogger
}

// New constructs a Lookup from config.
func New(config Config) *Lookup {
	return &Lookup{reader: config.Reader, log: config.Logger}
}

// BuildKey assembles the on-disk search key for a global and its
// subscripts: the global name, then each subscript preceded by the 0x00
// 0x00 separator, then a final 0x00 0x00 terminator. With no subscripts,
// the result is simply the global name terminated by 0x00 0x00 — the same
// key a directory tree entry for that global carries.
func BuildKey(global string, subscripts []string) []byte {
	key := make([]byte, 0, len(global)+len(sep)*(len(subscripts)+1)+totalLen(subscripts))
	key = append(key, global...)
	for _, s := range subscripts {
		key = append(key, sep...)
		key = append(key, s...)
	}
	key = append(key, sep...)
	return key
}

func totalLen(ss []string) int {
	n := 0
	for _, s := range ss {
		n += len(s)
	}
	return n
}
