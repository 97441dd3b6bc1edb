package engine

import (
	"io"
	"os"

	"github.com/corvidlabs/gdsread/pkg/errors"
)

// openFile opens path for reading, classifying any failure into a
// BlockError that names the likely cause.
func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.ClassifyFileOpenError(err, path)
	}
	return f, nil
}

// offsetReader adapts a fileHandle's positioned ReadAt into a sequential
// io.Reader, so the header package can decode the file header and master
// bitmap without needing Seek. Every block read after that goes through
// blockio.Reader, which always issues positioned reads directly.
type offsetReader struct {
	file   fileHandle
	offset int64
}

func (r *offsetReader) Read(p []byte) (int, error) {
	n, err := r.file.ReadAt(p, r.offset)
	r.offset += int64(n)
	if err == io.EOF && n > 0 {
		return n, nil
	}
	return n, err
}
