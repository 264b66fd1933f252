// Package zreader transparently decompresses input streams.
package zreader

import (
	"bufio"
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression magic numbers.
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Reader returns a reader of the decompressed contents of r, sniffing the
// compression scheme from the stream's magic number. A stream that is neither
// gzip nor zstd is passed through as-is.
//
// Closing the returned ReadCloser does not close r.
func Reader(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(4)
	switch {
	case err == nil:
	case err == io.EOF && len(magic) > 0:
	case err == io.EOF:
		return io.NopCloser(br), nil
	default:
		return nil, err
	}
	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		g, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return g, nil
	case bytes.HasPrefix(magic, zstdMagic):
		z, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return readCloser{Reader: z, close: func() error { z.Close(); return nil }}, nil
	}
	return io.NopCloser(br), nil
}

type readCloser struct {
	io.Reader
	close func() error
}

func (rc readCloser) Close() error { return rc.close() }
