// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package inventory

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ErrInvalidBufferSize indicates that ReaderOptions.BufferSize is not
// positive.
var ErrInvalidBufferSize = errors.New("invalid buffer size")

// ReaderOptions are options for reading an inventory.
type ReaderOptions struct {
	// BufferSize is the number of bytes requested from the underlying
	// reader per read while scanning for the end of the header.
	BufferSize int
}

// DefaultReaderOptions is the default options for a Reader.
var DefaultReaderOptions = &ReaderOptions{
	BufferSize: 4096,
}

// Reader reads an inventory file. The header is consumed when the Reader is
// created and reads return the decompressed body.
type Reader struct {
	src    io.ReadCloser
	body   *trackingReader
	zr     io.ReadCloser
	header Header
	closed bool
}

// NewReader reads the inventory header from r and returns a Reader for the
// decompressed body. The Reader assumes ownership of r and should be closed
// with the Close method. If NewReader returns an error r has already been
// closed.
func NewReader(r io.ReadCloser, options *ReaderOptions) (*Reader, error) {
	if options == nil {
		options = DefaultReaderOptions
	}
	if options.BufferSize <= 0 {
		r.Close()
		return nil, fmt.Errorf("%w: %d", ErrInvalidBufferSize, options.BufferSize)
	}

	header, rest, err := readHeader(r, options.BufferSize)
	if err != nil {
		r.Close()
		return nil, err
	}

	// The chunk holding the fourth LF may also hold the start of the body.
	body := &trackingReader{r: io.MultiReader(bytes.NewReader(rest), r)}
	zr, err := zlib.NewReader(body)
	if err != nil {
		r.Close()
		return nil, wrapBodyError(body, err)
	}

	return &Reader{
		src:    r,
		body:   body,
		zr:     zr,
		header: header,
	}, nil
}

// Header returns the inventory header.
func (r *Reader) Header() Header {
	return r.header
}

// Read reads decompressed body bytes.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.zr.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, wrapBodyError(r.body, err)
	}
	//nolint:wrapcheck // io.EOF must not be wrapped
	return n, err
}

// Close releases the decompressor and closes the underlying reader. Calling
// Close more than once has no effect.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	// A decompression failure has already been reported by Read.
	_ = r.zr.Close()
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing inventory: %w", err)
	}
	return nil
}

// readHeader reads from r in chunks of size bytes until the fourth LF has
// been seen. It returns the header and the bytes of the final chunk that
// follow the header.
func readHeader(r io.Reader, size int) (Header, []byte, error) {
	var hdr []byte
	buf := make([]byte, size)
	remaining := HeaderLines
	for {
		n, err := r.Read(buf)
		chunk := buf[:n]
		for i, c := range chunk {
			if c != '\n' {
				continue
			}
			remaining--
			if remaining == 0 {
				hdr = append(hdr, chunk[:i+1]...)
				h, perr := ParseHeader(string(hdr))
				return h, bytes.Clone(chunk[i+1:]), perr
			}
		}
		hdr = append(hdr, chunk...)

		if errors.Is(err, io.EOF) {
			return Header{}, nil, fmt.Errorf("%w: found %d of %d lines", ErrFraming, HeaderLines-remaining, HeaderLines)
		}
		if err != nil {
			return Header{}, nil, fmt.Errorf("reading inventory header: %w", err)
		}
	}
}

// trackingReader records the last non-EOF error returned by the underlying
// reader so that transport failures can be told apart from bad compressed
// data.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		t.err = err
	}
	//nolint:wrapcheck // passthrough
	return n, err
}

func wrapBodyError(body *trackingReader, err error) error {
	if body.err != nil && errors.Is(err, body.err) {
		return fmt.Errorf("reading inventory body: %w", err)
	}
	return fmt.Errorf("%w: %w", ErrCompression, err)
}
