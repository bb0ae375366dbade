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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"
)

// WriterOptions are options for writing an inventory.
type WriterOptions struct {
	// Level is the zlib compression level of the body.
	Level int
}

// DefaultWriterOptions is the default options for a Writer. Sphinx
// compresses inventories at the best compression level.
var DefaultWriterOptions = &WriterOptions{
	Level: zlib.BestCompression,
}

// Writer writes an inventory file. The header is written uncompressed when
// the Writer is created and everything written afterwards is compressed.
type Writer struct {
	dst    io.WriteCloser
	bw     *bufio.Writer
	zw     *zlib.Writer
	closed bool
}

// NewWriter writes the header h to w and returns a Writer for the body. The
// Writer assumes ownership of w and closes it when the Writer is closed. If
// NewWriter returns an error w has already been closed.
func NewWriter(w io.WriteCloser, h Header, options *WriterOptions) (*Writer, error) {
	if options == nil {
		options = DefaultWriterOptions
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(h.String()); err != nil {
		w.Close()
		return nil, fmt.Errorf("writing inventory header: %w", err)
	}

	// The compressor shares the buffered sink with the header so no flush
	// is needed at the switch.
	zw, err := zlib.NewWriterLevel(bw, options.Level)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("%w: %w", ErrCompression, err)
	}

	return &Writer{
		dst: w,
		bw:  bw,
		zw:  zw,
	}, nil
}

// Write writes uncompressed body bytes.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.zw.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing inventory body: %w", err)
	}
	return n, nil
}

// WriteLine writes a single body line. Any trailing LF or CRLF is replaced
// by a single LF.
func (w *Writer) WriteLine(line string) error {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if _, err := io.WriteString(w, line+"\n"); err != nil {
		return err
	}
	return nil
}

// Close finishes the compressed body, flushes all buffered output and
// closes the underlying writer. Calling Close more than once has no
// effect.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.zw.Close(); err != nil {
		w.dst.Close()
		return fmt.Errorf("finishing inventory body: %w", err)
	}
	if err := w.bw.Flush(); err != nil {
		w.dst.Close()
		return fmt.Errorf("writing inventory: %w", err)
	}
	if err := w.dst.Close(); err != nil {
		return fmt.Errorf("closing inventory: %w", err)
	}
	return nil
}

// Abort closes the underlying writer without flushing buffered output. It
// is used when a conversion fails part way through. Calling Abort after
// Close has no effect.
func (w *Writer) Abort() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.dst.Close(); err != nil {
		return fmt.Errorf("closing inventory: %w", err)
	}
	return nil
}

// nopWriteCloser adds a no-op Close method to an io.Writer.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NopWriteCloser returns a WriteCloser with a no-op Close method wrapping w.
func NopWriteCloser(w io.Writer) io.WriteCloser {
	return nopWriteCloser{w}
}
