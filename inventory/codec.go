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
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-intersphinx/internal/newline"
)

// DecodeOptions are options for Decode.
type DecodeOptions struct {
	// ReaderOptions are passed to NewReader.
	ReaderOptions *ReaderOptions

	// IncludeHeader writes the header text to the output ahead of the body.
	IncludeHeader bool
}

// Decode reads the inventory from r and writes the decompressed body to w,
// preceded by the header text if requested. It returns the inventory header.
// Output written before an error is returned is incomplete and should be
// discarded by the caller.
func Decode(w io.Writer, r io.Reader, options *DecodeOptions) (Header, error) {
	if options == nil {
		options = &DecodeOptions{}
	}

	ir, err := NewReader(io.NopCloser(r), options.ReaderOptions)
	if err != nil {
		return Header{}, err
	}
	defer ir.Close()

	bw := bufio.NewWriter(w)
	if options.IncludeHeader {
		if _, err := bw.WriteString(ir.Header().String()); err != nil {
			return ir.Header(), fmt.Errorf("writing header: %w", err)
		}
	}
	if _, err := io.Copy(bw, ir); err != nil {
		return ir.Header(), err
	}
	if err := bw.Flush(); err != nil {
		return ir.Header(), fmt.Errorf("writing body: %w", err)
	}
	return ir.Header(), nil
}

// EncodeOptions are options for Encode.
type EncodeOptions struct {
	// Header is used as the inventory header when not nil. Otherwise the
	// first four lines of the input are used.
	Header *Header

	// WriterOptions are passed to NewWriter.
	WriterOptions *WriterOptions
}

// Encode reads plain text lines from r and writes an inventory to w. Unless
// a header is supplied the first four lines are written uncompressed as the
// header. Every remaining line is compressed and terminated by a single LF
// whatever its original line ending.
func Encode(w io.Writer, r io.Reader, options *EncodeOptions) error {
	if options == nil {
		options = &EncodeOptions{}
	}

	// Line endings are normalized to LF. A BOM is dropped only ahead of a
	// header read from the input; body text is kept as is.
	var t transform.Transformer = newline.Normalizer{}
	if options.Header == nil {
		t = transform.Chain(unicode.BOMOverride(transform.Nop), t)
	}
	br := bufio.NewReader(transform.NewReader(r, t))

	var h Header
	if options.Header != nil {
		h = *options.Header
	} else {
		for i := range HeaderLines {
			line, err := br.ReadString('\n')
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: found %d of %d lines", ErrFraming, i, HeaderLines)
			}
			if err != nil {
				return fmt.Errorf("reading header: %w", err)
			}
			h.Lines[i] = strings.TrimSuffix(line, "\n")
		}
	}

	iw, err := NewWriter(NopWriteCloser(w), h, options.WriterOptions)
	if err != nil {
		return err
	}

	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if werr := iw.WriteLine(line); werr != nil {
				iw.Abort()
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			iw.Abort()
			return fmt.Errorf("reading body: %w", err)
		}
	}

	return iw.Close()
}
