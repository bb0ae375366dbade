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

package testutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zlib"
)

// DjangoHeader is a header as found in Django's objects.inv.
const DjangoHeader = "# Sphinx inventory version 2\n" +
	"# Project: Django\n" +
	"# Version: 1.4\n" +
	"# The remaining of this file is compressed using zlib.\n"

// MakeBody joins lines into an inventory body, terminating each line with
// a LF.
func MakeBody(lines ...string) []byte {
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

// MakeInventory creates the bytes of an inventory file with the given
// header text and uncompressed body.
func MakeInventory(t *testing.T, header string, body []byte) []byte {
	t.Helper()

	var b bytes.Buffer
	b.WriteString(header)
	z := zlib.NewWriter(&b)
	if _, err := z.Write(body); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
	return b.Bytes()
}

// Decompress returns the header text and decompressed body of an inventory
// file. It does not rely on the inventory package so that it can be used to
// check its output.
func Decompress(t *testing.T, b []byte) (string, []byte) {
	t.Helper()

	i := 0
	for n := 0; n < 4; n++ {
		j := bytes.IndexByte(b[i:], '\n')
		if j < 0 {
			t.Fatalf("inventory header has %d lines", n)
		}
		i += j + 1
	}

	z, err := zlib.NewReader(bytes.NewReader(b[i:]))
	if err != nil {
		t.Fatal(err)
	}
	defer z.Close()

	body, err := io.ReadAll(z)
	if err != nil {
		t.Fatal(err)
	}
	return string(b[:i]), body
}

// MakeTempInventory writes an inventory file to a temporary directory and
// returns its path.
func MakeTempInventory(t *testing.T, header string, body []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "objects.inv")
	if err := os.WriteFile(path, MakeInventory(t, header, body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// ChunkReader returns a reader that returns at most size bytes per Read.
func ChunkReader(b []byte, size int) io.Reader {
	return &chunkReader{r: bytes.NewReader(b), size: size}
}

type chunkReader struct {
	r    io.Reader
	size int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(p) > c.size {
		p = p[:c.size]
	}
	//nolint:wrapcheck // test reader
	return c.r.Read(p)
}

// CloseCounter is an io.ReadCloser or io.WriteCloser that counts calls to
// Close.
type CloseCounter struct {
	io.Reader
	io.Writer
	Closed int
}

// Close implements [io.Closer.Close].
func (c *CloseCounter) Close() error {
	c.Closed++
	return nil
}
