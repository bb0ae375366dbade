// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package newline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/text/transform"
)

func TestNormalizer_Transform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   []byte
		dst   []byte
		atEOF bool

		expected []byte
		nDst     int
		nSrc     int
		err      error
	}{
		{
			name:  "lf",
			src:   []byte("a\nb\n"),
			dst:   make([]byte, 5),
			atEOF: true,

			expected: []byte{'a', '\n', 'b', '\n', 0},
			nDst:     4,
			nSrc:     4,
		},
		{
			name:  "crlf",
			src:   []byte("a\r\nb\r\n"),
			dst:   make([]byte, 5),
			atEOF: true,

			expected: []byte{'a', '\n', 'b', '\n', 0},
			nDst:     4,
			nSrc:     6,
		},
		{
			name:  "lone cr",
			src:   []byte("a\rb\r"),
			dst:   make([]byte, 5),
			atEOF: true,

			expected: []byte{'a', '\n', 'b', '\n', 0},
			nDst:     4,
			nSrc:     4,
		},
		{
			name:  "trailing cr not at eof",
			src:   []byte("ab\r"),
			dst:   make([]byte, 5),
			atEOF: false,

			expected: []byte{'a', 'b', 0, 0, 0},
			nDst:     2,
			nSrc:     2,
			err:      transform.ErrShortSrc,
		},
		{
			name:  "fill dst",
			src:   []byte("abc\r\n"),
			dst:   make([]byte, 3),
			atEOF: true,

			expected: []byte{'a', 'b', 'c'},
			nDst:     3,
			nSrc:     4,
			err:      transform.ErrShortDst,
		},
		{
			name:  "high bytes",
			src:   []byte{0xff, 0x80, '\r', '\n'},
			dst:   make([]byte, 4),
			atEOF: true,

			expected: []byte{0xff, 0x80, '\n', 0},
			nDst:     3,
			nSrc:     4,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var n Normalizer
			nDst, nSrc, err := n.Transform(test.dst, test.src, test.atEOF)
			if diff := cmp.Diff(test.expected, test.dst); diff != "" {
				t.Errorf("unexpected output (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.nDst, nDst); diff != "" {
				t.Errorf("unexpected nDst (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.nSrc, nSrc); diff != "" {
				t.Errorf("unexpected nSrc (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("unexpected err (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizer_String(t *testing.T) {
	t.Parallel()

	got, _, err := transform.String(Normalizer{}, "one\r\ntwo\rthree\n")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("one\ntwo\nthree\n", got); diff != "" {
		t.Fatalf("transform.String (-want, +got):\n%s", diff)
	}
}
