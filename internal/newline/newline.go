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

// Package newline implements line ending normalization.
package newline

import (
	"golang.org/x/text/transform"
)

// Normalizer rewrites CRLF and lone CR line endings to a single LF. All
// other bytes are copied unchanged.
type Normalizer struct {
	transform.NopResetter
}

// Transform implements [transform.Transformer.Transform].
func (Normalizer) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		c := src[nSrc]
		if c == '\r' {
			if nSrc+1 == len(src) && !atEOF {
				// Need the next byte to know if this is a CRLF.
				return nDst, nSrc, transform.ErrShortSrc
			}
			if nSrc+1 < len(src) && src[nSrc+1] == '\n' {
				// Drop the CR; the LF is copied on the next iteration.
				nSrc++
				continue
			}
			c = '\n'
		}

		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = c
		nDst++
		nSrc++
	}

	return nDst, nSrc, nil
}
