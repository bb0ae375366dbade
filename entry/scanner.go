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

package entry

import (
	"bufio"
	"bytes"
	"io"
)

// MaxLineSize is the maximum size of a body line accepted by a Scanner.
const MaxLineSize = 1 << 20

// Scanner scans inventory body lines from start to end.
type Scanner struct {
	s *bufio.Scanner
}

// NewScanner returns a new Scanner reading body lines from r.
func NewScanner(r io.Reader) *Scanner {
	s := &Scanner{
		s: bufio.NewScanner(r),
	}
	s.s.Buffer(make([]byte, 0, 4096), MaxLineSize)
	s.s.Split(splitLine)
	return s
}

// Scan advances to the next line. It returns false if the scan stops either
// by reaching the end of the body or an error.
func (s *Scanner) Scan() bool {
	return s.s.Scan()
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

// Text returns the current line without its LF. Any other bytes, including
// a CR preceding the LF, are returned unchanged. Writer.WriteLine in the
// inventory package drops that CR, so CRLF lines are written back with LF.
func (s *Scanner) Text() string {
	return s.s.Text()
}

// Entry returns the current line parsed as an entry. It returns false if
// the line does not describe an entry.
func (s *Scanner) Entry() (*Entry, bool) {
	return Parse(s.s.Text())
}

// splitLine splits lines on LF only.
func splitLine(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}

	// Request more data.
	return 0, nil, nil
}
