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
	"errors"
	"fmt"
	"strings"
)

// HeaderLines is the number of plain text lines preceding the compressed
// body.
const HeaderLines = 4

const (
	// ProjectLine is the 1-based header line holding the project name.
	ProjectLine = 2

	// VersionLine is the 1-based header line holding the project version.
	VersionLine = 3
)

// ErrFraming indicates that the input ended before the four header lines
// were complete.
var ErrFraming = errors.New("invalid inventory header")

// ErrCompression indicates that the body could not be compressed or
// decompressed.
var ErrCompression = errors.New("inventory compression")

// Header is the plain text header of an inventory file. Lines are stored
// without their terminating LF and are otherwise byte-exact.
type Header struct {
	Lines [HeaderLines]string
}

// NewHeader returns the conventional Sphinx version 2 header for the given
// project name and version.
func NewHeader(project, version string) Header {
	return Header{
		Lines: [HeaderLines]string{
			"# Sphinx inventory version 2",
			"# Project: " + project,
			"# Version: " + version,
			"# The remaining of this file is compressed using zlib.",
		},
	}
}

// ParseHeader parses header text consisting of four LF terminated lines.
// The final LF may be omitted.
func ParseHeader(s string) (Header, error) {
	var h Header
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	if len(lines) != HeaderLines {
		return h, fmt.Errorf("%w: got %d lines, want %d", ErrFraming, len(lines), HeaderLines)
	}
	copy(h.Lines[:], lines)
	return h, nil
}

// Field returns the value of the given 1-based header line: the text after
// the first ':' with surrounding whitespace removed. Lines without a ':'
// have no value.
func (h Header) Field(line int) string {
	if line < 1 || line > HeaderLines {
		return ""
	}
	_, value, found := strings.Cut(h.Lines[line-1], ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(value)
}

// Project returns the project name recorded in the header.
func (h Header) Project() string {
	return h.Field(ProjectLine)
}

// Version returns the project version recorded in the header.
func (h Header) Version() string {
	return h.Field(VersionLine)
}

// String returns the header text exactly as it appears in the file,
// including the LF terminating each line.
func (h Header) String() string {
	var b strings.Builder
	for _, l := range h.Lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}
