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

package source

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// maxLineSize is the longest source line ExtractClassNames accepts.
const maxLineSize = 1 << 20

var (
	// exportStartRegex matches the first line of a top-level __all__
	// assignment.
	exportStartRegex = regexp.MustCompile(`^__all__\s*=\s*([(\[])`)

	// exportListRegex matches a complete __all__ assignment of quoted names.
	exportListRegex = regexp.MustCompile(`^__all__\s*=\s*(?:\(([a-zA-Z_0-9,\s'"]*)\)|\[([a-zA-Z_0-9,\s'"]*)\])`)

	// classRegex matches a top-level class declaration with a base list.
	classRegex = regexp.MustCompile(`^class\s+([a-zA-Z_0-9]+)\s*\([^()]*\)\s*:`)
)

var closers = map[string]string{
	"(": ")",
	"[": "]",
}

type extractState int

const (
	outsideExport extractState = iota
	insideExport
)

// ExtractClassNames returns the public class names declared by the Python
// source read from r. If the source assigns a list of names to __all__
// exactly those names are returned, even if the module declares other
// classes. Otherwise the names of all top-level classes declared with a
// base list are returned.
func ExtractClassNames(r io.Reader) (ClassSet, error) {
	classes := ClassSet{}

	state := outsideExport
	var closer string
	var export strings.Builder

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), maxLineSize)
	for s.Scan() {
		line := s.Text()

		if state == outsideExport {
			m := exportStartRegex.FindStringSubmatch(line)
			if m == nil {
				if m := classRegex.FindStringSubmatch(line); m != nil {
					classes[m[1]] = struct{}{}
				}
				continue
			}
			state = insideExport
			closer = closers[m[1]]
			export.Reset()
		}

		// Accumulate the assignment until the line holding its closer.

		code, _, _ := strings.Cut(line, "#")
		export.WriteString(code)
		export.WriteByte('\n')
		if !strings.Contains(code, closer) {
			continue
		}

		state = outsideExport
		if names, ok := parseExportList(export.String()); ok {
			return names, nil
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}

	return classes, nil
}

// parseExportList parses the names of a complete __all__ assignment. It
// returns false if the assignment is not a plain list of quoted names.
func parseExportList(s string) (ClassSet, bool) {
	m := exportListRegex.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	list := m[1] + m[2]

	names := ClassSet{}
	for _, n := range strings.Split(list, ",") {
		n = strings.Trim(strings.TrimSpace(n), `'"`)
		if n == "" {
			continue
		}
		names[n] = struct{}{}
	}
	return names, true
}
