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

// Package entry implements parsing of inventory body lines.
//
// Each body line describes one documented object:
//
//	<name> <domain:role> <priority> <uri> <display name>
//
// The name is a dotted identifier. If the uri ends with '$' the '$' stands
// for the object's name. A display name of '-' means the display name is
// the same as the name.
package entry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// NameTerminator is the uri suffix that stands for the entry's name.
	NameTerminator = "$"

	// NoDisplayName is the display name placeholder meaning "no
	// description".
	NoDisplayName = "-"
)

var lineRegex = regexp.MustCompile(`^\s*([a-zA-Z_0-9.]+)\s+(\S*:\S*)\s+(\S+)\s+(\S+)\s+(.*)$`)

// Entry is a parsed inventory body line.
type Entry struct {
	// Name is the dotted qualified name of the object.
	Name string

	// Type is the "domain:role" of the object, e.g. "py:class".
	Type string

	// Priority is the search priority of the object.
	Priority int

	// URI is the location of the object's documentation relative to the
	// documentation root. It is stored unexpanded.
	URI string

	// DisplayName is the object's display name.
	DisplayName string
}

// Parse parses a single body line. A trailing line ending is ignored. It
// returns false if the line does not describe an entry.
func Parse(line string) (*Entry, bool) {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	m := lineRegex.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	priority, err := strconv.Atoi(m[3])
	if err != nil {
		return nil, false
	}

	return &Entry{
		Name:        m[1],
		Type:        m[2],
		Priority:    priority,
		URI:         m[4],
		DisplayName: m[5],
	}, true
}

// Domain returns the domain part of the entry's type.
func (e *Entry) Domain() string {
	domain, _, _ := strings.Cut(e.Type, ":")
	return domain
}

// Role returns the role part of the entry's type.
func (e *Entry) Role() string {
	_, role, _ := strings.Cut(e.Type, ":")
	return role
}

// ExpandedURI returns the entry's uri with a trailing NameTerminator
// replaced by the entry's name.
func (e *Entry) ExpandedURI() string {
	return ExpandURI(e.URI, e.Name)
}

// ExpandURI replaces a trailing NameTerminator in uri with name.
func ExpandURI(uri, name string) string {
	if base, ok := strings.CutSuffix(uri, NameTerminator); ok {
		return base + name
	}
	return uri
}

// String returns the entry formatted as a body line without a line ending.
func (e *Entry) String() string {
	return fmt.Sprintf("%s %s %d %s %s", e.Name, e.Type, e.Priority, e.URI, e.DisplayName)
}
