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

package intersphinx

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ianlewis/go-intersphinx/entry"
	"github.com/ianlewis/go-intersphinx/internal/index"
	"github.com/ianlewis/go-intersphinx/inventory"
)

// Inventory is an in-memory inventory.
type Inventory struct {
	header  inventory.Header
	entries []*entry.Entry
	index   *index.Index[*entry.Entry]
}

// Open reads the inventory file at path.
func Open(path string) (*Inventory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	inv, err := New(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return inv, nil
}

// New reads an inventory from r. Body lines that are not entries are
// skipped.
func New(r io.Reader) (*Inventory, error) {
	ir, err := inventory.NewReader(io.NopCloser(r), nil)
	if err != nil {
		return nil, err
	}
	defer ir.Close()

	var entries []*entry.Entry
	s := entry.NewScanner(ir)
	for s.Scan() {
		if e, ok := s.Entry(); ok {
			entries = append(entries, e)
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return &Inventory{
		header:  ir.Header(),
		entries: entries,
		index:   index.NewIndex(entries, entryName, strings.Compare),
	}, nil
}

func entryName(e *entry.Entry) string {
	return e.Name
}

// Header returns the inventory header.
func (inv *Inventory) Header() inventory.Header {
	return inv.header
}

// Project returns the name of the documented project.
func (inv *Inventory) Project() string {
	return inv.header.Project()
}

// Version returns the version of the documented project.
func (inv *Inventory) Version() string {
	return inv.header.Version()
}

// Entries returns the inventory's entries in file order.
func (inv *Inventory) Entries() []*entry.Entry {
	return inv.entries
}

// Search returns the entries with the given qualified name, of any type.
func (inv *Inventory) Search(name string) []*entry.Entry {
	return inv.index.Search(name)
}

// Resolve returns the location of the entry's documentation under the
// documentation root baseURL.
func Resolve(baseURL string, e *entry.Entry) string {
	if baseURL == "" {
		return e.ExpandedURI()
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + e.ExpandedURI()
}
