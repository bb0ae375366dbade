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

package rewrite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ianlewis/go-intersphinx/entry"
	"github.com/ianlewis/go-intersphinx/inventory"
	"github.com/ianlewis/go-intersphinx/source"
)

// ClassType is the type of entries documenting a class.
const ClassType = "py:class"

// classDomain is the domain whose member entries are rewritten.
const classDomain = "py"

// ErrIdentityMismatch indicates that an inventory belongs to a different
// project than the registry.
var ErrIdentityMismatch = errors.New("inventory project mismatch")

// IdentityMismatchError is returned by Rewrite when the inventory's project
// does not match the registry's project. No output has been written when it
// is returned.
type IdentityMismatchError struct {
	// Want is the registry's project.
	Want string

	// Got is the project recorded in the inventory header.
	Got string
}

func (e *IdentityMismatchError) Error() string {
	return fmt.Sprintf("%v: inventory is for %q, not %q", ErrIdentityMismatch, e.Got, e.Want)
}

// Is reports whether target is ErrIdentityMismatch.
func (e *IdentityMismatchError) Is(target error) bool {
	return target == ErrIdentityMismatch
}

// Options are options for an Engine.
type Options struct {
	// Registry maps legacy modules to their targets.
	Registry *Registry

	// Source resolves the class names of DynamicKind targets. If nil an
	// Introspector with default options is used.
	Source ClassSource

	// ReaderOptions are passed to inventory.NewReader.
	ReaderOptions *inventory.ReaderOptions

	// WriterOptions are passed to inventory.NewWriter.
	WriterOptions *inventory.WriterOptions

	// Logger receives a summary of each run and every added entry at debug
	// level.
	Logger *log.Logger
}

// DefaultOptions is the default options for an Engine.
var DefaultOptions = &Options{
	Registry: Django,
	Logger:   log.New(io.Discard),
}

// Stats summarizes a rewrite run.
type Stats struct {
	// Entries is the number of body lines parsed as entries.
	Entries int

	// Opaque is the number of body lines copied without parsing.
	Opaque int

	// Added is the number of entries added.
	Added int
}

// Engine rewrites inventories, adding entries that redirect objects
// documented at legacy modules to their canonical locations.
type Engine struct {
	registry      *Registry
	source        ClassSource
	readerOptions *inventory.ReaderOptions
	writerOptions *inventory.WriterOptions
	logger        *log.Logger
}

// New returns a new Engine. Unset options take their value from
// DefaultOptions.
func New(options *Options) *Engine {
	if options == nil {
		options = DefaultOptions
	}

	e := &Engine{
		registry:      options.Registry,
		source:        options.Source,
		readerOptions: options.ReaderOptions,
		writerOptions: options.WriterOptions,
		logger:        options.Logger,
	}
	if e.registry == nil {
		e.registry = DefaultOptions.Registry
	}
	if e.logger == nil {
		e.logger = DefaultOptions.Logger
	}
	if e.source == nil {
		e.source = source.New(&source.Options{
			Logger: e.logger,
		})
	}
	return e
}

// Rewrite reads the inventory from r and writes it to w with additional
// entries. Every body line is copied in order. An entry whose class lives
// in a registered legacy module is followed by a new entry naming the
// class at the first target that provides it.
//
// If the inventory's project does not match the registry's project an
// *IdentityMismatchError is returned before anything is written to w.
func (e *Engine) Rewrite(ctx context.Context, w io.Writer, r io.Reader) (Stats, error) {
	var stats Stats

	ir, err := inventory.NewReader(io.NopCloser(r), e.readerOptions)
	if err != nil {
		return stats, err
	}
	defer ir.Close()

	h := ir.Header()
	if !strings.EqualFold(h.Project(), e.registry.Project()) {
		return stats, &IdentityMismatchError{
			Want: e.registry.Project(),
			Got:  h.Project(),
		}
	}
	version := h.Version()

	iw, err := inventory.NewWriter(inventory.NopWriteCloser(w), h, e.writerOptions)
	if err != nil {
		return stats, err
	}

	cache := source.NewCache()
	s := entry.NewScanner(ir)
	for s.Scan() {
		if err := ctx.Err(); err != nil {
			iw.Abort()
			return stats, fmt.Errorf("rewriting inventory: %w", err)
		}

		line := s.Text()
		if err := iw.WriteLine(line); err != nil {
			iw.Abort()
			return stats, err
		}

		ent, ok := entry.Parse(line)
		if !ok {
			stats.Opaque++
			continue
		}
		stats.Entries++

		added := e.substitute(ctx, ent, version, cache)
		// A lookup interrupted by cancellation looks like a miss.
		if err := ctx.Err(); err != nil {
			iw.Abort()
			return stats, fmt.Errorf("rewriting inventory: %w", err)
		}
		if added == nil {
			continue
		}
		e.logger.Debug("adding entry", "entry", ent.Name, "added", added.Name)
		if err := iw.WriteLine(added.String()); err != nil {
			iw.Abort()
			return stats, err
		}
		stats.Added++
	}
	if err := s.Err(); err != nil {
		iw.Abort()
		return stats, err
	}
	if err := ctx.Err(); err != nil {
		iw.Abort()
		return stats, fmt.Errorf("rewriting inventory: %w", err)
	}

	if err := iw.Close(); err != nil {
		return stats, err
	}

	e.logger.Info("rewrote inventory",
		"project", h.Project(),
		"version", version,
		"entries", stats.Entries,
		"opaque", stats.Opaque,
		"added", stats.Added,
		"fetched", cache.Len(),
	)
	return stats, nil
}

// substitute returns the entry to add after ent, or nil if there is none.
func (e *Engine) substitute(ctx context.Context, ent *entry.Entry, version string, cache *source.Cache) *entry.Entry {
	module, class, member, ok := splitName(ent)
	if !ok {
		return nil
	}

	for _, t := range e.registry.Targets(module) {
		if ctx.Err() != nil {
			return nil
		}
		if !t.ClassNames(ctx, version, e.source, cache).Has(class) {
			continue
		}
		return &entry.Entry{
			Name:        t.SubstitutedName(class, member),
			Type:        ent.Type,
			Priority:    1,
			URI:         ent.ExpandedURI(),
			DisplayName: entry.NoDisplayName,
		}
	}
	return nil
}

// splitName splits an entry's name into the module owning the class, the
// class name and, for class members, the member name.
func splitName(ent *entry.Entry) (module, class, member string, ok bool) {
	parts := strings.Split(ent.Name, ".")
	n := len(parts)
	switch {
	case ent.Type == ClassType && n >= 2:
		return strings.Join(parts[:n-1], "."), parts[n-1], "", true
	case ent.Type != ClassType && ent.Domain() == classDomain && n >= 2:
		return strings.Join(parts[:n-2], "."), parts[n-2], parts[n-1], true
	default:
		return "", "", "", false
	}
}
