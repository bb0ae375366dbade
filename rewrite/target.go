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
	"strings"

	"github.com/ianlewis/go-intersphinx/source"
)

// TargetKind is the kind of a substitution Target.
type TargetKind int

const (
	// DynamicKind targets are modules whose class names are discovered by
	// fetching their source.
	DynamicKind TargetKind = iota

	// FixedKind targets are single classes known in advance.
	FixedKind
)

// String returns the name of the kind.
func (k TargetKind) String() string {
	switch k {
	case DynamicKind:
		return "dynamic"
	case FixedKind:
		return "fixed"
	default:
		return "unknown"
	}
}

// ClassSource looks up the class names of a module at a version.
// [source.Introspector] implements ClassSource.
type ClassSource interface {
	ClassNames(ctx context.Context, module, version string) source.ClassSet
}

// Target is a canonical location that entries of a legacy module may be
// redirected to.
type Target struct {
	// Kind selects how the target's class names are resolved.
	Kind TargetKind

	// Name is the dotted module path of a DynamicKind target or the
	// qualified class name of a FixedKind target.
	Name string
}

// Dynamic returns a target for the module at the given dotted path.
func Dynamic(module string) Target {
	return Target{Kind: DynamicKind, Name: module}
}

// Fixed returns a target for the class with the given qualified name.
func Fixed(qualifiedClassName string) Target {
	return Target{Kind: FixedKind, Name: qualifiedClassName}
}

// String returns a description of the target.
func (t Target) String() string {
	return t.Kind.String() + ":" + t.Name
}

// ClassNames returns the class names the target provides at version. A
// FixedKind target provides only its own simple class name and never uses
// src. Sets fetched through src are stored in cache and reused unless ctx
// was canceled during the lookup.
func (t Target) ClassNames(ctx context.Context, version string, src ClassSource, cache *source.Cache) source.ClassSet {
	if t.Kind == FixedKind {
		return source.NewClassSet(lastSegment(t.Name))
	}

	if s, ok := cache.Get(t.String(), version); ok {
		return s
	}
	s := src.ClassNames(ctx, t.Name, version)
	if ctx.Err() == nil {
		cache.Put(t.String(), version, s)
	}
	return s
}

// SubstitutedName returns the qualified name of className, or of its member
// when member is not empty, at the target's location.
func (t Target) SubstitutedName(className, member string) string {
	var name string
	switch t.Kind {
	case FixedKind:
		name = t.Name
	default:
		name = t.Name + "." + className
	}
	if member != "" {
		name += "." + member
	}
	return name
}

func lastSegment(name string) string {
	return name[strings.LastIndex(name, ".")+1:]
}
