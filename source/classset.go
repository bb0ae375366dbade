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
	"slices"
)

// ClassSet is a set of class names.
type ClassSet map[string]struct{}

// NewClassSet returns a set holding the given names.
func NewClassSet(names ...string) ClassSet {
	s := make(ClassSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is in the set.
func (s ClassSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the names in the set in sorted order.
func (s ClassSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Cache holds class sets already resolved during one run. The zero value is
// not usable; create a Cache with NewCache.
type Cache struct {
	sets map[cacheKey]ClassSet
}

type cacheKey struct {
	target  string
	version string
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{
		sets: map[cacheKey]ClassSet{},
	}
}

// Get returns the class set stored for target at version.
func (c *Cache) Get(target, version string) (ClassSet, bool) {
	s, ok := c.sets[cacheKey{target: target, version: version}]
	return s, ok
}

// Put stores the class set for target at version.
func (c *Cache) Put(target, version string, s ClassSet) {
	c.sets[cacheKey{target: target, version: version}] = s
}

// Len returns the number of stored class sets.
func (c *Cache) Len() int {
	return len(c.sets)
}
