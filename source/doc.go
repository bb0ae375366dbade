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

// Package source discovers the public class names of Python modules by
// fetching their published source.
//
// The source of a module is fetched from a URL built from a template. When
// the module is not found it is retried as a package (module/__init__.py)
// and then against a fallback URL that targets the default branch. A lookup
// that exhausts these attempts yields an empty set; it is never an error.
//
// Class names are taken from the module's __all__ assignment when it has
// one. Otherwise every top-level class declaration with a base list is
// collected.
package source
