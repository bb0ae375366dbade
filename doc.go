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

// Package intersphinx implements a library for reading and rewriting Sphinx
// intersphinx inventories (objects.inv files) in pure Go.
//
// Sphinx publishes an objects.inv file with every documentation build. It
// maps the names of documented objects to their location so that other
// projects can link to them. The library is split into several packages:
//  1. inventory: reading and writing the objects.inv file format.
//  2. entry: parsing the entries of the decompressed inventory body.
//  3. source: discovering the public classes of Python modules from their
//     published source.
//  4. rewrite: adding entries that redirect objects documented at a legacy
//     module path to the module that defines them.
//
// This package loads a whole inventory into memory for lookups.
//
// More info on the inventory format can be found at this URL:
// https://sphobjinv.readthedocs.io/en/stable/syntax.html
package intersphinx
