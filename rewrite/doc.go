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

// Package rewrite adds inventory entries that redirect objects documented
// under a legacy module path to the module that actually defines them.
//
// Projects often document a class at the package that re-exports it, e.g.
// django.db.models.CharField, while other projects' documentation refers to
// the defining module, django.db.models.fields.CharField. A Registry lists,
// for each legacy module, the candidate modules (or fixed classes) in
// precedence order. For every entry of a registered module the Engine adds
// one entry naming the class at the first candidate that provides it. The
// original entries are never changed or removed.
package rewrite
