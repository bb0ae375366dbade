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
	"slices"
)

// Registry maps legacy module paths to the ordered list of targets their
// entries may be redirected to. A Registry is read-only once created.
type Registry struct {
	project string
	targets map[string][]Target
}

// NewRegistry returns a Registry for inventories of the given project.
// Targets for a module are tried in the order given.
func NewRegistry(project string, targets map[string][]Target) *Registry {
	r := &Registry{
		project: project,
		targets: make(map[string][]Target, len(targets)),
	}
	for module, t := range targets {
		r.targets[module] = slices.Clone(t)
	}
	return r
}

// Project returns the project name inventories must declare to be
// rewritten with this registry.
func (r *Registry) Project() string {
	return r.project
}

// Targets returns the targets registered for module in precedence order.
// It returns nil if module is not registered.
func (r *Registry) Targets(module string) []Target {
	return slices.Clone(r.targets[module])
}

// Modules returns the registered legacy module paths in sorted order.
func (r *Registry) Modules() []string {
	modules := make([]string, 0, len(r.targets))
	for m := range r.targets {
		modules = append(modules, m)
	}
	slices.Sort(modules)
	return modules
}

// Django is the registry for Django's inventory. Django documents many
// classes at the package that re-exports them rather than at the module
// that defines them.
var Django = NewRegistry("Django", map[string][]Target{
	"django.forms": {
		Dynamic("django.forms.widgets"),
		Dynamic("django.forms.fields"),
	},
	"django.db.models": {
		Fixed("django.db.models.base.Model"),
		Fixed("django.db.models.manager.Manager"),
		Fixed("django.db.models.query.Q"),
		Dynamic("django.db.models.fields"),
		Dynamic("django.db.models.fields.files"),
		Dynamic("django.db.models.fields.related"),
		Dynamic("django.db.models.aggregates"),
	},
})

// WithProject returns a copy of r for inventories of a different project
// name, such as a renamed fork.
func (r *Registry) WithProject(project string) *Registry {
	return NewRegistry(project, r.targets)
}
