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

package rewrite_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-intersphinx/internal/testutil"
	"github.com/ianlewis/go-intersphinx/inventory"
	"github.com/ianlewis/go-intersphinx/rewrite"
	"github.com/ianlewis/go-intersphinx/source"
)

// fakeSource serves fixed class sets and records lookups.
type fakeSource struct {
	sets  map[string]source.ClassSet
	calls []string
}

func (f *fakeSource) ClassNames(_ context.Context, module, version string) source.ClassSet {
	f.calls = append(f.calls, module+"@"+version)
	return f.sets[module]
}

var testRegistry = rewrite.NewRegistry("Django", map[string][]rewrite.Target{
	"pkg.old": {
		rewrite.Dynamic("pkg.t1"),
		rewrite.Dynamic("pkg.t2"),
	},
	"pkg.models": {
		rewrite.Fixed("pkg.models.base.Model"),
		rewrite.Dynamic("pkg.models.fields"),
	},
})

// TestEngine_Rewrite tests Engine.Rewrite.
func TestEngine_Rewrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body []string
		sets map[string]source.ClassSet

		expected []string
		calls    []string
	}{
		{
			name: "first target matches",
			body: []string{"pkg.old.Foo py:class 1 $ -"},
			sets: map[string]source.ClassSet{
				"pkg.t1": source.NewClassSet("Foo"),
				"pkg.t2": source.NewClassSet("Foo"),
			},
			expected: []string{
				"pkg.old.Foo py:class 1 $ -",
				"pkg.t1.Foo py:class 1 pkg.old.Foo -",
			},
			calls: []string{"pkg.t1@1.4"},
		},
		{
			name: "second target matches",
			body: []string{"pkg.old.Foo py:class 2 api.html#$ Foo class"},
			sets: map[string]source.ClassSet{
				"pkg.t2": source.NewClassSet("Foo"),
			},
			expected: []string{
				"pkg.old.Foo py:class 2 api.html#$ Foo class",
				"pkg.t2.Foo py:class 1 api.html#pkg.old.Foo -",
			},
			calls: []string{"pkg.t1@1.4", "pkg.t2@1.4"},
		},
		{
			name: "no match",
			body: []string{"pkg.old.Bar py:class 1 $ -"},
			sets: map[string]source.ClassSet{
				"pkg.t1": source.NewClassSet("Foo"),
				"pkg.t2": source.NewClassSet(),
			},
			expected: []string{"pkg.old.Bar py:class 1 $ -"},
			calls:    []string{"pkg.t1@1.4", "pkg.t2@1.4"},
		},
		{
			name: "member",
			body: []string{"pkg.old.Foo.save py:method 1 api.html#$ -"},
			sets: map[string]source.ClassSet{
				"pkg.t1": source.NewClassSet("Foo"),
			},
			expected: []string{
				"pkg.old.Foo.save py:method 1 api.html#$ -",
				"pkg.t1.Foo.save py:method 1 api.html#pkg.old.Foo.save -",
			},
			calls: []string{"pkg.t1@1.4"},
		},
		{
			name: "fixed target",
			body: []string{
				"pkg.models.Model py:class 1 $ -",
				"pkg.models.Model.objects py:attribute 1 $ -",
			},
			expected: []string{
				"pkg.models.Model py:class 1 $ -",
				"pkg.models.base.Model py:class 1 pkg.models.Model -",
				"pkg.models.Model.objects py:attribute 1 $ -",
				"pkg.models.base.Model.objects py:attribute 1 pkg.models.Model.objects -",
			},
		},
		{
			name: "cached",
			body: []string{
				"pkg.models.CharField py:class 1 $ -",
				"pkg.models.CharField.max_length py:attribute 1 $ -",
				"pkg.models.TextField py:class 1 $ -",
			},
			sets: map[string]source.ClassSet{
				"pkg.models.fields": source.NewClassSet("CharField"),
			},
			expected: []string{
				"pkg.models.CharField py:class 1 $ -",
				"pkg.models.fields.CharField py:class 1 pkg.models.CharField -",
				"pkg.models.CharField.max_length py:attribute 1 $ -",
				"pkg.models.fields.CharField.max_length py:attribute 1 pkg.models.CharField.max_length -",
				"pkg.models.TextField py:class 1 $ -",
			},
			calls: []string{"pkg.models.fields@1.4"},
		},
		{
			name: "opaque and unregistered lines",
			body: []string{
				"this line is not an entry",
				"my-label std:label -1 ref/#my-label My label",
				"pkg.other.Foo py:class 1 $ -",
				"pkg.old std:doc -1 ref/ Old package",
				"Foo py:class 1 $ -",
			},
			sets: map[string]source.ClassSet{
				"pkg.t1": source.NewClassSet("Foo"),
			},
			expected: []string{
				"this line is not an entry",
				"my-label std:label -1 ref/#my-label My label",
				"pkg.other.Foo py:class 1 $ -",
				"pkg.old std:doc -1 ref/ Old package",
				"Foo py:class 1 $ -",
			},
		},
		{
			name: "crlf lines end in lf",
			body: []string{
				"this line is not an entry\r",
				"pkg.old.Foo py:class 1 $ -\r",
			},
			sets: map[string]source.ClassSet{
				"pkg.t1": source.NewClassSet("Foo"),
			},
			expected: []string{
				"this line is not an entry",
				"pkg.old.Foo py:class 1 $ -",
				"pkg.t1.Foo py:class 1 pkg.old.Foo -",
			},
			calls: []string{"pkg.t1@1.4"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			src := &fakeSource{sets: test.sets}
			e := rewrite.New(&rewrite.Options{
				Registry: testRegistry,
				Source:   src,
			})

			in := testutil.MakeInventory(t, testutil.DjangoHeader, testutil.MakeBody(test.body...))
			var out bytes.Buffer
			if _, err := e.Rewrite(context.Background(), &out, bytes.NewReader(in)); err != nil {
				t.Fatal(err)
			}

			header, body := testutil.Decompress(t, out.Bytes())
			if diff := cmp.Diff(testutil.DjangoHeader, header); diff != "" {
				t.Errorf("header (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(string(testutil.MakeBody(test.expected...)), string(body)); diff != "" {
				t.Errorf("body (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.calls, src.calls); diff != "" {
				t.Errorf("source lookups (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestEngine_Rewrite_stats tests the Stats returned by Rewrite.
func TestEngine_Rewrite_stats(t *testing.T) {
	t.Parallel()

	e := rewrite.New(&rewrite.Options{
		Registry: testRegistry,
		Source: &fakeSource{sets: map[string]source.ClassSet{
			"pkg.t1": source.NewClassSet("Foo"),
		}},
	})

	in := testutil.MakeInventory(t, testutil.DjangoHeader, testutil.MakeBody(
		"pkg.old.Foo py:class 1 $ -",
		"pkg.old.Bar py:class 1 $ -",
		"opaque",
	))
	stats, err := e.Rewrite(context.Background(), &bytes.Buffer{}, bytes.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(rewrite.Stats{Entries: 2, Opaque: 1, Added: 1}, stats); diff != "" {
		t.Fatalf("Stats (-want, +got):\n%s", diff)
	}
}

// TestEngine_Rewrite_identity tests the project preflight check.
func TestEngine_Rewrite_identity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		project string
		err     error
	}{
		{name: "exact", project: "Django"},
		{name: "case insensitive", project: "django"},
		{name: "mismatch", project: "Flask", err: rewrite.ErrIdentityMismatch},
		{name: "missing", project: "", err: rewrite.ErrIdentityMismatch},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			src := &fakeSource{}
			e := rewrite.New(&rewrite.Options{
				Registry: testRegistry,
				Source:   src,
			})

			header := strings.Replace(testutil.DjangoHeader, "Django", test.project, 1)
			in := testutil.MakeInventory(t, header, testutil.MakeBody("pkg.old.Foo py:class 1 $ -"))

			var out bytes.Buffer
			_, err := e.Rewrite(context.Background(), &out, bytes.NewReader(in))
			if !errors.Is(err, test.err) {
				t.Fatalf("Rewrite: got %v, want %v", err, test.err)
			}
			if test.err == nil {
				return
			}

			var mismatch *rewrite.IdentityMismatchError
			if !errors.As(err, &mismatch) {
				t.Fatalf("Rewrite: got %T, want *IdentityMismatchError", err)
			}
			if diff := cmp.Diff(test.project, mismatch.Got); diff != "" {
				t.Errorf("Got (-want, +got):\n%s", diff)
			}
			if out.Len() != 0 {
				t.Errorf("Rewrite wrote %d bytes", out.Len())
			}
			if len(src.calls) != 0 {
				t.Errorf("Rewrite looked up %v", src.calls)
			}
		})
	}
}

// TestEngine_Rewrite_errors tests that codec errors abort the rewrite.
func TestEngine_Rewrite_errors(t *testing.T) {
	t.Parallel()

	valid := testutil.MakeInventory(t, testutil.DjangoHeader, testutil.MakeBody(
		"pkg.old.Foo py:class 1 $ -",
		"pkg.old.Bar py:class 1 $ -",
		"pkg.old.Baz py:class 1 $ -",
	))

	tests := []struct {
		name string
		data []byte
		err  error
	}{
		{
			name: "short header",
			data: []byte("# Sphinx inventory version 2\n"),
			err:  inventory.ErrFraming,
		},
		{
			name: "truncated body",
			data: valid[:len(valid)-8],
			err:  inventory.ErrCompression,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			e := rewrite.New(&rewrite.Options{
				Registry: testRegistry,
				Source:   &fakeSource{},
			})
			_, err := e.Rewrite(context.Background(), &bytes.Buffer{}, bytes.NewReader(test.data))
			if !errors.Is(err, test.err) {
				t.Fatalf("Rewrite: got %v, want %v", err, test.err)
			}
		})
	}
}

// TestEngine_Rewrite_canceled tests that a canceled context aborts the
// rewrite.
func TestEngine_Rewrite_canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := rewrite.New(&rewrite.Options{
		Registry: testRegistry,
		Source:   &fakeSource{},
	})
	in := testutil.MakeInventory(t, testutil.DjangoHeader, testutil.MakeBody("pkg.old.Foo py:class 1 $ -"))
	_, err := e.Rewrite(ctx, &bytes.Buffer{}, bytes.NewReader(in))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Rewrite: got %v, want %v", err, context.Canceled)
	}
}

// cancelingSource cancels the run from inside a lookup and returns an empty
// set the way a lookup interrupted by cancellation does.
type cancelingSource struct {
	cancel context.CancelFunc
	calls  int
}

func (c *cancelingSource) ClassNames(_ context.Context, _, _ string) source.ClassSet {
	c.calls++
	c.cancel()
	return source.ClassSet{}
}

// TestEngine_Rewrite_canceledLookup tests that a run canceled while looking
// up the last entry fails instead of dropping the entry's substitution.
func TestEngine_Rewrite_canceledLookup(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &cancelingSource{cancel: cancel}
	e := rewrite.New(&rewrite.Options{
		Registry: testRegistry,
		Source:   src,
	})
	in := testutil.MakeInventory(t, testutil.DjangoHeader, testutil.MakeBody("pkg.old.Foo py:class 1 $ -"))

	var out bytes.Buffer
	stats, err := e.Rewrite(ctx, &out, bytes.NewReader(in))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Rewrite: got %v, want %v", err, context.Canceled)
	}
	if diff := cmp.Diff(rewrite.Stats{Entries: 1}, stats); diff != "" {
		t.Errorf("Stats (-want, +got):\n%s", diff)
	}
	if got, want := src.calls, 1; got != want {
		t.Errorf("lookups: got %d, want %d", got, want)
	}
}

// TestTarget_ClassNames_canceled tests that a lookup interrupted by
// cancellation is not cached.
func TestTarget_ClassNames_canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &cancelingSource{cancel: cancel}
	cache := source.NewCache()
	target := rewrite.Dynamic("pkg.t1")

	if got := target.ClassNames(ctx, "1.4", src, cache); len(got) != 0 {
		t.Errorf("ClassNames: got %v, want empty", got.Names())
	}
	if _, ok := cache.Get(target.String(), "1.4"); ok {
		t.Errorf("canceled lookup was cached")
	}
	if got, want := cache.Len(), 0; got != want {
		t.Errorf("cache.Len: got %d, want %d", got, want)
	}
}
