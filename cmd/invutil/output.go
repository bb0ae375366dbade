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

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// output is the destination of a converted inventory. File outputs are
// written to a temporary file in the same directory that replaces the
// destination on commit.
type output struct {
	w    io.Writer
	f    *os.File
	path string
}

// createOutput returns an output writing to path, or to w if path is
// empty.
func createOutput(w io.Writer, path string) (*output, error) {
	if path == "" {
		return &output{w: w}, nil
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	return &output{
		w:    f,
		f:    f,
		path: path,
	}, nil
}

func (o *output) Write(p []byte) (int, error) {
	//nolint:wrapcheck // passthrough
	return o.w.Write(p)
}

// commit moves the written file into place.
func (o *output) commit() error {
	if o.f == nil {
		return nil
	}
	if err := o.f.Close(); err != nil {
		_ = os.Remove(o.f.Name())
		return fmt.Errorf("closing output: %w", err)
	}
	if err := os.Rename(o.f.Name(), o.path); err != nil {
		_ = os.Remove(o.f.Name())
		return fmt.Errorf("writing %q: %w", o.path, err)
	}
	return nil
}

// discard removes the temporary file.
func (o *output) discard() {
	if o.f == nil {
		return
	}
	_ = o.f.Close()
	_ = os.Remove(o.f.Name())
}

// convert reads inPath, passes it through fn and writes the result to
// outPath or, if outPath is empty, to stdout. Nothing is written to outPath
// unless fn succeeds.
func convert(stdout io.Writer, inPath, outPath string, fn func(w io.Writer, r io.Reader) error) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	out, err := createOutput(stdout, outPath)
	if err != nil {
		return err
	}
	if err := fn(out, in); err != nil {
		out.discard()
		return err
	}
	return out.commit()
}
