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

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-intersphinx/inventory"
)

var decodeCommand = &cli.Command{
	Name:         "decode",
	Usage:        "decompress an inventory to text",
	ArgsUsage:    "[INPUT [OUTPUT]]",
	OnUsageError: usageError,
	Description: `Writes the header and decompressed body of INPUT (default
objects.inv) to OUTPUT (default stdout).`,
	Action: func(c *cli.Context) error {
		if err := checkArgs(c, 2); err != nil {
			return err
		}
		in := c.Args().Get(0)
		if in == "" {
			in = defaultInventory
		}

		logger := newLogger(c)
		return convert(c.App.Writer, in, c.Args().Get(1), func(w io.Writer, r io.Reader) error {
			h, err := inventory.Decode(w, r, &inventory.DecodeOptions{
				IncludeHeader: true,
			})
			if err != nil {
				return fmt.Errorf("decoding %q: %w", in, err)
			}
			logger.Debug("decoded inventory", "project", h.Project(), "version", h.Version())
			return nil
		})
	},
}

var encodeCommand = &cli.Command{
	Name:         "encode",
	Usage:        "compress text to an inventory",
	ArgsUsage:    "INPUT [OUTPUT]",
	OnUsageError: usageError,
	Description: `Writes INPUT, a header of four lines followed by entries, as a
compressed inventory to OUTPUT (default stdout).`,
	Action: func(c *cli.Context) error {
		if err := checkArgs(c, 2); err != nil {
			return err
		}
		in := c.Args().Get(0)
		if in == "" {
			return fmt.Errorf("%w: %w", ErrFlagParse, errMissingInput)
		}

		return convert(c.App.Writer, in, c.Args().Get(1), func(w io.Writer, r io.Reader) error {
			if err := inventory.Encode(w, r, nil); err != nil {
				return fmt.Errorf("encoding %q: %w", in, err)
			}
			return nil
		})
	},
}
