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

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-intersphinx"
)

// errNoMatch is returned when a query matches no entry.
var errNoMatch = fmt.Errorf("%w: no matching entries", ErrInvutil)

var queryCommand = &cli.Command{
	Name:         "query",
	Usage:        "look up an object in an inventory",
	ArgsUsage:    "NAME [INPUT]",
	OnUsageError: usageError,
	Description: `Prints the entries for the object NAME in the inventory INPUT
(default objects.inv) and their documentation URLs.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "documentation root `URL` the entry URIs are relative to",
			EnvVars: []string{"INVUTIL_BASE_URL"},
		},
	},
	Action: func(c *cli.Context) error {
		if err := checkArgs(c, 2); err != nil {
			return err
		}
		name := c.Args().Get(0)
		if name == "" {
			return fmt.Errorf("%w: missing object name", ErrFlagParse)
		}
		in := c.Args().Get(1)
		if in == "" {
			in = defaultInventory
		}

		inv, err := intersphinx.Open(in)
		if err != nil {
			return err
		}

		entries := inv.Search(name)
		if len(entries) == 0 {
			return fmt.Errorf("%w: %q", errNoMatch, name)
		}

		tbl := table.New("Type", "Priority", "URL", "Display Name").WithWriter(c.App.Writer)
		for _, e := range entries {
			tbl.AddRow(e.Type, e.Priority, intersphinx.Resolve(c.String("base-url"), e), e.DisplayName)
		}
		tbl.Print()

		return nil
	},
}
