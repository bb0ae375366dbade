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

var listCommand = &cli.Command{
	Name:         "list",
	Usage:        "list inventory entries",
	ArgsUsage:    "[INPUT]",
	OnUsageError: usageError,
	Description:  `Lists all entries in the inventory INPUT (default objects.inv).`,
	Action: func(c *cli.Context) error {
		if err := checkArgs(c, 1); err != nil {
			return err
		}
		in := c.Args().Get(0)
		if in == "" {
			in = defaultInventory
		}

		inv, err := intersphinx.Open(in)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(c.App.Writer, "%s %s\n\n", inv.Project(), inv.Version()); err != nil {
			return err
		}

		tbl := table.New("Name", "Type", "Priority", "URI", "Display Name").WithWriter(c.App.Writer)
		for _, e := range inv.Entries() {
			tbl.AddRow(e.Name, e.Type, e.Priority, e.URI, e.DisplayName)
		}
		tbl.Print()

		return nil
	},
}
