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

	"github.com/ianlewis/go-intersphinx/internal/httpclient"
	"github.com/ianlewis/go-intersphinx/rewrite"
	"github.com/ianlewis/go-intersphinx/source"
)

var rewriteCommand = &cli.Command{
	Name:         "rewrite",
	Aliases:      []string{"djangofix"},
	Usage:        "add entries for classes documented at legacy module paths",
	ArgsUsage:    "[INPUT [OUTPUT]]",
	OnUsageError: usageError,
	Description: `Rewrites the Django inventory INPUT (default objects.inv) to OUTPUT
(default stdout). Every class documented at a module that re-exports it
gets an additional entry at the module that defines it. The defining
module's classes are read from the Django source for the inventory's
version.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "source-url",
			Usage:   "source URL `TEMPLATE`; {version} and {module} are substituted",
			EnvVars: []string{"INVUTIL_SOURCE_URL"},
			Value:   source.DefaultURLTemplate,
		},
		&cli.StringFlag{
			Name:    "fallback-url",
			Usage:   "source URL `TEMPLATE` tried when a module is not found",
			EnvVars: []string{"INVUTIL_FALLBACK_URL"},
			Value:   source.DefaultFallbackTemplate,
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "timeout for each source request",
			EnvVars: []string{"INVUTIL_TIMEOUT"},
			Value:   httpclient.DefaultConfig().Timeout,
		},
		&cli.StringFlag{
			Name:    "project",
			Usage:   "project `NAME` the inventory must declare",
			EnvVars: []string{"INVUTIL_PROJECT"},
			Value:   rewrite.Django.Project(),
		},
	},
	Action: func(c *cli.Context) error {
		if err := checkArgs(c, 2); err != nil {
			return err
		}
		in := c.Args().Get(0)
		if in == "" {
			in = defaultInventory
		}

		engine := newEngine(c)
		return convert(c.App.Writer, in, c.Args().Get(1), func(w io.Writer, r io.Reader) error {
			if _, err := engine.Rewrite(c.Context, w, r); err != nil {
				return fmt.Errorf("rewriting %q: %w", in, err)
			}
			return nil
		})
	},
}

func newEngine(c *cli.Context) *rewrite.Engine {
	logger := newLogger(c)

	cfg := httpclient.DefaultConfig()
	cfg.Timeout = c.Duration("timeout")

	registry := rewrite.Django
	if p := c.String("project"); p != registry.Project() {
		registry = registry.WithProject(p)
	}

	return rewrite.New(&rewrite.Options{
		Registry: registry,
		Source: source.New(&source.Options{
			Client:           httpclient.New(cfg),
			URLTemplate:      c.String("source-url"),
			FallbackTemplate: c.String("fallback-url"),
			Logger:           logger,
		}),
		Logger: logger,
	})
}
