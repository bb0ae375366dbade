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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError

	// ExitCodeIdentityMismatch is the exit code used when an inventory
	// belongs to a different project than expected.
	ExitCodeIdentityMismatch
)

// defaultInventory is the inventory read when no input path is given.
const defaultInventory = "objects.inv"

// ErrInvutil is a parent error for all command errors.
var ErrInvutil = errors.New("invutil")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrInvutil)

var errMissingInput = errors.New("missing input path")

var copyrightNames = []string{
	"2026 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't use commands.
	//
	// This is done because `invutil --help foo` will display a
	// "command foo not found" error instead of the help.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// ignoreExitErr leaves errors to main, which maps them to exit codes.
func ignoreExitErr(*cli.Context, error) {}

func usageError(_ *cli.Context, err error, _ bool) error {
	return fmt.Errorf("%w: %w", ErrFlagParse, err)
}

// checkArgs returns an error if more than max positional arguments were
// given.
func checkArgs(c *cli.Context, maxArgs int) error {
	if c.NArg() > maxArgs {
		return fmt.Errorf("%w: expected at most %d arguments, got %d", ErrFlagParse, maxArgs, c.NArg())
	}
	return nil
}

// newLogger returns the logger for a command. Output goes to the app's
// error writer.
func newLogger(c *cli.Context) *log.Logger {
	level := log.WarnLevel
	if c.Bool("verbose") {
		level = log.DebugLevel
	}
	return log.NewWithOptions(c.App.ErrWriter, log.Options{
		Level:  level,
		Prefix: c.App.Name,
	})
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()
	_, err := fmt.Fprintf(c.App.Writer, `%s %s
Copyright (c) %s

%s`, c.App.Name, versionInfo.GitVersion, strings.Join(copyrightNames, "\n"), versionInfo.String())
	return err
}

func newInvutilApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Read and rewrite Sphinx intersphinx inventories.",
		Description: strings.Join([]string{
			"Sphinx objects.inv utility written in Go.",
			"http://github.com/ianlewis/go-intersphinx",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:               "verbose",
				Usage:              "log progress to stderr",
				Aliases:            []string{"v"},
				EnvVars:            []string{"INVUTIL_VERBOSE"},
				DisableDefaultText: true,
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError:    usageError,
		ExitErrHandler:  ignoreExitErr,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			decodeCommand,
			encodeCommand,
			rewriteCommand,
			listCommand,
			queryCommand,
		},
	}
}
