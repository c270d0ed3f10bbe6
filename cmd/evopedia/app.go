// Copyright 2026 The evopedia-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
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

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	evopedia "github.com/kiwix/evopedia-go"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = errors.New("parsing flags")

// ErrNoArchive indicates the --dir flag was not given.
var ErrNoArchive = errors.New("no archive directory given")

// must checks the error and panics if not nil.
func must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// openArchive opens the archive directory named by the --dir flag.
func openArchive(c *cli.Context) (*evopedia.Archive, error) {
	dir := c.String("dir")
	if dir == "" {
		return nil, fmt.Errorf("%w: pass --dir", ErrNoArchive)
	}
	return evopedia.NewArchiveFromDir(dir)
}

func newEvopediaApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Read an Evopedia offline encyclopedia archive.",
		Description: strings.Join([]string{
			"evopedia(1) queries the title index, article shards, spatial",
			"index and math-image store of an Evopedia archive directory.",
			"https://github.com/kiwix/evopedia-go",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Usage: "archive directory",
				Aliases: []string{
					"d",
				},
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"v"},
				DisableDefaultText: true,
			},
		},
		Commands: []*cli.Command{
			infoCommand(),
			titleCommand(),
			prefixCommand(),
			readCommand(),
			coordsCommand(),
			mathCommand(),
		},
		Copyright:       "The evopedia-go Authors",
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				versionInfo := version.GetVersionInfo()
				_ = must(fmt.Fprintf(c.App.Writer, "%s %s\n%s",
					c.App.Name, versionInfo.GitVersion, versionInfo.String()))
				return nil
			}
			return cli.ShowAppHelp(c)
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			_ = must(fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", c.App.Name, err))
			if errors.Is(err, ErrFlagParse) {
				cli.OsExiter(ExitCodeFlagParseError)
				return
			}
			cli.OsExiter(ExitCodeUnknownError)
		},
	}
}
