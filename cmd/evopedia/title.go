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
	"context"
	"fmt"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	evopedia "github.com/kiwix/evopedia-go"
)

func titleCommand() *cli.Command {
	return &cli.Command{
		Name:      "title",
		Usage:     "look up one title by exact name",
		ArgsUsage: "NAME",
		Action: func(c *cli.Context) error {
			name := c.Args().First()
			if name == "" {
				return fmt.Errorf("%w: NAME argument required", ErrFlagParse)
			}

			a, err := openArchive(c)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := context.Background()
			t, ok, err := a.GetTitleByName(ctx, name)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %q", evopedia.ErrNotFound, name)
			}
			if t.Redirect {
				t, err = a.ResolveRedirect(ctx, t)
				if err != nil {
					return err
				}
			}

			printTitleTable(t)
			return nil
		},
	}
}

func printTitleTable(t evopedia.Title) {
	tbl := table.New("name", "redirect", "file", "block start", "block offset", "length", "geolocation")
	geo := "-"
	if t.Geolocation != nil {
		geo = fmt.Sprintf("%.5f,%.5f", t.Geolocation[1], t.Geolocation[0])
	}
	tbl.AddRow(t.Name, fmt.Sprintf("%t", t.Redirect), t.FileNr, t.BlockStart, t.BlockOffset, t.ArticleLength, geo)
	tbl.Print()
}
