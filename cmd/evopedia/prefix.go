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
)

func prefixCommand() *cli.Command {
	return &cli.Command{
		Name:      "prefix",
		Usage:     "list titles starting with a prefix",
		ArgsUsage: "PREFIX",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "max",
				Usage:   "maximum number of results (-1 for unbounded)",
				Aliases: []string{"n"},
				Value:   20,
			},
		},
		Action: func(c *cli.Context) error {
			prefix := c.Args().First()
			if prefix == "" {
				return fmt.Errorf("%w: PREFIX argument required", ErrFlagParse)
			}

			a, err := openArchive(c)
			if err != nil {
				return err
			}
			defer a.Close()

			titles, err := a.FindTitlesWithPrefix(context.Background(), prefix, c.Int("max"))
			if err != nil {
				return err
			}

			tbl := table.New("name", "redirect", "offset")
			for _, t := range titles {
				tbl.AddRow(t.Name, fmt.Sprintf("%t", t.Redirect), t.TitleOffset)
			}
			tbl.Print()
			return nil
		},
	}
}
