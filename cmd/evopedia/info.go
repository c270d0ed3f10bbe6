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
	"fmt"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
)

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "print archive metadata",
		Action: func(c *cli.Context) error {
			a, err := openArchive(c)
			if err != nil {
				return err
			}
			defer a.Close()

			md := a.Metadata()
			tbl := table.New("field", "value")
			tbl.AddRow("language", md.Language)
			tbl.AddRow("date", md.Date)
			tbl.AddRow("normalized titles", fmt.Sprintf("%t", md.NormalizedTitles))
			tbl.AddRow("ready", fmt.Sprintf("%t", a.IsReady()))
			tbl.Print()
			return nil
		},
	}
}
