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
	"strconv"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	evopedia "github.com/kiwix/evopedia-go"
)

func coordsCommand() *cli.Command {
	return &cli.Command{
		Name:      "coords",
		Usage:     "find titles within a bounding box",
		ArgsUsage: "LON0 LAT0 LON1 LAT1",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "max",
				Usage:   "maximum number of results (-1 for unbounded)",
				Aliases: []string{"n"},
				Value:   20,
			},
		},
		Action: func(c *cli.Context) error {
			args := c.Args().Slice()
			if len(args) != 4 {
				return fmt.Errorf("%w: expected LON0 LAT0 LON1 LAT1", ErrFlagParse)
			}

			var f [4]float64
			for i, a := range args {
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("%w: %q: %w", ErrFlagParse, a, err)
				}
				f[i] = v
			}

			origin := evopedia.Point{min(f[0], f[2]), min(f[1], f[3])}
			rect := evopedia.NewRectangle(origin, max(f[0], f[2])-origin[0], max(f[1], f[3])-origin[1])

			a, err := openArchive(c)
			if err != nil {
				return err
			}
			defer a.Close()

			titles, err := a.GetTitlesInCoords(context.Background(), rect, c.Int("max"))
			if err != nil {
				return err
			}

			tbl := table.New("name", "lon", "lat")
			for _, t := range titles {
				lon, lat := "-", "-"
				if t.Geolocation != nil {
					lon = fmt.Sprintf("%.5f", t.Geolocation[0])
					lat = fmt.Sprintf("%.5f", t.Geolocation[1])
				}
				tbl.AddRow(t.Name, lon, lat)
			}
			tbl.Print()
			return nil
		},
	}
}
