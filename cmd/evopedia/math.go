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

	"github.com/urfave/cli/v2"
)

func mathCommand() *cli.Command {
	return &cli.Command{
		Name:      "math",
		Usage:     "dump a rendered math image's raw bytes to stdout",
		ArgsUsage: "HEXHASH",
		Action: func(c *cli.Context) error {
			hexHash := c.Args().First()
			if hexHash == "" {
				return fmt.Errorf("%w: HEXHASH argument required", ErrFlagParse)
			}

			a, err := openArchive(c)
			if err != nil {
				return err
			}
			defer a.Close()

			img, err := a.LoadMathImage(context.Background(), hexHash)
			if err != nil {
				return err
			}

			_, err = c.App.Writer.Write(img)
			return err
		},
	}
}
