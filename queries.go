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

package evopedia

import "context"

// GetTitleByName resolves an exact title lookup, applying the archive's
// normalization uniformly to both the query and the on-disk titles. It
// returns (Title{}, false, nil) when no title matches.
func (a *Archive) GetTitleByName(ctx context.Context, name string) (Title, bool, error) {
	if err := ctx.Err(); err != nil {
		return Title{}, false, err
	}
	return a.titleIdx.getTitleByName(name)
}

// FindTitlesWithPrefix returns titles whose normalized name starts with
// normalize(prefix), in on-disk order, up to maxSize entries (maxSize < 0
// means unbounded).
func (a *Archive) FindTitlesWithPrefix(ctx context.Context, prefix string, maxSize int) ([]Title, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return a.titleIdx.findTitlesWithPrefix(prefix, maxSize)
}

// GetTitlesStartingAtOffset returns up to count titles in on-disk order
// starting at the given title-index byte offset.
func (a *Archive) GetTitlesStartingAtOffset(ctx context.Context, offset int64, count int) ([]Title, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return a.titleIdx.titlesStartingAtOffset(offset, count)
}

// GetRandomTitle returns the title at the first record boundary after a
// uniformly chosen byte offset within the title index, wrapping to the
// first title when no boundary follows it.
func (a *Archive) GetRandomTitle(ctx context.Context) (Title, error) {
	if err := ctx.Err(); err != nil {
		return Title{}, err
	}
	return a.titleIdx.randomTitle()
}
