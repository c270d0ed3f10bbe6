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

const redirectPayloadLen = 16

// ResolveRedirect rewrites t's shard/offset fields in place from its
// 16-byte redirect payload (stored at t.BlockStart within the title
// index file) and returns the same title identity with updated pointers.
// Calling ResolveRedirect on a title that is not a redirect is a no-op.
func (a *Archive) ResolveRedirect(ctx context.Context, t Title) (Title, error) {
	if err := ctx.Err(); err != nil {
		return Title{}, err
	}
	if !t.Redirect {
		return t, nil
	}

	buf, err := readRange(a.titleFile, int64(t.BlockStart), redirectPayloadLen)
	if err != nil {
		return Title{}, err
	}

	t.FileNr = buf[2]
	t.BlockStart = u32le(buf[3:7])
	t.BlockOffset = u32le(buf[7:11])
	t.ArticleLength = u32le(buf[11:15])
	t.Redirect = false
	return t, nil
}
