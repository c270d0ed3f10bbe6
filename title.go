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

// Title identifies one article, or a redirect to one.
//
// Redirect entries share this same field layout: when Redirect is true,
// BlockStart is an offset into the title index file itself, holding a
// 16-byte target record (see [Archive.ResolveRedirect]), rather than an
// offset into a data shard.
type Title struct {
	// Name is the article's display title.
	Name string

	// Redirect is true if this title is a redirect marker rather than an
	// article.
	Redirect bool

	// FileNr is the data shard ordinal holding the compressed block.
	// Meaningless (and not yet known) while Redirect is true.
	FileNr uint8

	// BlockStart is the byte offset of the compressed block within the
	// data shard (or, for an unresolved redirect, the byte offset of its
	// 16-byte target record within the title index file).
	BlockStart uint32

	// BlockOffset is the byte offset of the article's start within the
	// decompressed block.
	BlockOffset uint32

	// ArticleLength is the decoded article length in bytes.
	ArticleLength uint32

	// Geolocation is the article's coordinates, if any.
	Geolocation *Point

	// TitleOffset is this title's own byte offset within the title
	// index file.
	TitleOffset int64
}

// IsRedirect reports whether t is an unresolved redirect marker.
func (t Title) IsRedirect() bool {
	return t.Redirect
}
