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

import (
	"bytes"
	"fmt"
	"io"

	"github.com/joho/godotenv"
)

// Metadata holds the parsed contents of an archive's metadata.txt.
type Metadata struct {
	Language         string
	Date             string
	NormalizedTitles bool
}

// parseMetadata parses metadata.txt's "key = value" lines. language and
// date are required; normalized_titles defaults to true unless its value
// is exactly "0".
func parseMetadata(r io.Reader) (Metadata, error) {
	values, err := godotenv.Parse(r)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: parsing metadata: %w", ErrInvalidArchive, err)
	}

	lang, ok := values["language"]
	if !ok {
		return Metadata{}, fmt.Errorf("%w: missing language", ErrInvalidArchive)
	}
	date, ok := values["date"]
	if !ok {
		return Metadata{}, fmt.Errorf("%w: missing date", ErrInvalidArchive)
	}

	normalized := true
	if v, ok := values["normalized_titles"]; ok && v == "0" {
		normalized = false
	}

	return Metadata{
		Language:         lang,
		Date:             date,
		NormalizedTitles: normalized,
	}, nil
}

// parseMetadataBytes is a convenience wrapper over parseMetadata for
// callers (and tests) that already hold the file contents in memory.
func parseMetadataBytes(b []byte) (Metadata, error) {
	return parseMetadata(bytes.NewReader(b))
}
