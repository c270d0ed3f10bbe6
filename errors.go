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
	"errors"
	"fmt"
)

// errEvopedia is the base error all package errors wrap.
var errEvopedia = errors.New("evopedia")

var (
	// ErrNotFound indicates a missing file or index record.
	ErrNotFound = fmt.Errorf("%w: not found", errEvopedia)

	// ErrTruncated indicates a read past the end of a shard.
	ErrTruncated = fmt.Errorf("%w: truncated", errEvopedia)

	// ErrCorruptBlock indicates a bzip2 block with no magic number.
	ErrCorruptBlock = fmt.Errorf("%w: corrupt block", errEvopedia)

	// ErrDecompressionFailed indicates a codec failure other than a
	// missing magic number.
	ErrDecompressionFailed = fmt.Errorf("%w: decompression failed", errEvopedia)

	// ErrMissingShard indicates a title references a data shard that is
	// not present in the archive.
	ErrMissingShard = fmt.Errorf("%w: missing data shard", errEvopedia)

	// ErrIO indicates an underlying storage failure.
	ErrIO = fmt.Errorf("%w: io error", errEvopedia)

	// ErrInvalidArchive indicates metadata parsing failed or a required
	// file is absent.
	ErrInvalidArchive = fmt.Errorf("%w: invalid archive", errEvopedia)

	// ErrSearchInProgress indicates a second GetTitlesInCoords call was
	// made while one was already in flight on the same archive.
	ErrSearchInProgress = fmt.Errorf("%w: search already in progress, retry", errEvopedia)

	// ErrEndOfIndex indicates a sequential title-index scan has reached
	// the end of the file with no further record to decode.
	ErrEndOfIndex = fmt.Errorf("%w: end of title index", errEvopedia)
)

func ioErr(err error) error {
	return fmt.Errorf("%w: %w", ErrIO, err)
}

func notFoundErr(name string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}
