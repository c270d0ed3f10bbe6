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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
)

// ReadArticle decompresses and returns title's article body. It feeds
// progressively larger compressed windows of the title's data shard to
// the bzip2 codec (growing by chunkSize each round) until the
// decompressed output contains the requested [blockOffset,
// blockOffset+articleLength) slice.
//
// Because bzip2 block decoding cannot resume mid-stream from a partial
// buffer, each round re-decodes from scratch over the larger window
// rather than feeding the codec incremental bytes; this is behaviorally
// equivalent to the source's feedback loop at the cost of redundant CPU
// work on the smaller, discarded rounds.
func (a *Archive) ReadArticle(ctx context.Context, t Title) (string, error) {
	if t.Redirect {
		return "", fmt.Errorf("%w: title is an unresolved redirect", errEvopedia)
	}

	shard, shardSize, err := a.dataShard(t.FileNr)
	if err != nil {
		return "", err
	}

	needed := int64(t.BlockOffset) + int64(t.ArticleLength)
	readLength := int64(chunkSize)

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		available := shardSize - int64(t.BlockStart)
		if available <= 0 {
			return "", fmt.Errorf("%w: block start past end of shard", ErrTruncated)
		}
		window := readLength
		if window > available {
			window = available
		}

		compressed, err := readRange(shard, int64(t.BlockStart), int(window))
		if err != nil {
			return "", err
		}

		out, decErr := decompressAll(compressed)

		if int64(len(out)) >= needed {
			body := out[t.BlockOffset : int64(t.BlockOffset)+int64(t.ArticleLength)]
			return string(body), nil
		}

		// Not enough output yet. If the codec reported a structural
		// failure unrelated to running out of input, it's fatal; a
		// "ran out of input" condition (or simply "not enough bytes
		// yet" with no error at all) means we should grow the window
		// and retry, unless we've exhausted the shard.
		if decErr != nil && !isIncompleteInputErr(decErr) {
			if isMissingMagicErr(decErr) {
				return "", fmt.Errorf("%w: %w", ErrCorruptBlock, decErr)
			}
			return "", fmt.Errorf("%w: %w", ErrDecompressionFailed, decErr)
		}

		if window >= available {
			return "", fmt.Errorf("%w: article extends past end of shard", ErrTruncated)
		}
		readLength += chunkSize
	}
}

// dataShard returns the *os.File and size for the data shard addressed by
// fileNr.
func (a *Archive) dataShard(fileNr uint8) (shard *os.File, size int64, err error) {
	idx := int(fileNr)
	if idx < 0 || idx >= len(a.dataShards) || a.dataShards[idx] == nil {
		return nil, 0, fmt.Errorf("%w: wikipedia_%02d.dat", ErrMissingShard, fileNr)
	}
	f := a.dataShards[idx]
	sz, err := fileSize(f)
	if err != nil {
		return nil, 0, err
	}
	return f, sz, nil
}

// decompressAll decompresses as much of compressed as is valid bzip2
// data, returning whatever prefix of output it managed to produce
// alongside any error encountered once it ran out of usable input.
func decompressAll(compressed []byte) ([]byte, error) {
	r, err := bzip2.NewReader(bytes.NewReader(compressed), nil)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil && errors.Is(err, io.EOF) {
		err = nil
	}
	return out, err
}

// isIncompleteInputErr reports whether err looks like "the compressed
// window ended before the codec had enough bits to finish its block",
// the signal to grow the read window and retry.
func isIncompleteInputErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unexpected eof") || strings.Contains(msg, "eof")
}

// isMissingMagicErr reports whether err is bzip2's "not a bzip2 stream"
// structural error, mapped to ErrCorruptBlock.
func isMissingMagicErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "magic")
}
