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
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"
	"os"
)

// readRange reads exactly length bytes from f starting at offset. It fails
// with ErrIO on an underlying read error and ErrTruncated if fewer than
// length bytes are available.
func readRange(f *os.File, offset int64, length int) ([]byte, error) {
	buf := make([]byte, length)
	n, err := f.ReadAt(buf, offset)
	if err != nil {
		if errors.Is(err, io.EOF) {
			if n == length {
				return buf, nil
			}
			return buf[:n], fmt.Errorf("%w: %s", ErrTruncated, f.Name())
		}
		return nil, ioErr(err)
	}
	return buf, nil
}

// fileSize returns the size in bytes of f.
func fileSize(f *os.File) (int64, error) {
	fi, err := f.Stat()
	if err != nil {
		return 0, ioErr(err)
	}
	return fi.Size(), nil
}

// u16le decodes a little-endian uint16 from the first 2 bytes of b.
func u16le(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}

// u32le decodes a little-endian uint32 from the first 4 bytes of b.
func u32le(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

// f32le decodes a little-endian IEEE-754 single-precision float from the
// first 4 bytes of b.
func f32le(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// hexEncode returns the lowercase hex encoding of b.
func hexEncode(b []byte) string {
	return hex.EncodeToString(b)
}

// stripURLQueryAndFragment removes any "?query" or "#fragment" suffix from
// a request path, returning the bare path component.
func stripURLQueryAndFragment(s string) string {
	if i := indexAny(s, "?#"); i >= 0 {
		return s[:i]
	}
	return s
}

func indexAny(s, cutset string) int {
	for i, r := range s {
		for _, c := range cutset {
			if r == c {
				return i
			}
		}
	}
	return -1
}

// urlDecodePath percent-decodes a path component, used by callers that
// receive raw request paths from the embedding application shell.
func urlDecodePath(s string) (string, error) {
	u, err := url.PathUnescape(s)
	if err != nil {
		return "", fmt.Errorf("%w: decoding path: %w", errEvopedia, err)
	}
	return u, nil
}
