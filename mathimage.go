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
	"encoding/hex"
	"fmt"
)

const (
	mathHashLen   = 16
	mathRecordLen = 24 // hash(16) + offset u32 LE(4) + length u32 LE(4)
	mathOffsetOff = mathHashLen
	mathLengthOff = mathHashLen + 4
)

// LoadMathImage returns the raw rendered-image bytes for the math block
// whose MD5-style hash (hex encoded) equals hexHash. It returns
// ErrNotFound if no record matches, or ErrMissingShard if the archive was
// opened without math.idx/math.dat.
func (a *Archive) LoadMathImage(ctx context.Context, hexHash string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a.mathIndexFile == nil || a.mathDataFile == nil {
		return nil, fmt.Errorf("%w: math.idx/math.dat", ErrMissingShard)
	}

	want, err := hex.DecodeString(hexHash)
	if err != nil || len(want) != mathHashLen {
		return nil, fmt.Errorf("%w: malformed math hash %q", ErrInvalidArchive, hexHash)
	}

	size, err := fileSize(a.mathIndexFile)
	if err != nil {
		return nil, err
	}
	count := size / mathRecordLen
	if count == 0 {
		return nil, notFoundErr(hexHash)
	}

	lo, hi := int64(0), count
	for lo < hi {
		mid := lo + (hi-lo)/2
		record, err := readRange(a.mathIndexFile, mid*mathRecordLen, mathRecordLen)
		if err != nil {
			return nil, err
		}
		switch bytes.Compare(record[:mathHashLen], want) {
		case 0:
			offset := u32le(record[mathOffsetOff : mathOffsetOff+4])
			length := u32le(record[mathLengthOff : mathLengthOff+4])
			return readRange(a.mathDataFile, int64(offset), int(length))
		case -1:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return nil, notFoundErr(hexHash)
}
