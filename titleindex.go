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
	"math/rand"
	"os"
	"sort"
	"strings"
)

// titleIndex reads titles.idx: a sorted, LF-terminated sequence of
// variable-length binary records.
//
// Record layout (fixed 14-byte header, then optional geolocation, then
// UTF-8 name, terminated by a single 0x0A byte):
//
//	[0]     flags: bit0 = isRedirect, bit1 = hasGeolocation
//	[1]     fileNr (data shard ordinal; unused when isRedirect)
//	[2:6]   blockStart, u32 LE
//	[6:10]  blockOffset, u32 LE
//	[10:14] articleLength, u32 LE
//	[14:22] geolocation, only present when bit1 is set: lat f32 LE, then
//	        lon f32 LE (see readCoordinates below for the (lon, lat)
//	        point this decodes to)
//	[...]   redirect target payload, 16 bytes, only present when bit0 is
//	        set and blockStart points just past the fields above (see
//	        [Archive.ResolveRedirect] for its layout)
//	[...]   name, UTF-8, up to the terminating LF
//
// titles_search.idx, when present, accelerates prefix lookup with a
// format defined by its own external, opaque producer; this reader does
// not attempt to parse it and always falls back to the binary probe over
// titles.idx.
type titleIndex struct {
	f         *os.File
	size      int64
	normalize normalizeFunc
}

const (
	titleFlagRedirect = 1 << 0
	titleFlagGeo      = 1 << 1

	titleHeaderLen = 14
	titleGeoLen    = 8
)

func newTitleIndex(f *os.File, normalize normalizeFunc) (*titleIndex, error) {
	size, err := fileSize(f)
	if err != nil {
		return nil, err
	}
	return &titleIndex{f: f, size: size, normalize: normalize}, nil
}

// decodeRecordAt decodes the record beginning at offset and returns it
// along with the offset of the next record. offset must be a record
// boundary; behavior is undefined otherwise.
func (ti *titleIndex) decodeRecordAt(offset int64) (Title, int64, error) {
	if offset >= ti.size {
		return Title{}, offset, ErrEndOfIndex
	}

	window := int64(maxTitleLength)
	if offset+window > ti.size {
		window = ti.size - offset
	}
	buf, err := readRange(ti.f, offset, int(window))
	if err != nil {
		return Title{}, offset, err
	}

	lf := bytes.IndexByte(buf, '\n')
	if lf < 0 {
		return Title{}, offset, fmt.Errorf("%w: title record exceeds max length at offset %d", ErrInvalidArchive, offset)
	}
	record := buf[:lf]
	if len(record) < titleHeaderLen {
		return Title{}, offset, fmt.Errorf("%w: short title record at offset %d", ErrInvalidArchive, offset)
	}

	flags := record[0]
	t := Title{
		Redirect:      flags&titleFlagRedirect != 0,
		FileNr:        record[1],
		BlockStart:    u32le(record[2:6]),
		BlockOffset:   u32le(record[6:10]),
		ArticleLength: u32le(record[10:14]),
		TitleOffset:   offset,
	}

	nameStart := titleHeaderLen
	if flags&titleFlagGeo != 0 {
		if len(record) < titleHeaderLen+titleGeoLen {
			return Title{}, offset, fmt.Errorf("%w: short geolocation in title record at offset %d", ErrInvalidArchive, offset)
		}
		geo := readCoordinates(record[titleHeaderLen : titleHeaderLen+titleGeoLen])
		t.Geolocation = &geo
		nameStart += titleGeoLen
	}
	if t.Redirect && int64(t.BlockStart) == offset+int64(nameStart) {
		// The redirect's target payload is embedded in this record,
		// between the fixed fields and the name.
		if len(record) < nameStart+redirectPayloadLen {
			return Title{}, offset, fmt.Errorf("%w: short redirect payload in title record at offset %d", ErrInvalidArchive, offset)
		}
		nameStart += redirectPayloadLen
	}
	t.Name = string(record[nameStart:])

	return t, offset + int64(lf) + 1, nil
}

// readCoordinates decodes 8 bytes as (lat, lon) f32 LE and constructs a
// Point as (lon, lat): lat precedes lon on disk, but Point keeps (x, y) =
// (lon, lat) to match orb's convention.
func readCoordinates(b []byte) Point {
	lat := f32le(b[0:4])
	lon := f32le(b[4:8])
	return Point{float64(lon), float64(lat)}
}

// sequentialFrom returns a cursor that decodes one record at a time
// starting at offset.
func (ti *titleIndex) sequentialFrom(offset int64) *titleCursor {
	return &titleCursor{idx: ti, offset: offset}
}

// titleCursor is a sequential decoder position within the title index.
type titleCursor struct {
	idx    *titleIndex
	offset int64
}

// advance decodes the record at the cursor and moves it past the
// terminating LF. It returns ErrEndOfIndex once the cursor reaches the
// end of the file.
func (c *titleCursor) advance() (Title, error) {
	t, next, err := c.idx.decodeRecordAt(c.offset)
	if err != nil {
		return Title{}, err
	}
	c.offset = next
	return t, nil
}

// findPrefixOffset returns the offset of the first record whose
// normalized name is >= normalizedPrefix: either it equals the index's
// size, or the record there has normalize(name) >= normalizedPrefix and
// the record immediately before (if any) has normalize(name) <
// normalizedPrefix.
func (ti *titleIndex) findPrefixOffset(normalizedPrefix string) (int64, error) {
	// nextRecordBoundary scans forward from a (possibly mid-record)
	// offset to the next valid record start: offset itself when it's 0
	// (the known start of the file), otherwise the byte following the
	// next LF, or ti.size if no LF is found within one record's worth of
	// bytes.
	nextRecordBoundary := func(offset int64) (int64, error) {
		if offset == 0 {
			return 0, nil
		}
		window := int64(maxTitleLength)
		if offset+window > ti.size {
			window = ti.size - offset
		}
		if window <= 0 {
			return ti.size, nil
		}
		buf, err := readRange(ti.f, offset, int(window))
		if err != nil {
			return 0, err
		}
		lf := bytes.IndexByte(buf, '\n')
		if lf < 0 {
			return ti.size, nil
		}
		return offset + int64(lf) + 1, nil
	}

	// Binary search narrows [lo, hi) to a small window in O(log n)
	// probes, snapping each midpoint forward to the next record
	// boundary. Once the window is small enough, a final linear scan
	// (below) decodes every record in it to find the exact answer, which
	// keeps the termination argument simple regardless of how record
	// boundaries happen to fall relative to probe midpoints.
	lo, hi := int64(0), ti.size
	for hi-lo > int64(maxTitleLength) {
		mid := lo + (hi-lo)/2
		boundary, err := nextRecordBoundary(mid)
		if err != nil {
			return 0, err
		}
		if boundary >= hi {
			hi = mid
			continue
		}
		t, next, err := ti.decodeRecordAt(boundary)
		if err != nil {
			return 0, err
		}
		if ti.normalize(t.Name) >= normalizedPrefix {
			hi = boundary
		} else {
			lo = next
		}
	}

	cur := ti.sequentialFrom(lo)
	for {
		t, err := cur.advance()
		if err != nil {
			if err == ErrEndOfIndex {
				return ti.size, nil
			}
			return 0, err
		}
		if ti.normalize(t.Name) >= normalizedPrefix {
			return t.TitleOffset, nil
		}
	}
}

// randomTitle returns the title at the first record boundary after a
// uniformly chosen byte offset, wrapping to the first record when no
// boundary follows it. A record is picked with probability proportional
// to the length of the record before it.
func (ti *titleIndex) randomTitle() (Title, error) {
	if ti.size == 0 {
		return Title{}, ErrNotFound
	}
	start := rand.Int63n(ti.size) //nolint:gosec // not used for anything security sensitive

	window := int64(maxTitleLength)
	if start+window > ti.size {
		window = ti.size - start
	}
	buf, err := readRange(ti.f, start, int(window))
	if err != nil {
		return Title{}, err
	}
	lf := bytes.IndexByte(buf, '\n')
	var boundary int64
	if lf < 0 {
		boundary = ti.size
	} else {
		boundary = start + int64(lf) + 1
	}
	if boundary >= ti.size {
		boundary = 0
	}
	t, _, err := ti.decodeRecordAt(boundary)
	return t, err
}

// getTitleByName resolves an exact title lookup: find the prefix offset
// for normalize(name), then scan forward while names still normalize to
// the same value, returning the first whose raw name equals name exactly.
func (ti *titleIndex) getTitleByName(name string) (Title, bool, error) {
	target := ti.normalize(name)
	offset, err := ti.findPrefixOffset(target)
	if err != nil {
		return Title{}, false, err
	}

	cur := ti.sequentialFrom(offset)
	for {
		t, err := cur.advance()
		if err != nil {
			if err == ErrEndOfIndex {
				return Title{}, false, nil
			}
			return Title{}, false, err
		}
		if ti.normalize(t.Name) != target {
			return Title{}, false, nil
		}
		if t.Name == name {
			return t, true, nil
		}
	}
}

// findTitlesWithPrefix returns titles whose normalized name starts with
// normalize(prefix), in on-disk order, up to maxSize entries. maxSize < 0
// means unbounded.
func (ti *titleIndex) findTitlesWithPrefix(prefix string, maxSize int) ([]Title, error) {
	target := ti.normalize(prefix)
	offset, err := ti.findPrefixOffset(target)
	if err != nil {
		return nil, err
	}

	var out []Title
	cur := ti.sequentialFrom(offset)
	for maxSize < 0 || len(out) < maxSize {
		t, err := cur.advance()
		if err != nil {
			if err == ErrEndOfIndex {
				break
			}
			return nil, err
		}
		if !strings.HasPrefix(ti.normalize(t.Name), target) {
			break
		}
		out = append(out, t)
	}
	return out, nil
}

// titlesStartingAtOffset returns up to count titles starting at the
// given title-index byte offset, in on-disk order.
func (ti *titleIndex) titlesStartingAtOffset(offset int64, count int) ([]Title, error) {
	var out []Title
	cur := ti.sequentialFrom(offset)
	for len(out) < count {
		t, err := cur.advance()
		if err != nil {
			if err == ErrEndOfIndex {
				break
			}
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// sortTitlesByOffset is used when dereferencing a batch of quadtree leaf
// title offsets: decoding in ascending offset order keeps reads roughly
// sequential on disk.
func sortTitlesByOffset(offsets []int64) {
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })
}
