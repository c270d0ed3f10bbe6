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

// Package chunkedio builds synthetic, on-disk Evopedia archive directories
// for use as test fixtures. It encodes the same chunked, random-access
// layout the archive reader expects: a flat sorted title index, bzip2
// data shards addressed by (block, offset, length), a quadtree coordinate
// shard and a binary-searchable math-image index.
//
// Builder accumulates title records, compressed article blocks, quadtree
// nodes and math-image records, then flushes them all as one archive
// directory in a single Build call.
package chunkedio

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/dsnet/compress/bzip2"
)

// Article is one synthetic title: either a real article body or, when
// RedirectTo is non-empty, a redirect to another article added to the
// same Builder.
type Article struct {
	Name       string
	Body       string
	RedirectTo string
	HasGeo     bool
	Lon, Lat   float64
}

// MathImage is one synthetic math.idx/math.dat record.
type MathImage struct {
	HashHex string
	Data    []byte
}

// Builder accumulates articles and math images, then flushes them as a
// complete archive directory via Build.
type Builder struct {
	articles         []Article
	mathImages       []MathImage
	language         string
	date             string
	normalizedTitles bool
}

// NewBuilder returns an empty Builder with placeholder metadata.
func NewBuilder() *Builder {
	return &Builder{language: "en", date: "2024-01-01"}
}

// AddArticle appends a to the archive being built.
func (b *Builder) AddArticle(a Article) *Builder {
	b.articles = append(b.articles, a)
	return b
}

// AddMathImage appends m to the archive being built.
func (b *Builder) AddMathImage(m MathImage) *Builder {
	b.mathImages = append(b.mathImages, m)
	return b
}

// SetNormalizedTitles sets the normalized_titles metadata flag. Builder
// always sorts and assigns titles by their raw byte order regardless of
// this flag, matching identity normalization; passing true is only useful
// for exercising Archive's own fold-and-lowercase path against titles
// that already happen to be in folded order.
func (b *Builder) SetNormalizedTitles(v bool) *Builder {
	b.normalizedTitles = v
	return b
}

type resolvedTarget struct {
	fileNr        byte
	blockStart    uint32
	blockOffset   uint32
	articleLength uint32
}

// Build writes a complete archive directory (titles.idx, wikipedia_00.dat,
// coordinates_01.idx, metadata.txt, and math.idx/math.dat when math images
// were added) under dir, which must already exist.
func (b *Builder) Build(dir string) error {
	resolved := make(map[string]resolvedTarget, len(b.articles))
	dataPath := filepath.Join(dir, "wikipedia_00.dat")
	dataFile, err := os.Create(dataPath)
	if err != nil {
		return fmt.Errorf("creating data shard: %w", err)
	}
	defer dataFile.Close()

	var dataPos uint32
	for _, a := range b.articles {
		if a.RedirectTo != "" {
			continue
		}
		block, err := compressBlock([]byte(a.Body))
		if err != nil {
			return fmt.Errorf("compressing article %q: %w", a.Name, err)
		}
		if _, err := dataFile.Write(block); err != nil {
			return fmt.Errorf("writing data shard: %w", err)
		}
		resolved[a.Name] = resolvedTarget{
			fileNr:        0,
			blockStart:    dataPos,
			blockOffset:   0,
			articleLength: uint32(len(a.Body)),
		}
		dataPos += uint32(len(block))
	}

	sorted := make([]Article, len(b.articles))
	copy(sorted, b.articles)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	titlePath := filepath.Join(dir, "titles.idx")
	titleFile, err := os.Create(titlePath)
	if err != nil {
		return fmt.Errorf("creating title index: %w", err)
	}
	defer titleFile.Close()

	type geoEntry struct {
		titleOffset uint32
		lon, lat    float64
	}
	var geos []geoEntry

	var titlePos uint32
	for _, a := range sorted {
		var record []byte
		if a.RedirectTo != "" {
			target, ok := resolved[a.RedirectTo]
			if !ok {
				return fmt.Errorf("redirect %q: target %q not found (or is itself a redirect)", a.Name, a.RedirectTo)
			}
			record = encodeRedirectRecord(titlePos, a.Name, target)
		} else {
			target := resolved[a.Name]
			record = encodeArticleRecord(a, target)
			if a.HasGeo {
				geos = append(geos, geoEntry{titleOffset: titlePos, lon: a.Lon, lat: a.Lat})
			}
		}
		if _, err := titleFile.Write(record); err != nil {
			return fmt.Errorf("writing title index: %w", err)
		}
		titlePos += uint32(len(record))
	}

	coordPath := filepath.Join(dir, "coordinates_01.idx")
	coordFile, err := os.Create(coordPath)
	if err != nil {
		return fmt.Errorf("creating coordinate shard: %w", err)
	}
	defer coordFile.Close()
	if _, err := coordFile.Write(encodeQuadtree(geos)); err != nil {
		return fmt.Errorf("writing coordinate shard: %w", err)
	}

	if len(b.mathImages) > 0 {
		if err := b.writeMathFiles(dir); err != nil {
			return err
		}
	}

	metaPath := filepath.Join(dir, "metadata.txt")
	normalized := "0"
	if b.normalizedTitles {
		normalized = "1"
	}
	metaContents := fmt.Sprintf("language = %s\ndate = %s\nnormalized_titles = %s\n", b.language, b.date, normalized)
	if err := os.WriteFile(metaPath, []byte(metaContents), 0o644); err != nil {
		return fmt.Errorf("writing metadata.txt: %w", err)
	}

	return nil
}

// compressBlock bzip2-compresses data as a single, standalone stream:
// one article's body per block, per the simplified block/article mapping
// this fixture builder uses (the real format may pack several articles
// per block).
func compressBlock(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := bzip2.NewWriter(&buf, nil)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const (
	titleFlagRedirect = 1 << 0
	titleFlagGeo      = 1 << 1
)

func encodeArticleRecord(a Article, target resolvedTarget) []byte {
	buf := make([]byte, 14)
	if a.HasGeo {
		buf[0] |= titleFlagGeo
	}
	buf[1] = target.fileNr
	binary.LittleEndian.PutUint32(buf[2:6], target.blockStart)
	binary.LittleEndian.PutUint32(buf[6:10], target.blockOffset)
	binary.LittleEndian.PutUint32(buf[10:14], target.articleLength)
	if a.HasGeo {
		geo := make([]byte, 8)
		binary.LittleEndian.PutUint32(geo[0:4], math.Float32bits(float32(a.Lat)))
		binary.LittleEndian.PutUint32(geo[4:8], math.Float32bits(float32(a.Lon)))
		buf = append(buf, geo...)
	}
	buf = append(buf, []byte(a.Name)...)
	buf = append(buf, '\n')
	return buf
}

// encodeRedirectRecord builds a redirect record whose BlockStart points at
// a 16-byte target payload embedded right after this record's own header,
// before the name: the whole thing (header, payload, name, LF) is one
// self-contained record, so the redirect's on-disk target needs no
// separate trailer section. The record still ends at its first 0x0A byte,
// so a header or payload byte equal to 0x0A cuts it short.
func encodeRedirectRecord(titleOffset uint32, name string, target resolvedTarget) []byte {
	header := make([]byte, 14)
	header[0] = titleFlagRedirect
	binary.LittleEndian.PutUint32(header[2:6], titleOffset+14)

	payload := make([]byte, 16)
	payload[2] = target.fileNr
	binary.LittleEndian.PutUint32(payload[3:7], target.blockStart)
	binary.LittleEndian.PutUint32(payload[7:11], target.blockOffset)
	binary.LittleEndian.PutUint32(payload[11:15], target.articleLength)

	buf := append(header, payload...)
	buf = append(buf, []byte(name)...)
	buf = append(buf, '\n')
	return buf
}

// encodeQuadtree builds a 2-level tree rooted at (0,0), the exact center
// of the whole-earth sentinel rectangle: a leaf per quadrant when any geo
// entries are present, or a single empty leaf at the root otherwise.
func encodeQuadtree(geos []struct {
	titleOffset uint32
	lon, lat    float64
}) []byte {
	if len(geos) == 0 {
		return encodeLeaf(nil)
	}

	var sw, se, nw, ne []struct {
		titleOffset uint32
		lon, lat    float64
	}
	for _, g := range geos {
		switch {
		case g.lon < 0 && g.lat < 0:
			sw = append(sw, g)
		case g.lon >= 0 && g.lat < 0:
			se = append(se, g)
		case g.lon < 0 && g.lat >= 0:
			nw = append(nw, g)
		default:
			ne = append(ne, g)
		}
	}

	swBytes := encodeLeaf(sw)
	seBytes := encodeLeaf(se)
	nwBytes := encodeLeaf(nw)
	neBytes := encodeLeaf(ne)

	header := make([]byte, 22)
	binary.LittleEndian.PutUint16(header[0:2], 0xFFFF)
	binary.LittleEndian.PutUint32(header[2:6], math.Float32bits(0))  // center lat
	binary.LittleEndian.PutUint32(header[6:10], math.Float32bits(0)) // center lon
	binary.LittleEndian.PutUint32(header[10:14], uint32(len(swBytes)))
	binary.LittleEndian.PutUint32(header[14:18], uint32(len(seBytes)))
	binary.LittleEndian.PutUint32(header[18:22], uint32(len(nwBytes)))

	out := append(header, swBytes...)
	out = append(out, seBytes...)
	out = append(out, nwBytes...)
	out = append(out, neBytes...)
	return out
}

func encodeLeaf(entries []struct {
	titleOffset uint32
	lon, lat    float64
}) []byte {
	out := make([]byte, 2, 2+len(entries)*12)
	binary.LittleEndian.PutUint16(out[0:2], uint16(len(entries)))
	for _, e := range entries {
		rec := make([]byte, 12)
		binary.LittleEndian.PutUint32(rec[0:4], math.Float32bits(float32(e.lat)))
		binary.LittleEndian.PutUint32(rec[4:8], math.Float32bits(float32(e.lon)))
		binary.LittleEndian.PutUint32(rec[8:12], e.titleOffset)
		out = append(out, rec...)
	}
	return out
}

func (b *Builder) writeMathFiles(dir string) error {
	dataPath := filepath.Join(dir, "math.dat")
	dataFile, err := os.Create(dataPath)
	if err != nil {
		return fmt.Errorf("creating math.dat: %w", err)
	}
	defer dataFile.Close()

	type resolvedMath struct {
		hash   []byte
		offset uint32
		length uint32
	}
	var records []resolvedMath
	var pos uint32
	for _, m := range b.mathImages {
		hash, err := hex.DecodeString(m.HashHex)
		if err != nil || len(hash) != 16 {
			return fmt.Errorf("math image %q: malformed hash", m.HashHex)
		}
		if _, err := dataFile.Write(m.Data); err != nil {
			return fmt.Errorf("writing math.dat: %w", err)
		}
		records = append(records, resolvedMath{hash: hash, offset: pos, length: uint32(len(m.Data))})
		pos += uint32(len(m.Data))
	}

	sort.Slice(records, func(i, j int) bool { return bytes.Compare(records[i].hash, records[j].hash) < 0 })

	idxPath := filepath.Join(dir, "math.idx")
	idxFile, err := os.Create(idxPath)
	if err != nil {
		return fmt.Errorf("creating math.idx: %w", err)
	}
	defer idxFile.Close()
	for _, r := range records {
		rec := make([]byte, 24)
		copy(rec[:16], r.hash)
		binary.LittleEndian.PutUint32(rec[16:20], r.offset)
		binary.LittleEndian.PutUint32(rec[20:24], r.length)
		if _, err := idxFile.Write(rec); err != nil {
			return fmt.Errorf("writing math.idx: %w", err)
		}
	}
	return nil
}
