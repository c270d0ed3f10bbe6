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
	"context"
	"os"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	quadInnerSelector = 0xFFFF
	quadNodeHeaderLen = 22 // selector(2) + center(8) + 3 child lengths(4 each)
	quadLeafEntryLen  = 12 // coordinates(8) + title offset(4)
)

// quadHit is a leaf entry that matched the query rectangle, pending
// title dereference.
type quadHit struct {
	titleOffset uint32
	geo         Point
}

// quadSearch coordinates one GetTitlesInCoords invocation across however
// many coordinate shards the archive has. Descent over each shard's
// quadtree is fanned out with an errgroup.Group rather than a shared
// pending-callback counter, so a failure on one branch cancels the rest
// via the group's context instead of requiring manual bookkeeping.
type quadSearch struct {
	archive   *Archive
	target    Rectangle
	maxTitles int

	mu      sync.Mutex
	results []quadHit
}

// GetTitlesInCoords returns titles whose geolocation falls within rect,
// sorted ascending by distance to rect's center. maxTitles < 0 means
// unbounded. Only one search may be in flight per archive at a time; a
// concurrent call returns ErrSearchInProgress.
func (a *Archive) GetTitlesInCoords(ctx context.Context, rect Rectangle, maxTitles int) ([]Title, error) {
	a.searchMu.Lock()
	if a.searchInProgress {
		a.searchMu.Unlock()
		return nil, ErrSearchInProgress
	}
	a.searchInProgress = true
	a.searchMu.Unlock()
	defer func() {
		a.searchMu.Lock()
		a.searchInProgress = false
		a.searchMu.Unlock()
	}()

	qs := &quadSearch{
		archive:   a,
		target:    rect.Normalized(),
		maxTitles: maxTitles,
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, shard := range a.coordShards {
		if shard == nil {
			continue
		}
		shard := shard
		g.Go(func() error {
			return qs.descend(gctx, shard, 0, wholeEarth)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return qs.finish()
}

// descend reads the node at pos within shard, recursing into whichever
// children (if any) intersect the query rectangle and appending matching
// leaf entries to qs.results.
func (qs *quadSearch) descend(ctx context.Context, shard *os.File, pos int64, thisRect Rectangle) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	header, err := readRange(shard, pos, 2)
	if err != nil {
		return err
	}
	selector := u16le(header)

	if selector == quadInnerSelector {
		return qs.descendInner(ctx, shard, pos, thisRect)
	}
	return qs.scanLeaf(shard, pos, int(selector))
}

func (qs *quadSearch) descendInner(ctx context.Context, shard *os.File, pos int64, thisRect Rectangle) error {
	rest, err := readRange(shard, pos+2, quadNodeHeaderLen-2)
	if err != nil {
		return err
	}
	center := readCoordinates(rest[0:8])
	lenSW := u32le(rest[8:12])
	lenSE := u32le(rest[12:16])
	lenNW := u32le(rest[16:20])

	base := pos + quadNodeHeaderLen
	posSW := base
	posSE := posSW + int64(lenSW)
	posNW := posSE + int64(lenSE)
	posNE := posNW + int64(lenNW)

	children := [4]struct {
		pos  int64
		rect Rectangle
	}{
		{posSW, swRect(thisRect, center)},
		{posSE, seRect(thisRect, center)},
		{posNW, nwRect(thisRect, center)},
		{posNE, neRect(thisRect, center)},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range children {
		if !c.rect.Intersect(qs.target) {
			continue
		}
		c := c
		g.Go(func() error {
			return qs.descend(gctx, shard, c.pos, c.rect)
		})
	}
	return g.Wait()
}

func (qs *quadSearch) scanLeaf(shard *os.File, pos int64, count int) error {
	if count == 0 {
		return nil
	}
	entries, err := readRange(shard, pos+2, count*quadLeafEntryLen)
	if err != nil {
		return err
	}

	qs.mu.Lock()
	defer qs.mu.Unlock()
	for i := 0; i < count; i++ {
		if qs.maxTitles >= 0 && len(qs.results) >= qs.maxTitles {
			return nil
		}
		e := entries[i*quadLeafEntryLen : (i+1)*quadLeafEntryLen]
		geo := readCoordinates(e[0:8])
		if !qs.target.ContainsPoint(geo) {
			continue
		}
		qs.results = append(qs.results, quadHit{
			titleOffset: u32le(e[8:12]),
			geo:         geo,
		})
	}
	return nil
}

// finish dereferences every collected leaf hit into a Title, attaches its
// geolocation, and sorts the result ascending by distance to the query
// rectangle's center.
func (qs *quadSearch) finish() ([]Title, error) {
	offsets := make([]int64, len(qs.results))
	byOffset := make(map[int64]Point, len(qs.results))
	for i, h := range qs.results {
		offsets[i] = int64(h.titleOffset)
		byOffset[int64(h.titleOffset)] = h.geo
	}
	sortTitlesByOffset(offsets)

	titles := make([]Title, 0, len(offsets))
	for _, off := range offsets {
		t, err := qs.archive.titleIdx.sequentialFrom(off).advance()
		if err != nil {
			return nil, err
		}
		geo := byOffset[off]
		t.Geolocation = &geo
		titles = append(titles, t)
	}

	center := qs.target.Center()
	sort.Slice(titles, func(i, j int) bool {
		return Distance(center, *titles[i].Geolocation) < Distance(center, *titles[j].Geolocation)
	})

	if qs.maxTitles >= 0 && len(titles) > qs.maxTitles {
		titles = titles[:qs.maxTitles]
	}
	return titles, nil
}

// swRect, seRect, nwRect and neRect split thisRect at center into its
// four quadrant children, in the on-disk child order (SW, SE, NW, NE).
func swRect(thisRect Rectangle, center Point) Rectangle {
	o := thisRect.Origin
	return NewRectangle(o, center[0]-o[0], center[1]-o[1])
}

func seRect(thisRect Rectangle, center Point) Rectangle {
	o := thisRect.Origin
	return NewRectangle(Point{center[0], o[1]}, o[0]+thisRect.Width-center[0], center[1]-o[1])
}

func nwRect(thisRect Rectangle, center Point) Rectangle {
	o := thisRect.Origin
	return NewRectangle(Point{o[0], center[1]}, center[0]-o[0], o[1]+thisRect.Height-center[1])
}

func neRect(thisRect Rectangle, center Point) Rectangle {
	o := thisRect.Origin
	return NewRectangle(Point{center[0], center[1]}, o[0]+thisRect.Width-center[0], o[1]+thisRect.Height-center[1])
}
