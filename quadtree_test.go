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
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/kiwix/evopedia-go/internal/chunkedio"
)

func TestGetTitlesInCoords(t *testing.T) {
	t.Parallel()

	dir := buildArchiveDir(t, func(b *chunkedio.Builder) {
		b.AddArticle(chunkedio.Article{Name: "Paris", Body: "capital of France", HasGeo: true, Lon: 2.35, Lat: 48.85})
		b.AddArticle(chunkedio.Article{Name: "Tokyo", Body: "capital of Japan", HasGeo: true, Lon: 139.69, Lat: 35.68})
		b.AddArticle(chunkedio.Article{Name: "Sydney", Body: "largest city in Australia", HasGeo: true, Lon: 151.21, Lat: -33.87})
		b.AddArticle(chunkedio.Article{Name: "NoGeo", Body: "an article with no coordinates"})
	})

	a, err := NewArchiveFromDir(dir)
	if err != nil {
		t.Fatalf("NewArchiveFromDir: %v", err)
	}
	defer a.Close()

	rect := NewRectangle(Point{0, -40}, 160, 100) // covers Paris, Tokyo and Sydney
	got, err := a.GetTitlesInCoords(context.Background(), rect, -1)
	if err != nil {
		t.Fatalf("GetTitlesInCoords: %v", err)
	}

	var names []string
	for _, title := range got {
		names = append(names, title.Name)
	}
	want := []string{"Paris", "Tokyo", "Sydney"}
	if diff := cmp.Diff(want, names, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("GetTitlesInCoords names (-want, +got):\n%s", diff)
	}
	for _, title := range got {
		if title.Geolocation == nil {
			t.Errorf("GetTitlesInCoords: title %q missing Geolocation", title.Name)
		}
	}
}

func TestGetTitlesInCoordsSortedByDistance(t *testing.T) {
	t.Parallel()

	dir := buildArchiveDir(t, func(b *chunkedio.Builder) {
		b.AddArticle(chunkedio.Article{Name: "Near", Body: "close to origin", HasGeo: true, Lon: 1, Lat: 1})
		b.AddArticle(chunkedio.Article{Name: "Far", Body: "far from origin", HasGeo: true, Lon: 20, Lat: 20})
	})

	a, err := NewArchiveFromDir(dir)
	if err != nil {
		t.Fatalf("NewArchiveFromDir: %v", err)
	}
	defer a.Close()

	rect := NewRectangle(Point{-30, -30}, 60, 60)
	got, err := a.GetTitlesInCoords(context.Background(), rect, -1)
	if err != nil {
		t.Fatalf("GetTitlesInCoords: %v", err)
	}

	var names []string
	for _, title := range got {
		names = append(names, title.Name)
	}
	want := []string{"Near", "Far"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("GetTitlesInCoords ordering (-want, +got):\n%s", diff)
	}
}

func TestGetTitlesInCoordsMaxTitles(t *testing.T) {
	t.Parallel()

	dir := buildArchiveDir(t, func(b *chunkedio.Builder) {
		b.AddArticle(chunkedio.Article{Name: "A", Body: "a", HasGeo: true, Lon: 1, Lat: 1})
		b.AddArticle(chunkedio.Article{Name: "B", Body: "b", HasGeo: true, Lon: 2, Lat: 2})
		b.AddArticle(chunkedio.Article{Name: "C", Body: "c", HasGeo: true, Lon: 3, Lat: 3})
	})

	a, err := NewArchiveFromDir(dir)
	if err != nil {
		t.Fatalf("NewArchiveFromDir: %v", err)
	}
	defer a.Close()

	rect := NewRectangle(Point{0, 0}, 10, 10)
	got, err := a.GetTitlesInCoords(context.Background(), rect, 2)
	if err != nil {
		t.Fatalf("GetTitlesInCoords: %v", err)
	}
	if diff := cmp.Diff(2, len(got)); diff != "" {
		t.Errorf("GetTitlesInCoords count (-want, +got):\n%s", diff)
	}
}

func TestGetTitlesInCoordsNoMatch(t *testing.T) {
	t.Parallel()

	dir := buildArchiveDir(t, func(b *chunkedio.Builder) {
		b.AddArticle(chunkedio.Article{Name: "Paris", Body: "capital of France", HasGeo: true, Lon: 2.35, Lat: 48.85})
	})

	a, err := NewArchiveFromDir(dir)
	if err != nil {
		t.Fatalf("NewArchiveFromDir: %v", err)
	}
	defer a.Close()

	rect := NewRectangle(Point{100, 0}, 10, 10)
	got, err := a.GetTitlesInCoords(context.Background(), rect, -1)
	if err != nil {
		t.Fatalf("GetTitlesInCoords: %v", err)
	}
	if diff := cmp.Diff(0, len(got)); diff != "" {
		t.Errorf("GetTitlesInCoords count (-want, +got):\n%s", diff)
	}
}

func TestGetTitlesInCoordsSearchInProgress(t *testing.T) {
	t.Parallel()

	dir := buildArchiveDir(t, func(b *chunkedio.Builder) {
		b.AddArticle(chunkedio.Article{Name: "Paris", Body: "capital of France", HasGeo: true, Lon: 2.35, Lat: 48.85})
	})

	a, err := NewArchiveFromDir(dir)
	if err != nil {
		t.Fatalf("NewArchiveFromDir: %v", err)
	}
	defer a.Close()

	a.searchMu.Lock()
	a.searchInProgress = true
	a.searchMu.Unlock()

	_, err = a.GetTitlesInCoords(context.Background(), wholeEarth, -1)
	if diff := cmp.Diff(ErrSearchInProgress, err, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("GetTitlesInCoords error (-want, +got):\n%s", diff)
	}

	a.searchMu.Lock()
	a.searchInProgress = false
	a.searchMu.Unlock()
}

func TestGetTitlesInCoordsConcurrentCallsSerialize(t *testing.T) {
	t.Parallel()

	dir := buildArchiveDir(t, func(b *chunkedio.Builder) {
		b.AddArticle(chunkedio.Article{Name: "Paris", Body: "capital of France", HasGeo: true, Lon: 2.35, Lat: 48.85})
	})

	a, err := NewArchiveFromDir(dir)
	if err != nil {
		t.Fatalf("NewArchiveFromDir: %v", err)
	}
	defer a.Close()

	var wg sync.WaitGroup
	var successes, busy int32
	var mu sync.Mutex
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.GetTitlesInCoords(context.Background(), wholeEarth, -1)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if err == ErrSearchInProgress {
				busy++
			}
		}()
	}
	wg.Wait()

	if successes == 0 {
		t.Errorf("GetTitlesInCoords: want at least one successful concurrent call, got %d", successes)
	}
	if successes+busy != 8 {
		t.Errorf("GetTitlesInCoords: want all calls accounted for as success or busy, got successes=%d busy=%d", successes, busy)
	}
}
