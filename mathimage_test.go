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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/kiwix/evopedia-go/internal/chunkedio"
)

func TestLoadMathImage(t *testing.T) {
	t.Parallel()

	dir := buildArchiveDir(t, func(b *chunkedio.Builder) {
		b.AddArticle(chunkedio.Article{Name: "Placeholder", Body: "body"})
		b.AddMathImage(chunkedio.MathImage{HashHex: "00112233445566778899aabbccddeeff", Data: []byte{1, 2, 3, 4}})
		b.AddMathImage(chunkedio.MathImage{HashHex: "ffeeddccbbaa99887766554433221100", Data: []byte{9, 8, 7}})
	})

	a, err := NewArchiveFromDir(dir)
	if err != nil {
		t.Fatalf("NewArchiveFromDir: %v", err)
	}
	defer a.Close()

	got, err := a.LoadMathImage(context.Background(), "00112233445566778899aabbccddeeff")
	if err != nil {
		t.Fatalf("LoadMathImage: %v", err)
	}
	if diff := cmp.Diff([]byte{1, 2, 3, 4}, got); diff != "" {
		t.Errorf("LoadMathImage bytes (-want, +got):\n%s", diff)
	}

	got2, err := a.LoadMathImage(context.Background(), "ffeeddccbbaa99887766554433221100")
	if err != nil {
		t.Fatalf("LoadMathImage: %v", err)
	}
	if diff := cmp.Diff([]byte{9, 8, 7}, got2); diff != "" {
		t.Errorf("LoadMathImage bytes (-want, +got):\n%s", diff)
	}
}

func TestLoadMathImageNotFound(t *testing.T) {
	t.Parallel()

	dir := buildArchiveDir(t, func(b *chunkedio.Builder) {
		b.AddArticle(chunkedio.Article{Name: "Placeholder", Body: "body"})
		b.AddMathImage(chunkedio.MathImage{HashHex: "00112233445566778899aabbccddeeff", Data: []byte{1}})
	})

	a, err := NewArchiveFromDir(dir)
	if err != nil {
		t.Fatalf("NewArchiveFromDir: %v", err)
	}
	defer a.Close()

	_, err = a.LoadMathImage(context.Background(), "11111111111111111111111111111111"[:32])
	if diff := cmp.Diff(ErrNotFound, err, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("LoadMathImage error (-want, +got):\n%s", diff)
	}
}

func TestLoadMathImageMissingShard(t *testing.T) {
	t.Parallel()

	dir := buildArchiveDir(t, func(b *chunkedio.Builder) {
		b.AddArticle(chunkedio.Article{Name: "Placeholder", Body: "body"})
	})

	a, err := NewArchiveFromDir(dir)
	if err != nil {
		t.Fatalf("NewArchiveFromDir: %v", err)
	}
	defer a.Close()

	_, err = a.LoadMathImage(context.Background(), "00112233445566778899aabbccddeeff")
	if diff := cmp.Diff(ErrMissingShard, err, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("LoadMathImage error (-want, +got):\n%s", diff)
	}
}

func TestLoadMathImageMalformedHash(t *testing.T) {
	t.Parallel()

	dir := buildArchiveDir(t, func(b *chunkedio.Builder) {
		b.AddArticle(chunkedio.Article{Name: "Placeholder", Body: "body"})
		b.AddMathImage(chunkedio.MathImage{HashHex: "00112233445566778899aabbccddeeff", Data: []byte{1}})
	})

	a, err := NewArchiveFromDir(dir)
	if err != nil {
		t.Fatalf("NewArchiveFromDir: %v", err)
	}
	defer a.Close()

	_, err = a.LoadMathImage(context.Background(), "not-hex")
	if diff := cmp.Diff(ErrInvalidArchive, err, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("LoadMathImage error (-want, +got):\n%s", diff)
	}
}
