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
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	dataShardName  = regexp.MustCompile(`^wikipedia_(\d\d)\.dat$`)
	coordShardName = regexp.MustCompile(`^coordinates_(\d\d)\.idx$`)
)

// Archive is a handle onto one Evopedia archive directory. Once
// constructed its fields are read-only; its exported methods may be
// called concurrently from multiple goroutines.
type Archive struct {
	log *logrus.Entry

	titleFile  *os.File
	searchFile *os.File // optional prefix accelerator, format opaque to this reader

	// dataShards is indexed by the shard's own numeric suffix (slot N
	// for wikipedia_NN.dat), so slot 0 is conventionally unused.
	dataShards []*os.File

	// coordShards is indexed by (numeric suffix - 1), so coordinates_01.idx
	// is slot 0.
	coordShards []*os.File

	mathIndexFile *os.File // optional
	mathDataFile  *os.File // optional

	metadata  Metadata
	normalize normalizeFunc
	titleIdx  *titleIndex

	searchMu         sync.Mutex
	searchInProgress bool
}

// IsReady reports whether the archive has enough to answer queries: a
// title index and at least one data shard.
func (a *Archive) IsReady() bool {
	if a.titleFile == nil {
		return false
	}
	for _, f := range a.dataShards {
		if f != nil {
			return true
		}
	}
	return false
}

// Metadata returns the archive's parsed metadata.
func (a *Archive) Metadata() Metadata {
	return a.metadata
}

func newArchiveLogger() *logrus.Entry {
	return logrus.WithField("component", "evopedia.archive")
}

// finishInit builds the title index and validates readiness once all
// classified files and metadata are in hand.
func (a *Archive) finishInit() error {
	if a.titleFile == nil {
		return fmt.Errorf("%w: missing titles.idx", ErrInvalidArchive)
	}
	if !a.IsReady() {
		return fmt.Errorf("%w: no data shards present", ErrInvalidArchive)
	}

	normalize := identityNormalize
	if a.metadata.NormalizedTitles {
		normalize = normalizeTitle
	}
	a.normalize = normalize

	idx, err := newTitleIndex(a.titleFile, normalize)
	if err != nil {
		return err
	}
	a.titleIdx = idx
	return nil
}

// getNormalizeFunction returns the normalization function in effect for
// this archive: identity when the archive's titles are not normalized.
func (a *Archive) getNormalizeFunction() normalizeFunc {
	return a.normalize
}

// classifyFile assigns a single file by its base name to the archive's
// slots.
func (a *Archive) classifyFile(path string) error {
	name := filepath.Base(path)

	switch name {
	case "metadata.txt":
		f, err := os.Open(path)
		if err != nil {
			return ioErr(err)
		}
		defer f.Close()
		md, err := parseMetadata(f)
		if err != nil {
			return err
		}
		a.metadata = md
		return nil
	case "titles.idx":
		f, err := os.Open(path)
		if err != nil {
			return ioErr(err)
		}
		a.titleFile = f
		return nil
	case "titles_search.idx":
		f, err := os.Open(path)
		if err != nil {
			// Optional: silent on failure to open.
			return nil
		}
		a.searchFile = f
		return nil
	case "math.idx":
		f, err := os.Open(path)
		if err != nil {
			a.log.WithError(err).Warn("opening math.idx")
			return nil
		}
		a.mathIndexFile = f
		return nil
	case "math.dat":
		f, err := os.Open(path)
		if err != nil {
			a.log.WithError(err).Warn("opening math.dat")
			return nil
		}
		a.mathDataFile = f
		return nil
	}

	if m := dataShardName.FindStringSubmatch(name); m != nil {
		n := atoiMust(m[1])
		f, err := os.Open(path)
		if err != nil {
			return ioErr(err)
		}
		a.setDataShard(n, f)
		return nil
	}
	if m := coordShardName.FindStringSubmatch(name); m != nil {
		n := atoiMust(m[1])
		f, err := os.Open(path)
		if err != nil {
			return ioErr(err)
		}
		a.setCoordShard(n-1, f)
		return nil
	}

	return nil
}

func (a *Archive) setDataShard(slot int, f *os.File) {
	for len(a.dataShards) <= slot {
		a.dataShards = append(a.dataShards, nil)
	}
	a.dataShards[slot] = f
}

func (a *Archive) setCoordShard(slot int, f *os.File) {
	if slot < 0 {
		return
	}
	for len(a.coordShards) <= slot {
		a.coordShards = append(a.coordShards, nil)
	}
	a.coordShards[slot] = f
}

func atoiMust(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

// NewArchiveFromFiles constructs an Archive from an explicit flat list of
// file paths, classifying each by its base name.
func NewArchiveFromFiles(paths []string) (*Archive, error) {
	a := &Archive{log: newArchiveLogger()}
	for _, p := range paths {
		if err := a.classifyFile(p); err != nil {
			return nil, err
		}
	}
	if err := a.finishInit(); err != nil {
		return nil, err
	}
	return a, nil
}

// NewArchiveFromDir constructs an Archive by enumerating a directory:
// titles.idx (required), titles_search.idx (optional), metadata.txt
// (required), math.idx/math.dat (warn on error), then wikipedia_NN.dat
// shards and coordinates_NN.idx shards until the first NotFound.
func NewArchiveFromDir(dir string) (*Archive, error) {
	a := &Archive{log: newArchiveLogger()}

	titlePath := filepath.Join(dir, "titles.idx")
	f, err := os.Open(titlePath)
	if err != nil {
		return nil, fmt.Errorf("%w: titles.idx: %w", ErrInvalidArchive, err)
	}
	a.titleFile = f

	if sf, err := os.Open(filepath.Join(dir, "titles_search.idx")); err == nil {
		a.searchFile = sf
	} // else: optional, silent.

	metaPath := filepath.Join(dir, "metadata.txt")
	mf, err := os.Open(metaPath)
	if err != nil {
		return nil, fmt.Errorf("%w: metadata.txt: %w", ErrInvalidArchive, err)
	}
	md, err := parseMetadata(mf)
	mf.Close()
	if err != nil {
		return nil, err
	}
	a.metadata = md

	if mi, err := os.Open(filepath.Join(dir, "math.idx")); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			a.log.WithError(err).Warn("opening math.idx")
		}
	} else {
		a.mathIndexFile = mi
	}
	if md, err := os.Open(filepath.Join(dir, "math.dat")); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			a.log.WithError(err).Warn("opening math.dat")
		}
	} else {
		a.mathDataFile = md
	}

	for n := 0; ; n++ {
		path := filepath.Join(dir, fmt.Sprintf("wikipedia_%02d.dat", n))
		df, err := os.Open(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				break
			}
			a.log.WithError(err).Warn("opening data shard")
			break
		}
		a.setDataShard(n, df)
	}

	for n := 1; ; n++ {
		path := filepath.Join(dir, fmt.Sprintf("coordinates_%02d.idx", n))
		cf, err := os.Open(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				break
			}
			a.log.WithError(err).Warn("opening coordinate shard")
			break
		}
		a.setCoordShard(n-1, cf)
	}

	if err := a.finishInit(); err != nil {
		return nil, err
	}
	return a, nil
}

// Close releases all open file handles.
func (a *Archive) Close() error {
	var first error
	closeOne := func(f *os.File) {
		if f == nil {
			return
		}
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	closeOne(a.titleFile)
	closeOne(a.searchFile)
	closeOne(a.mathIndexFile)
	closeOne(a.mathDataFile)
	for _, f := range a.dataShards {
		closeOne(f)
	}
	for _, f := range a.coordShards {
		closeOne(f)
	}
	return first
}
