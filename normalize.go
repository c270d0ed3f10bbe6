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
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizeFunc is a deterministic, idempotent string→string fold applied
// uniformly to query and on-disk titles.
type normalizeFunc func(string) string

// identityNormalize is used when the archive declares raw (non-normalized)
// titles.
func identityNormalize(s string) string {
	return s
}

// foldDiacritics strips Unicode combining marks, used to build the
// normalized-title fold below.
var foldDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// normalizeTitle is the normalization function used when the archive's
// metadata declares normalized_titles. It lowercases and strips
// diacritical marks, so that e.g. "Église" and "eglise" compare equal.
//
// normalizeTitle is pure and idempotent: normalizeTitle(normalizeTitle(x))
// == normalizeTitle(x).
func normalizeTitle(s string) string {
	folded, _, err := transform.String(foldDiacritics, s)
	if err != nil {
		// transform.String only fails on malformed input it cannot
		// decode; fall back to the un-folded, lowercased string so
		// normalization stays total.
		folded = s
	}
	return strings.ToLower(folded)
}
