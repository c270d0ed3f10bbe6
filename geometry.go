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
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Point is a (longitude, latitude) coordinate pair, longitude first.
type Point = orb.Point

// wholeEarth is the sentinel rectangle meaning "no geographic bound",
// matching the source archive's convention.
var wholeEarth = Rectangle{Origin: Point{-181, -91}, Width: 362, Height: 182}

// Rectangle is an axis-aligned rectangle. Width and Height may be negative
// before Normalized() is called; operations other than Normalized require
// a normalized rectangle.
type Rectangle struct {
	Origin        Point
	Width, Height float64
}

// NewRectangle builds a rectangle from its origin and extents.
func NewRectangle(origin Point, width, height float64) Rectangle {
	return Rectangle{Origin: origin, Width: width, Height: height}
}

// Normalized returns a canonical form of r with non-negative extents. If
// width or height is negative, the origin is shifted so the rectangle
// covers the same area with a non-negative extent.
func (r Rectangle) Normalized() Rectangle {
	out := r
	if out.Width < 0 {
		out.Origin[0] += out.Width
		out.Width = -out.Width
	}
	if out.Height < 0 {
		out.Origin[1] += out.Height
		out.Height = -out.Height
	}
	return out
}

// crossesAntimeridian reports whether the normalized rectangle's eastern
// edge wraps past +180°.
func (r Rectangle) crossesAntimeridian() bool {
	return r.Origin[0]+r.Width > 180
}

// spans returns the one or two longitude spans [lo, hi] that together
// cover the normalized rectangle's longitude extent, splitting at +180°
// when the eastern edge passes it. Span bounds are not clamped: a western
// edge below -180° (as in the whole-earth sentinel) is kept as is.
func (r Rectangle) spans() [][2]float64 {
	lo := r.Origin[0]
	hi := r.Origin[0] + r.Width
	if !r.crossesAntimeridian() || r == wholeEarth {
		return [][2]float64{{lo, hi}}
	}
	return [][2]float64{
		{lo, 180},
		{-180, hi - 360},
	}
}

// Intersect reports whether the two normalized rectangles overlap in both
// axes. Intersect is symmetric: r.Intersect(o) == o.Intersect(r).
func (r Rectangle) Intersect(o Rectangle) bool {
	latOverlap := r.Origin[1] < o.Origin[1]+o.Height && o.Origin[1] < r.Origin[1]+r.Height
	if !latOverlap {
		return false
	}
	for _, a := range r.spans() {
		for _, b := range o.spans() {
			if a[0] < b[1] && b[0] < a[1] {
				return true
			}
		}
	}
	return false
}

// ContainsPoint reports whether p lies within the normalized rectangle.
// The lower bound is inclusive and the upper bound is exclusive.
func (r Rectangle) ContainsPoint(p Point) bool {
	if p[1] < r.Origin[1] || p[1] >= r.Origin[1]+r.Height {
		return false
	}
	for _, span := range r.spans() {
		lon := p[0]
		if lon < span[0] {
			lon += 360
		}
		if lon >= span[0] && lon < span[1] {
			return true
		}
	}
	return false
}

// Center returns the midpoint of the normalized rectangle.
func (r Rectangle) Center() Point {
	return Point{r.Origin[0] + r.Width/2, r.Origin[1] + r.Height/2}
}

// SW returns the south-west corner.
func (r Rectangle) SW() Point { return r.Origin }

// SE returns the south-east corner.
func (r Rectangle) SE() Point { return Point{r.Origin[0] + r.Width, r.Origin[1]} }

// NW returns the north-west corner.
func (r Rectangle) NW() Point { return Point{r.Origin[0], r.Origin[1] + r.Height} }

// NE returns the north-east corner.
func (r Rectangle) NE() Point { return Point{r.Origin[0] + r.Width, r.Origin[1] + r.Height} }

// Distance returns a monotonic-with-true-distance surrogate suitable for
// sort ordering: planar Euclidean distance on degrees.
func Distance(a, b Point) float64 {
	return planar.Distance(a, b)
}
