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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRectangleNormalized(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   Rectangle
		want Rectangle
	}{
		{
			name: "already normalized",
			in:   NewRectangle(Point{10, 20}, 5, 5),
			want: NewRectangle(Point{10, 20}, 5, 5),
		},
		{
			name: "negative width",
			in:   NewRectangle(Point{10, 20}, -5, 5),
			want: NewRectangle(Point{5, 20}, 5, 5),
		},
		{
			name: "negative height",
			in:   NewRectangle(Point{10, 20}, 5, -5),
			want: NewRectangle(Point{10, 15}, 5, 5),
		},
		{
			name: "negative width and height",
			in:   NewRectangle(Point{10, 20}, -5, -5),
			want: NewRectangle(Point{5, 15}, 5, 5),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := tc.in.Normalized()
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Normalized (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestRectangleIntersect(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		a, b Rectangle
		want bool
	}{
		{
			name: "overlapping",
			a:    NewRectangle(Point{0, 0}, 10, 10),
			b:    NewRectangle(Point{5, 5}, 10, 10),
			want: true,
		},
		{
			name: "disjoint",
			a:    NewRectangle(Point{0, 0}, 10, 10),
			b:    NewRectangle(Point{20, 20}, 10, 10),
			want: false,
		},
		{
			name: "touching edges do not overlap",
			a:    NewRectangle(Point{0, 0}, 10, 10),
			b:    NewRectangle(Point{10, 10}, 10, 10),
			want: false,
		},
		{
			name: "crosses antimeridian",
			a:    NewRectangle(Point{170, 0}, 20, 10), // spans 170..190 -> wraps to -170
			b:    NewRectangle(Point{-175, 0}, 10, 10),
			want: true,
		},
		{
			name: "whole earth contains everything",
			a:    wholeEarth,
			b:    NewRectangle(Point{170, 80}, 5, 5),
			want: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := tc.a.Intersect(tc.b)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Intersect (-want, +got):\n%s", diff)
			}
			reverse := tc.b.Intersect(tc.a)
			if diff := cmp.Diff(got, reverse); diff != "" {
				t.Errorf("Intersect not symmetric (-a.Intersect(b), +b.Intersect(a)):\n%s", diff)
			}
		})
	}
}

func TestRectangleContainsPoint(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		r    Rectangle
		p    Point
		want bool
	}{
		{name: "inside", r: NewRectangle(Point{0, 0}, 10, 10), p: Point{5, 5}, want: true},
		{name: "lower bound inclusive", r: NewRectangle(Point{0, 0}, 10, 10), p: Point{0, 0}, want: true},
		{name: "upper bound exclusive", r: NewRectangle(Point{0, 0}, 10, 10), p: Point{10, 10}, want: false},
		{name: "outside", r: NewRectangle(Point{0, 0}, 10, 10), p: Point{50, 50}, want: false},
		{
			name: "wraps past antimeridian",
			r:    NewRectangle(Point{170, 0}, 20, 10),
			p:    Point{-175, 5},
			want: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := tc.r.ContainsPoint(tc.p)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ContainsPoint (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestRectangleCenterAndCorners(t *testing.T) {
	t.Parallel()

	r := NewRectangle(Point{0, 0}, 10, 20)

	if diff := cmp.Diff(Point{5, 10}, r.Center()); diff != "" {
		t.Errorf("Center (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(Point{0, 0}, r.SW()); diff != "" {
		t.Errorf("SW (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(Point{10, 0}, r.SE()); diff != "" {
		t.Errorf("SE (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(Point{0, 20}, r.NW()); diff != "" {
		t.Errorf("NW (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(Point{10, 20}, r.NE()); diff != "" {
		t.Errorf("NE (-want, +got):\n%s", diff)
	}
}

func TestDistance(t *testing.T) {
	t.Parallel()

	got := Distance(Point{0, 0}, Point{3, 4})
	if diff := cmp.Diff(5.0, got); diff != "" {
		t.Errorf("Distance (-want, +got):\n%s", diff)
	}
}
