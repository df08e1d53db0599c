// pkg/math/math_test.go
// Copyright(c) 2023-2025 overlay contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
	"testing"
)

func TestNormalize2f(t *testing.T) {
	cases := []struct {
		v, want [2]float32
	}{
		{v: [2]float32{3, 0}, want: [2]float32{1, 0}},
		{v: [2]float32{0, -2}, want: [2]float32{0, -1}},
		{v: [2]float32{0, 0}, want: [2]float32{0, 0}},
	}
	for _, c := range cases {
		got := Normalize2f(c.v)
		if got != c.want {
			t.Errorf("Normalize2f(%v) = %v, want %v", c.v, got, c.want)
		}
	}

	n := Normalize2f([2]float32{5, -7})
	if l := Length2f(n); Abs(l-1) > 1e-6 {
		t.Errorf("normalized vector has length %v, want 1", l)
	}
}

func TestExtent2DFromPoints(t *testing.T) {
	e := Extent2DFromPoints([][2]float32{{1, 2}, {-3, 5}, {0, -1}})
	if e.P0 != [2]float32{-3, -1} || e.P1 != [2]float32{1, 5} {
		t.Errorf("got extent %v - %v", e.P0, e.P1)
	}
	if e.Width() != 4 || e.Height() != 6 {
		t.Errorf("got width %v height %v, want 4, 6", e.Width(), e.Height())
	}
	if !e.Inside([2]float32{0, 0}) {
		t.Errorf("(0,0) reported outside extent")
	}
	if e.Inside([2]float32{2, 0}) {
		t.Errorf("(2,0) reported inside extent")
	}
	if p := e.ClampPoint([2]float32{10, -10}); p != [2]float32{1, -1} {
		t.Errorf("ClampPoint gave %v, want (1,-1)", p)
	}
}

func TestCirclePoints(t *testing.T) {
	for _, nsegs := range []int{3, 8, 64} {
		pts := CirclePoints(nsegs)
		if len(pts) != nsegs {
			t.Errorf("CirclePoints(%d) returned %d points", nsegs, len(pts))
		}
		for _, p := range pts {
			if l := Length2f(p); Abs(l-1) > 1e-5 {
				t.Errorf("CirclePoints(%d): point %v not on unit circle", nsegs, p)
			}
		}
	}
}

func TestOrtho(t *testing.T) {
	// Top-left origin projection for a 640x480 surface.
	m := Identity3x3().Ortho(0, 640, 480, 0)

	type testCase struct {
		p, want [2]float32
	}
	for _, c := range []testCase{
		{p: [2]float32{0, 0}, want: [2]float32{-1, 1}},
		{p: [2]float32{640, 480}, want: [2]float32{1, -1}},
		{p: [2]float32{320, 240}, want: [2]float32{0, 0}},
	} {
		got := m.TransformPoint(c.p)
		if Abs(got[0]-c.want[0]) > 1e-6 || Abs(got[1]-c.want[1]) > 1e-6 {
			t.Errorf("project %v: got %v, want %v", c.p, got, c.want)
		}
	}
}

func TestMatrix3Compose(t *testing.T) {
	m := Identity3x3().Translate(10, 20).Scale(2, 3)
	got := m.TransformPoint([2]float32{1, 1})
	want := [2]float32{12, 23}
	if Abs(got[0]-want[0]) > 1e-6 || Abs(got[1]-want[1]) > 1e-6 {
		t.Errorf("transform gave %v, want %v", got, want)
	}

	v := m.TransformVector([2]float32{1, 1})
	if v != [2]float32{2, 3} {
		t.Errorf("vector transform gave %v, want (2,3)", v)
	}
}

func TestClampLerp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Errorf("Clamp is broken")
	}
	if Lerp(0.5, 0, 10) != 5 {
		t.Errorf("Lerp(0.5, 0, 10) = %v", Lerp(0.5, 0, 10))
	}
	if Radians(180) != gomath.Pi {
		t.Errorf("Radians(180) = %v", Radians(180))
	}
}
