// Package dimen implements view geometry in device pixels.
//
/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer (norbert@pillmayer.com)

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */
package dimen

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Axis selects one of the two layout axes.
type Axis int8

// Axes of a 2D layout
const (
	X Axis = 0 // horizontal
	Y Axis = 1 // vertical
)

// Cross returns the axis perpendicular to a.
func (a Axis) Cross() Axis {
	return 1 - a
}

func (a Axis) String() string {
	if a == X {
		return "x"
	}
	return "y"
}

// Infinity is the largest possible extent.
const Infinity float32 = math.MaxFloat32

// Vec2 is a 2D vector in device pixels.
type Vec2 struct {
	X, Y float32
}

// Zero is the null vector.
var Zero = Vec2{}

// V is a shortcut for constructing a vector.
func V(x, y float32) Vec2 {
	return Vec2{x, y}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g,%g)", v.X, v.Y)
}

// At returns the component of v for an axis.
func (v Vec2) At(a Axis) float32 {
	if a == X {
		return v.X
	}
	return v.Y
}

// With returns a copy of v with the component for axis a replaced.
func (v Vec2) With(a Axis, value float32) Vec2 {
	if a == X {
		v.X = value
	} else {
		v.Y = value
	}
	return v
}

// Along constructs a vector from a main-axis and a cross-axis value.
func Along(main Axis, m, c float32) Vec2 {
	if main == X {
		return Vec2{m, c}
	}
	return Vec2{c, m}
}

// Add returns v+w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{v.X + w.X, v.Y + w.Y}
}

// Sub returns v-w.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{v.X - w.X, v.Y - w.Y}
}

// Scale returns v*f.
func (v Vec2) Scale(f float32) Vec2 {
	return Vec2{v.X * f, v.Y * f}
}

// Mul multiplies component-wise.
func (v Vec2) Mul(w Vec2) Vec2 {
	return Vec2{v.X * w.X, v.Y * w.Y}
}

// Lerp interpolates between v and w, with t in [0…1].
func (v Vec2) Lerp(w Vec2, t float32) Vec2 {
	return Vec2{v.X + (w.X-v.X)*t, v.Y + (w.Y-v.Y)*t}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Origin Vec2
	Size   Vec2
}

// Min is the top-left corner.
func (r Rect) Min() Vec2 {
	return r.Origin
}

// Max is the bottom-right corner.
func (r Rect) Max() Vec2 {
	return r.Origin.Add(r.Size)
}

// Contains checks if point p is inside r.
func (r Rect) Contains(p Vec2) bool {
	m := r.Max()
	return p.X >= r.Origin.X && p.Y >= r.Origin.Y && p.X < m.X && p.Y < m.Y
}

// Insets are the four edges of a margin, border or padding.
type Insets struct {
	Top, Right, Bottom, Left float32
}

// Uniform creates insets with all four edges set to v.
func Uniform(v float32) Insets {
	return Insets{v, v, v, v}
}

// Sum returns the total horizontal and vertical extent of the insets.
func (in Insets) Sum() Vec2 {
	return Vec2{in.Left + in.Right, in.Top + in.Bottom}
}

// Lead returns the top-left offset of the insets.
func (in Insets) Lead() Vec2 {
	return Vec2{in.Left, in.Top}
}

// ---------------------------------------------------------------------------

// Unit is the unit of a parsed length.
type Unit int8

// Units of a length
const (
	PX      Unit = iota // device pixels
	Percent             // fraction of the parent
	Auto                // "auto", i.e. sized by content
	Match               // "match", i.e. fill parent
)

var lengthPattern = regexp.MustCompile(`^([+\-]?[0-9]*\.?[0-9]+)(%|px|pt)?$`)

// ParseLength parses a length with CSS syntax. Supported are pixel values
// (`12`, `12px`), points (`9pt`, converted at 96dpi), percentages (`80%`,
// returned as 0.8) and the keywords `auto`, `wrap` and `match`.
func ParseLength(s string) (float32, Unit, error) {
	switch s {
	case "auto", "wrap":
		return 0, Auto, nil
	case "match":
		return 0, Match, nil
	}
	d := lengthPattern.FindStringSubmatch(s)
	if len(d) < 2 {
		return 0, PX, errors.New("format error parsing length")
	}
	n, err := strconv.ParseFloat(d[1], 32)
	if err != nil {
		return 0, PX, errors.New("format error parsing length")
	}
	v := float32(n)
	if len(d) > 2 {
		switch d[2] {
		case "%":
			return v / 100, Percent, nil
		case "pt":
			return v * 96 / 72, PX, nil
		}
	}
	return v, PX, nil
}

// ---------------------------------------------------------------------------

// Min returns the smaller of two extents.
func Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two extents.
func Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Clamp restricts v to [lo…hi]. If hi < lo, lo wins.
func Clamp(v, lo, hi float32) float32 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
