/*
Package snapshot rasterizes layout trees to images.

A Canvas is a layout.Painter. Handed to Tree.Flush, it repaints the views
which changed since the last flush. Render repaints a complete tree. Views
are drawn as filled rectangles in their color and opacity, moved by their
translation and scaled around their origin. Rotation is not rasterized.
Optionally each view is labelled with its tag and id.

Snapshots are meant for tests and for the command line tool; a real
backend draws from the same painter calls.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package snapshot

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/npillmayer/motif/core"
	"github.com/npillmayer/motif/core/dimen"
	"github.com/npillmayer/motif/engine/layout"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'motif.display'.
func tracer() tracing.Trace {
	return tracing.Select("motif.display")
}

// Canvas is an image views are painted on.
type Canvas struct {
	img        *image.RGBA
	Background color.Color
	Labels     bool // draw tag and id of views
	painted    int
}

var _ layout.Painter = &Canvas{}

// New creates a white canvas of a size in pixels.
func New(width, height int) *Canvas {
	c := &Canvas{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		Background: color.White,
	}
	c.Clear()
	return c
}

// Image returns the image painted on.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Painted returns the number of views painted since the canvas has been
// cleared.
func (c *Canvas) Painted() int { return c.painted }

// Clear fills the canvas with its background.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.Background), image.Point{}, draw.Src)
	c.painted = 0
}

// Paint draws a view with its border box frame. Invisible and fully
// transparent views leave the canvas untouched.
func (c *Canvas) Paint(v *layout.Node, frame dimen.Rect) {
	if !v.Visible() || v.Opacity() <= 0 {
		return
	}
	r := c.bounds(v, frame)
	if r.Empty() {
		return
	}
	col := v.Color()
	src := color.NRGBA{R: col.R, G: col.G, B: col.B, A: uint8(float32(col.A)*v.Opacity() + 0.5)}
	draw.Draw(c.img, r, image.NewUniform(src), image.Point{}, draw.Over)
	if c.Labels {
		c.label(v, r)
	}
	c.painted++
	tracer().Debugf("painted %v at %v", v, r)
}

// bounds transforms a frame to device pixels.
func (c *Canvas) bounds(v *layout.Node, frame dimen.Rect) image.Rectangle {
	origin := frame.Origin.Add(v.Translate())
	size := frame.Size.Mul(v.Scale())
	r := image.Rect(
		int(math.Round(float64(origin.X))), int(math.Round(float64(origin.Y))),
		int(math.Round(float64(origin.X+size.X))), int(math.Round(float64(origin.Y+size.Y))),
	)
	return r.Intersect(c.img.Bounds())
}

func (c *Canvas) label(v *layout.Node, r image.Rectangle) {
	face := basicfont.Face7x13
	text := v.Tag()
	if v.ID() != "" {
		text += "#" + v.ID()
	}
	m := face.Metrics()
	if r.Dy() < m.Height.Ceil() {
		return
	}
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(contrast(v.Color())),
		Face: face,
		Dot:  fixed.P(r.Min.X+2, r.Min.Y+m.Ascent.Ceil()),
	}
	// cut the label to the width of the view
	for len(text) > 0 && d.MeasureString(text).Ceil()+2 > r.Dx() {
		text = text[:len(text)-1]
	}
	d.DrawString(text)
}

// contrast returns black or white, whichever is more readable on c.
func contrast(c color.RGBA) color.Color {
	lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	if lum > 140 || c.A < 0x80 {
		return color.Black
	}
	return color.White
}

// Render clears the canvas and paints all visible views of a solved and
// flushed tree, parents before children.
func (c *Canvas) Render(root *layout.Node) {
	c.Clear()
	root.Walk(func(v *layout.Node, depth int) bool {
		if !v.Visible() {
			return false
		}
		c.Paint(v, v.Frame())
		return true
	})
}

// WritePNG encodes the canvas as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot encode snapshot")
	}
	return nil
}

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return core.WrapError(err, core.EMISSING, "cannot create snapshot file %s", path)
	}
	defer f.Close()
	if err = c.WritePNG(f); err != nil {
		return err
	}
	return f.Close()
}
