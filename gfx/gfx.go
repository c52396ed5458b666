// Package gfx draws the small set of primitives the overlay needs onto any
// drivers.Displayer.
package gfx

import (
	"errors"
	"image"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// ErrNilSurface is returned for a nil surface.
var ErrNilSurface = errors.New("gfx: nil surface")

// DefaultFont is the overlay font.
var DefaultFont tinyfont.Fonter = &proggy.TinySZ8pt7b

// Filler is implemented by surfaces with a fast rectangle fill.
type Filler interface {
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// Style describes how a rectangle is painted. A zero alpha disables the
// fill or the stroke.
type Style struct {
	Fill        color.RGBA
	Stroke      color.RGBA
	StrokeWidth int16
}

// TextStyle describes how text is painted.
type TextStyle struct {
	Font  tinyfont.Fonter
	Color color.RGBA
}

// Clear paints the whole surface with c.
func Clear(d drivers.Displayer, c color.RGBA) error {
	if d == nil {
		return ErrNilSurface
	}
	w, h := d.Size()
	return fill(d, 0, 0, w, h, c)
}

// Rectangle paints r with style s. The stroke is drawn inside r.
func Rectangle(d drivers.Displayer, r image.Rectangle, s Style) error {
	if d == nil {
		return ErrNilSurface
	}
	r = r.Canon()
	x, y := int16(r.Min.X), int16(r.Min.Y)
	w, h := int16(r.Dx()), int16(r.Dy())
	if w <= 0 || h <= 0 {
		return nil
	}

	if s.Fill.A != 0 {
		if err := fill(d, x, y, w, h, s.Fill); err != nil {
			return err
		}
	}
	sw := s.StrokeWidth
	if s.Stroke.A == 0 || sw <= 0 {
		return nil
	}
	if sw*2 >= w || sw*2 >= h {
		return fill(d, x, y, w, h, s.Stroke)
	}
	edges := [4][4]int16{
		{x, y, w, sw},
		{x, y + h - sw, w, sw},
		{x, y + sw, sw, h - 2*sw},
		{x + w - sw, y + sw, sw, h - 2*sw},
	}
	for _, e := range edges {
		if err := fill(d, e[0], e[1], e[2], e[3], s.Stroke); err != nil {
			return err
		}
	}
	return nil
}

// Text writes s with its baseline at anchor.
func Text(d drivers.Displayer, s string, anchor image.Point, st TextStyle) error {
	if d == nil {
		return ErrNilSurface
	}
	font := st.Font
	if font == nil {
		font = DefaultFont
	}
	tinyfont.WriteLine(d, font, int16(anchor.X), int16(anchor.Y), s, st.Color)
	return nil
}

// TextWidth returns the advance width of s in pixels.
func TextWidth(font tinyfont.Fonter, s string) int {
	if font == nil {
		font = DefaultFont
	}
	_, outbox := tinyfont.LineWidth(font, s)
	return int(outbox)
}

func fill(d drivers.Displayer, x, y, w, h int16, c color.RGBA) error {
	if f, ok := d.(Filler); ok {
		return f.FillRectangle(x, y, w, h, c)
	}
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			d.SetPixel(px, py, c)
		}
	}
	return nil
}
