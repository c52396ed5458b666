// Package framebuffer provides the fixed-size RGB565 frame the pipeline
// cycles between its render and display stages.
package framebuffer

import (
	"image/color"

	"duofb/config"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*Framebuffer)(nil)

// Framebuffer is one full frame of RGB565 pixels stored in panel byte
// order (see RGB565), so the display stage can send Pixels unconverted.
//
// The pixel array is part of the struct so a Framebuffer never allocates;
// callers keep it in long-lived storage and pass pointers around.
type Framebuffer struct {
	_ noCopy

	width  int16
	height int16
	pix    [config.BufferLen]uint16
}

// Reset sets the geometry and clears every pixel to black.
func (f *Framebuffer) Reset() {
	f.width = config.Width
	f.height = config.Height
	clear(f.pix[:])
}

func (f *Framebuffer) Width() int16  { return f.width }
func (f *Framebuffer) Height() int16 { return f.height }

// Pixels returns the whole frame, row-major, Width() pixels per row.
func (f *Framebuffer) Pixels() []uint16 { return f.pix[:] }

// Size implements drivers.Displayer.
func (f *Framebuffer) Size() (x, y int16) { return f.width, f.height }

// SetPixel implements drivers.Displayer. Out-of-bounds writes are dropped.
func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.pix[int(y)*int(f.width)+int(x)] = RGB565(c)
}

// Display implements drivers.Displayer. Presenting is the display stage's
// job, so this is a no-op.
func (f *Framebuffer) Display() error { return nil }

// Fill sets every pixel to c.
func (f *Framebuffer) Fill(c color.RGBA) {
	p := RGB565(c)
	for i := range f.pix {
		f.pix[i] = p
	}
}

// FillRectangle fills the clipped rectangle with c.
func (f *Framebuffer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0 := clampInt(int(x), 0, int(f.width))
	y0 := clampInt(int(y), 0, int(f.height))
	x1 := clampInt(int(x)+int(width), 0, int(f.width))
	y1 := clampInt(int(y)+int(height), 0, int(f.height))
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	p := RGB565(c)
	w := int(f.width)
	for py := y0; py < y1; py++ {
		row := f.pix[py*w+x0 : py*w+x1]
		for i := range row {
			row[i] = p
		}
	}
	return nil
}

// At returns the panel-order RGB565 word at (x, y), or 0 outside the frame.
func (f *Framebuffer) At(x, y int16) uint16 {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return 0
	}
	return f.pix[int(y)*int(f.width)+int(x)]
}

// Checksum is a cheap FNV-1a digest of the pixel data.
func (f *Framebuffer) Checksum() uint32 {
	h := uint32(2166136261)
	for _, p := range f.pix {
		h ^= uint32(p)
		h *= 16777619
	}
	return h
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// noCopy makes go vet's copylocks check flag a Framebuffer passed by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
