package framebuffer

import (
	"image/color"
	"testing"

	"duofb/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

func newFB(t *testing.T) *Framebuffer {
	t.Helper()
	f := new(Framebuffer)
	f.Reset()
	return f
}

func TestResetGeometry(t *testing.T) {
	f := newFB(t)
	w, h := f.Size()
	assert.Equal(t, int16(config.Width), w)
	assert.Equal(t, int16(config.Height), h)
	assert.Len(t, f.Pixels(), config.BufferLen)
}

func TestSetPixelClips(t *testing.T) {
	f := newFB(t)
	before := f.Checksum()
	f.SetPixel(-1, 0, colornames.White)
	f.SetPixel(0, -1, colornames.White)
	f.SetPixel(config.Width, 0, colornames.White)
	f.SetPixel(0, config.Height, colornames.White)
	assert.Equal(t, before, f.Checksum())

	f.SetPixel(3, 2, colornames.White)
	assert.Equal(t, uint16(0xFFFF), f.At(3, 2))
	assert.Equal(t, uint16(0xFFFF), f.Pixels()[2*config.Width+3])
}

func TestFillRectangleClips(t *testing.T) {
	f := newFB(t)
	require.NoError(t, f.FillRectangle(config.Width-2, config.Height-2, 10, 10, colornames.Red))

	red := RGB565(colornames.Red)
	assert.Equal(t, red, f.At(config.Width-1, config.Height-1))
	assert.Equal(t, red, f.At(config.Width-2, config.Height-2))
	assert.Equal(t, uint16(0), f.At(config.Width-3, config.Height-2))
}

func TestFillRectangleEmpty(t *testing.T) {
	f := newFB(t)
	before := f.Checksum()
	require.NoError(t, f.FillRectangle(10, 10, 0, 5, colornames.Red))
	require.NoError(t, f.FillRectangle(10, 10, -4, 5, colornames.Red))
	assert.Equal(t, before, f.Checksum())
}

func TestFill(t *testing.T) {
	f := newFB(t)
	f.Fill(colornames.Blue)
	want := RGB565(colornames.Blue)
	for _, p := range f.Pixels() {
		if p != want {
			t.Fatalf("Fill() pixel = %#04x, want %#04x", p, want)
		}
	}
}

func TestPixelsInPanelByteOrder(t *testing.T) {
	f := newFB(t)
	f.SetPixel(0, 0, colornames.Red)
	f.SetPixel(1, 0, colornames.Blue)
	f.SetPixel(2, 0, color.RGBA{R: 0x08, G: 0x24, B: 0x50, A: 0xFF})

	b := PanelBytes(f.Pixels())
	require.Len(t, b, 2*config.BufferLen)
	// rrrrrggg gggbbbbb, high byte first.
	assert.Equal(t, []byte{0xF8, 0x00, 0x00, 0x1F, 0x09, 0x2A}, b[:6])
}

func TestPanelBytesAliasesPixels(t *testing.T) {
	assert.Nil(t, PanelBytes(nil))

	px := []uint16{0, 0}
	b := PanelBytes(px)
	b[2] = 0xFF
	assert.Equal(t, RGBA(px[1]).R, uint8(0xFF))
}

func TestRGB565RoundTrip(t *testing.T) {
	for _, c := range []color.RGBA{colornames.Black, colornames.White, colornames.Red, colornames.Lime, colornames.Blue} {
		assert.Equal(t, c, RGBA(RGB565(c)))
	}
}
