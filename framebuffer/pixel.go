package framebuffer

import (
	"image/color"
	"unsafe"

	"tinygo.org/x/drivers/pixel"
)

// RGB565 encodes c as an RGB565 word in panel byte order: big-endian in
// memory, the layout the ST7789 reads off the SPI bus.
func RGB565(c color.RGBA) uint16 {
	return uint16(pixel.NewRGB565BE(c.R, c.G, c.B))
}

// RGBA decodes a panel-order RGB565 word to opaque 8-bit channels.
func RGBA(p uint16) color.RGBA {
	return pixel.RGB565BE(p).RGBA()
}

// PanelBytes views pixels as the byte stream sent to the panel. The
// result aliases pixels.
func PanelBytes(pixels []uint16) []byte {
	if len(pixels) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&pixels[0])), 2*len(pixels))
}
