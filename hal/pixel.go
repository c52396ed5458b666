package hal

import "tinygo.org/x/drivers/pixel"

// rgb888FromPanel decodes a panel-order (big-endian) RGB565 word.
func rgb888FromPanel(p uint16) (r, g, b uint8) {
	c := pixel.RGB565BE(p).RGBA()
	return c.R, c.G, c.B
}
