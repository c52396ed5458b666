//go:build !tinygo

package hal

import (
	"fmt"
	"image"
	"sync"
)

// hostPanel is the simulated panel memory behind the host bus.
type hostPanel struct {
	mu     sync.Mutex
	width  int
	height int
	pix    []uint16
	writes uint64
}

func newHostPanel(width, height int) *hostPanel {
	return &hostPanel{
		width:  width,
		height: height,
		pix:    make([]uint16, width*height),
	}
}

func (p *hostPanel) WriteRegion(x, y, w, h int16, pixels []uint16) error {
	x0, y0, rw, rh := int(x), int(y), int(w), int(h)
	if rw <= 0 || rh <= 0 || x0 < 0 || y0 < 0 || x0+rw > p.width || y0+rh > p.height {
		return fmt.Errorf("panel: region %dx%d at (%d,%d) outside %dx%d", rw, rh, x0, y0, p.width, p.height)
	}
	if len(pixels) < rw*rh {
		return fmt.Errorf("panel: short write: %d pixels for %dx%d", len(pixels), rw, rh)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for row := 0; row < rh; row++ {
		dst := p.pix[(y0+row)*p.width+x0:]
		copy(dst[:rw], pixels[row*rw:(row+1)*rw])
	}
	p.writes++
	return nil
}

// snapshotRGBA converts the panel contents into dst, which must match the panel size.
func (p *hostPanel) snapshotRGBA(dst *image.RGBA) {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := dst.Pix
	for i, px := range p.pix {
		j := i * 4
		if j+3 >= len(out) {
			return
		}
		r, g, b := rgb888FromPanel(px)
		out[j+0] = r
		out[j+1] = g
		out[j+2] = b
		out[j+3] = 0xFF
	}
}

func (p *hostPanel) image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	p.snapshotRGBA(img)
	return img
}

func (p *hostPanel) writeCount() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}
