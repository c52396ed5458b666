//go:build !tinygo && cgo

package hal

import (
	"errors"
	"image"

	"duofb/config"
	"duofb/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow starts a desktop window that shows the simulated panel.
// It blocks until the window closes or step returns an error; ErrDone
// closes the window cleanly.
func RunWindow(cfg config.Config, newApp func(HAL) func() error) error {
	h := NewWithConfig(cfg).(*hostHAL)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("duofb (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.panel.width*cfg.Scale, h.panel.height*cfg.Scale)
	ebiten.SetTPS(60)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type hostGame struct {
	h     *hostHAL
	img   *image.RGBA
	fbImg *ebiten.Image
	step  func() error
}

func (g *hostGame) Update() error {
	if g.step != nil {
		if err := g.step(); err != nil {
			if errors.Is(err, ErrDone) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	p := g.h.panel
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, p.width, p.height))
		g.fbImg = ebiten.NewImage(p.width, p.height)
	}

	p.snapshotRGBA(g.img)
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.panel.width, g.h.panel.height
}
