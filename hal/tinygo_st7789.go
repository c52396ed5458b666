//go:build tinygo && baremetal

package hal

import (
	"errors"

	"machine"

	"duofb/config"
	"duofb/framebuffer"

	"tinygo.org/x/drivers/st7789"
)

// st7789Bus sends whole regions to the panel over SPI. Controller bring-up
// is the driver's job.
type st7789Bus struct {
	lcd st7789.Device
}

func initST7789() (*st7789Bus, error) {
	spi := machine.SPI0
	if err := spi.Configure(machine.SPIConfig{
		Frequency: config.SPIFrequency,
		SCK:       machine.Pin(config.PinSCK),
		SDO:       machine.Pin(config.PinSDO),
		SDI:       machine.Pin(config.PinSDI),
	}); err != nil {
		return nil, err
	}

	b := &st7789Bus{
		lcd: st7789.New(spi,
			machine.Pin(config.PinRST),
			machine.Pin(config.PinDC),
			machine.Pin(config.PinCS),
			machine.Pin(config.PinBL),
		),
	}
	// Native orientation is portrait; the rotation gives Width x Height.
	b.lcd.Configure(st7789.Config{
		Width:    config.Height,
		Height:   config.Width,
		Rotation: config.Rotation,
	})
	return b, nil
}

func (b *st7789Bus) WriteRegion(x, y, w, h int16, pixels []uint16) error {
	if b == nil {
		return errors.New("st7789: panel not initialized")
	}
	if w <= 0 || h <= 0 || len(pixels) < int(w)*int(h) {
		return errors.New("st7789: invalid region")
	}
	// The words are already big-endian in memory, so the bytes go out as is.
	return b.lcd.DrawRGBBitmap8(x, y, framebuffer.PanelBytes(pixels[:int(w)*int(h)]), w, h)
}
