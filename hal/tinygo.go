//go:build tinygo && baremetal

package hal

import (
	"machine"

	"duofb/config"
)

type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	bus    *st7789Bus
	clock  *monoClock
}

// New returns a Raspberry Pi Pico 2 (RP2350) HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// Panel: ST7789 on SPI0, pins from package config.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: config.UARTBaudRate,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	logger := &uartLogger{uart: uart}
	bus, err := initST7789()
	if err != nil {
		logger.WriteLineString("hal: panel init: " + err.Error())
	}

	return &tinyGoHAL{
		logger: logger,
		led:    &pinLED{pin: ledPin},
		bus:    bus,
		clock:  newMonoClock(),
	}
}

func (h *tinyGoHAL) Logger() Logger { return h.logger }
func (h *tinyGoHAL) LED() LED       { return h.led }
func (h *tinyGoHAL) Bus() Bus       { return h.bus }
func (h *tinyGoHAL) Clock() Clock   { return h.clock }

// PinToCore is a no-op: the TinyGo cores scheduler (-scheduler=cores)
// places goroutines.
func PinToCore(core int) error {
	_ = core
	return nil
}
