//go:build tinygo

// Build with the multicore scheduler so the render and flush loops each get
// a core:
//
//	tinygo flash -target=pico2 -scheduler=cores .
package main

import (
	"duofb/app"
	"duofb/hal"
)

func main() {
	app.Run(hal.New())
}
