//go:build windows
// +build windows

package colors

import (
	"os"

	"golang.org/x/sys/windows"
)

// EnableColor will query the console mode of stdout and only turn ANSI coloring on if virtual terminal processing is
// available on this Windows system.
func EnableColor() {
	var mode uint32
	if err := windows.GetConsoleMode(windows.Handle(os.Stdout.Fd()), &mode); err != nil {
		enabled = false
		return
	}
	enabled = mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0
}
