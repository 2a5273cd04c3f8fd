// Package terminal queries the controlling terminal for the text renderer.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal size in character cells.
// Falls back to defaults if stdout is not a terminal.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// GetWidth returns the current terminal width in cells.
func GetWidth() int {
	width, _ := GetSize()
	return width
}
