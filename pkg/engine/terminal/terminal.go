// Package terminal probes the controlling terminal for the developer CLI.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// reserved lines outside the map: headings, legend and prompt
const reservedRows = 6

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// IsTerminal reports whether stdout is a terminal. Colour output is only
// worth producing when it is.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Viewport returns how many map columns and rows fit in a width x height
// terminal, never more than the map itself and never less than one.
func Viewport(mapWidth, mapHeight, width, height int) (cols, rows int) {
	cols = min(mapWidth, width)
	rows = min(mapHeight, height-reservedRows)
	return max(cols, 1), max(rows, 1)
}
