// Package draw renders to ANSI terminals using half-block characters.
package draw

import (
	"fmt"
	"io"
	"strconv"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockMedium    = '▒'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI color sequences for text overlays.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorDim        = "\033[2m"
	ColorItalic     = "\033[3m"
	ColorPink       = "\033[38;2;255;77;109m"
	ColorLightPink  = "\033[38;2;255;179;193m"
	ColorGold       = "\033[38;2;253;184;19m"
	ColorBrightCyan = "\033[96m"
	ColorGray       = "\033[90m"
)

// RGB is a 24-bit colour. The zero value means "no pixel" on a Canvas.
type RGB struct {
	R, G, B uint8
}

// IsZero reports whether c is the empty colour.
func (c RGB) IsZero() bool {
	return c == RGB{}
}

// Scale multiplies each channel by f, clamped to [0, 255]. Results never
// collapse to the empty colour.
func (c RGB) Scale(f float64) RGB {
	ch := func(v uint8) uint8 {
		x := float64(v) * f
		switch {
		case x < 0:
			return 0
		case x > 255:
			return 255
		default:
			return uint8(x)
		}
	}
	out := RGB{ch(c.R), ch(c.G), ch(c.B)}
	if out.IsZero() {
		out.B = 1
	}
	return out
}

// ParseHex parses "#rrggbb". Malformed input yields white.
func ParseHex(s string) RGB {
	if len(s) == 7 && s[0] == '#' {
		if v, err := strconv.ParseUint(s[1:], 16, 32); err == nil {
			c := RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}
			if c.IsZero() {
				c.B = 1
			}
			return c
		}
	}
	return RGB{255, 255, 255}
}

// Foreground returns the truecolor foreground sequence for c.
func (c RGB) Foreground() string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", c.R, c.G, c.B)
}

// Background returns the truecolor background sequence for c.
func (c RGB) Background() string {
	return fmt.Sprintf("\033[48;2;%d;%d;%dm", c.R, c.G, c.B)
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// EnableMouse turns on button, any-motion and SGR extended mouse reports.
func EnableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1000h\033[?1003h\033[?1006h")
}

// DisableMouse turns mouse reporting back off.
func DisableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1006l\033[?1003l\033[?1000l")
}

// MoveCursor moves cursor to a specific position (1-based).
func MoveCursor(w io.Writer, x, y int) {
	fmt.Fprintf(w, "\033[%d;%dH", y, x)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
