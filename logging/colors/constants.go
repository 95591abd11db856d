package colors

// Color is an ANSI SGR code
type Color int

// ANSI codes as used by zerolog's console writer
// Source: https://github.com/rs/zerolog/blob/4fff5db29c3403bc26dee9895e12a108aacc0203/console.go
const (
	RED Color = iota + 31
	GREEN
	YELLOW
	BLUE
	MAGENTA
	CYAN
	WHITE
	BOLD      Color = 1
	DARK_GRAY Color = 90
)

// LEFT_ARROW is the glyph that prefixes info-level console lines
const LEFT_ARROW = "⇾"
