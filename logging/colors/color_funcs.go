package colors

import "fmt"

// ColorFunc is an alias type for a coloring function that accepts anything and returns a colorized string
type ColorFunc = func(s any) string

// Reset is a ColorFunc that returns the input as a plain string. It resets the color context of a log call.
func Reset(s any) string {
	return fmt.Sprintf("%v", s)
}

// Red colors s red
func Red(s any) string { return Colorize(s, RED) }

// RedBold colors s bold red
func RedBold(s any) string { return Colorize(Colorize(s, RED), BOLD) }

// Green colors s green
func Green(s any) string { return Colorize(s, GREEN) }

// GreenBold colors s bold green
func GreenBold(s any) string { return Colorize(Colorize(s, GREEN), BOLD) }

// Yellow colors s yellow
func Yellow(s any) string { return Colorize(s, YELLOW) }

// YellowBold colors s bold yellow
func YellowBold(s any) string { return Colorize(Colorize(s, YELLOW), BOLD) }

// Blue colors s blue
func Blue(s any) string { return Colorize(s, BLUE) }

// BlueBold colors s bold blue
func BlueBold(s any) string { return Colorize(Colorize(s, BLUE), BOLD) }

// Cyan colors s cyan
func Cyan(s any) string { return Colorize(s, CYAN) }

// CyanBold colors s bold cyan
func CyanBold(s any) string { return Colorize(Colorize(s, CYAN), BOLD) }

// Bold emboldens s
func Bold(s any) string { return Colorize(s, BOLD) }

// DarkGray colors s dark gray
func DarkGray(s any) string { return Colorize(s, DARK_GRAY) }
