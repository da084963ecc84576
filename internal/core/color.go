package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Palette used by the terminal renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// RowColors cycles brick colors by row, top to bottom.
var RowColors = []Color{
	ColorBrightRed,
	ColorBrightYellow,
	ColorBrightCyan,
	ColorBrightGreen,
	ColorMagenta,
}

// RowColor returns the color for a brick row.
func RowColor(row int) Color {
	if row < 0 {
		row = -row
	}
	return RowColors[row%len(RowColors)]
}
