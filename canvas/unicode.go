package canvas

import "github.com/mattn/go-runewidth"

// widths is fixed to the non-East-Asian table so output does not depend on
// the caller's locale environment.
var widths = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// UnicodeWidth returns the display width of a rune in terminal cells:
// 2 for wide runes, 0 for zero-width and control runes, 1 otherwise.
// Bounds computation and text placement must both go through this function.
func UnicodeWidth(r rune) int {
	// Fast path for printable ASCII
	if r >= 0x20 && r < 0x7F {
		return 1
	}
	switch w := widths.RuneWidth(r); {
	case w <= 0:
		return 0
	case w >= 2:
		return 2
	default:
		return 1
	}
}

// StringWidth returns the display width of a string in terminal cells.
func StringWidth(s string) int {
	width := 0
	for _, r := range s {
		width += UnicodeWidth(r)
	}
	return width
}

// TruncateToWidth truncates a string to fit within the specified width.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	width := 0
	lastValidIndex := 0

	for i, r := range s {
		charWidth := UnicodeWidth(r)
		if width+charWidth > maxWidth {
			break
		}
		width += charWidth
		lastValidIndex = i + len(string(r))
	}

	return s[:lastValidIndex]
}
