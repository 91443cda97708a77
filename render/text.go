package render

import (
	"asciisketch/canvas"
	"asciisketch/diagram"
)

// DrawText places t onto c one rune at a time. Labels overwrite anything
// beneath them. A wide rune also blanks the cell to its right; a zero-width
// rune does not advance, so the next rune lands on the same cell.
func DrawText(c diagram.Canvas, t diagram.Text, origin diagram.Point, cellSize int) {
	p := textAnchor(t, cellSize).Sub(origin)

	for _, r := range t.Text {
		c.Set(p, r, true)

		switch canvas.UnicodeWidth(r) {
		case 2:
			c.Set(diagram.Point{X: p.X + 1, Y: p.Y}, canvas.Blank, true)
			p.X += 2
		case 1:
			p.X++
		}
	}
}
