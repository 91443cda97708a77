package render

import "asciisketch/diagram"

// Box glyphs.
const (
	BoxCorner     = '+'
	BoxHorizontal = '-'
	BoxVertical   = '|'
)

// DrawBox rasterizes b onto c. origin is the grid cell that lands on canvas
// cell (0,0).
//
// Corners always win, even over earlier boxes. Edges only fill blank cells.
func DrawBox(c diagram.Canvas, b diagram.Box, origin diagram.Point, cellSize int) {
	tl, br := boxCorners(b, cellSize)
	tl, br = tl.Sub(origin), br.Sub(origin)

	for _, p := range []diagram.Point{tl, {X: br.X, Y: tl.Y}, {X: tl.X, Y: br.Y}, br} {
		c.Set(p, BoxCorner, true)
	}

	for x := tl.X + 1; x < br.X; x++ {
		c.Set(diagram.Point{X: x, Y: tl.Y}, BoxHorizontal, false)
		c.Set(diagram.Point{X: x, Y: br.Y}, BoxHorizontal, false)
	}

	for y := tl.Y + 1; y < br.Y; y++ {
		c.Set(diagram.Point{X: tl.X, Y: y}, BoxVertical, false)
		c.Set(diagram.Point{X: br.X, Y: y}, BoxVertical, false)
	}
}
