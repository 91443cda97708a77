package render

import "asciisketch/diagram"

// Line glyphs.
const (
	LineJoint      = '+'
	LineVertical   = '|'
	LineHorizontal = '-'
	LineFalling    = '\\'
	LineRising     = '/'
)

// Arrowhead glyphs.
const (
	ArrowRight = '>'
	ArrowLeft  = '<'
	ArrowDown  = 'v'
	ArrowUp    = '^'
)

// BresenhamPath returns the 8-connected cells from start to end, both
// included, using the integer Bresenham algorithm. Both axes may advance in
// the same step.
func BresenhamPath(start, end diagram.Point) []diagram.Point {
	dx := abs(end.X - start.X)
	dy := -abs(end.Y - start.Y)

	xInc := 1
	if start.X > end.X {
		xInc = -1
	}
	yInc := 1
	if start.Y > end.Y {
		yInc = -1
	}

	path := make([]diagram.Point, 0, max(dx, -dy)+1)
	err := dx + dy
	x, y := start.X, start.Y

	for {
		path = append(path, diagram.Point{X: x, Y: y})
		if x == end.X && y == end.Y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += xInc
		}
		if e2 <= dx {
			err += dx
			y += yInc
		}
	}

	return path
}

// stepGlyph picks the stroke character for a single step of a path.
// Y grows downward, so a step with matching signs falls to the right.
func stepGlyph(dx, dy int) rune {
	switch {
	case dx == 0 && dy == 0:
		return LineJoint
	case dx == 0:
		return LineVertical
	case dy == 0:
		return LineHorizontal
	case (dx > 0) == (dy > 0):
		return LineFalling
	default:
		return LineRising
	}
}

// arrowHead picks the arrowhead for an overall displacement. Horizontal wins ties.
func arrowHead(dx, dy int) rune {
	if abs(dx) >= abs(dy) {
		if dx >= 0 {
			return ArrowRight
		}
		return ArrowLeft
	}
	if dy >= 0 {
		return ArrowDown
	}
	return ArrowUp
}

// DrawLine rasterizes l onto c, ending in a joint that never erases other strokes.
func DrawLine(c diagram.Canvas, l diagram.Line, origin diagram.Point, cellSize int) {
	drawSegment(c, l.Segment, origin, cellSize, false)
}

// DrawArrow rasterizes a onto c. The arrowhead overwrites whatever is under it.
func DrawArrow(c diagram.Canvas, a diagram.Arrow, origin diagram.Point, cellSize int) {
	drawSegment(c, a.Segment, origin, cellSize, true)
}

func drawSegment(c diagram.Canvas, s diagram.Segment, origin diagram.Point, cellSize int, arrow bool) {
	start, end := segmentEnds(s, cellSize)
	start, end = start.Sub(origin), end.Sub(origin)

	path := BresenhamPath(start, end)
	for i := 0; i+1 < len(path); i++ {
		step := path[i+1].Sub(path[i])
		c.Set(path[i], stepGlyph(step.X, step.Y), false)
	}

	if arrow {
		d := end.Sub(start)
		c.Set(end, arrowHead(d.X, d.Y), true)
		return
	}
	c.Set(end, LineJoint, false)
}

// abs returns the absolute value of an integer.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
