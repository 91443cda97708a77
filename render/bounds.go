package render

import (
	"asciisketch/canvas"
	"asciisketch/diagram"
)

// boxCorners returns the quantized top-left and bottom-right cells of b.
func boxCorners(b diagram.Box, cellSize int) (tl, br diagram.Point) {
	tl = diagram.Point{X: ToCell(b.X, cellSize), Y: ToCell(b.Y, cellSize)}
	br = tl.Add(diagram.Point{X: toExtent(b.Width, cellSize), Y: toExtent(b.Height, cellSize)})
	return tl, br
}

// segmentEnds returns the quantized endpoints of s.
func segmentEnds(s diagram.Segment, cellSize int) (start, end diagram.Point) {
	start = diagram.Point{X: ToCell(s.X1, cellSize), Y: ToCell(s.Y1, cellSize)}
	end = diagram.Point{X: ToCell(s.X2, cellSize), Y: ToCell(s.Y2, cellSize)}
	return start, end
}

// textAnchor returns the quantized starting cell of t.
func textAnchor(t diagram.Text, cellSize int) diagram.Point {
	return diagram.Point{X: ToCell(t.X, cellSize), Y: ToCell(t.Y, cellSize)}
}

// ComputeBounds returns the smallest cell rectangle covering every shape.
// The second result is false when there are no shapes.
func ComputeBounds(shapes []diagram.Shape, cellSize int) (diagram.Bounds, bool) {
	var (
		b     diagram.Bounds
		found bool
	)

	include := func(points ...diagram.Point) {
		for _, p := range points {
			if !found {
				b = diagram.Bounds{Min: p, Max: p}
				found = true
				continue
			}
			b = b.Extend(p)
		}
	}

	for _, s := range shapes {
		switch v := s.(type) {
		case diagram.Box:
			include(boxCorners(v, cellSize))
		case diagram.Line:
			include(segmentEnds(v.Segment, cellSize))
		case diagram.Arrow:
			include(segmentEnds(v.Segment, cellSize))
		case diagram.Text:
			// Single row: only the x extent grows with the label.
			anchor := textAnchor(v, cellSize)
			include(anchor, diagram.Point{X: anchor.X + canvas.StringWidth(v.Text), Y: anchor.Y})
		}
	}

	return b, found
}
