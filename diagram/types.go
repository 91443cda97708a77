// Package diagram contains the shape model shared by the renderer, importers and exporters.
package diagram

// Point represents a cell coordinate on the character grid.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Bounds represents an inclusive rectangle of grid cells.
type Bounds struct {
	Min, Max Point
}

// Extend returns the smallest bounds covering both b and p.
func (b Bounds) Extend(p Point) Bounds {
	b.Min.X = min(b.Min.X, p.X)
	b.Min.Y = min(b.Min.Y, p.Y)
	b.Max.X = max(b.Max.X, p.X)
	b.Max.Y = max(b.Max.Y, p.Y)
	return b
}

// Kind identifies a shape variant. It is also the wire value of the "type" field.
type Kind string

const (
	KindBox   Kind = "box"
	KindLine  Kind = "line"
	KindArrow Kind = "arrow"
	KindText  Kind = "text"
)

// Header carries the fields every shape has regardless of its kind.
// CreatedAt is kept for round-tripping only; drawing order is list order.
type Header struct {
	ID        string
	CreatedAt int64
}

// Meta returns the shape header.
func (h Header) Meta() Header {
	return h
}

// Shape is one of Box, Line, Arrow or Text.
type Shape interface {
	Kind() Kind
	Meta() Header
	isShape()
}

// Box is a rectangle given by its top-left corner and extents.
type Box struct {
	Header
	X, Y          float64
	Width, Height float64
}

// Segment is the geometry shared by lines and arrows.
type Segment struct {
	X1, Y1 float64
	X2, Y2 float64
}

// Line is a straight stroke ending in a plain joint.
type Line struct {
	Header
	Segment
}

// Arrow is a straight stroke ending in an arrowhead.
type Arrow struct {
	Header
	Segment
}

// Text is a single-row label anchored at its top-left cell.
type Text struct {
	Header
	X, Y float64
	Text string
}

func (Box) Kind() Kind   { return KindBox }
func (Line) Kind() Kind  { return KindLine }
func (Arrow) Kind() Kind { return KindArrow }
func (Text) Kind() Kind  { return KindText }

func (Box) isShape()   {}
func (Line) isShape()  {}
func (Arrow) isShape() {}
func (Text) isShape()  {}

// WithID returns a copy of s carrying the given id.
func WithID(s Shape, id string) Shape {
	switch v := s.(type) {
	case Box:
		v.ID = id
		return v
	case Line:
		v.ID = id
		return v
	case Arrow:
		v.ID = id
		return v
	case Text:
		v.ID = id
		return v
	default:
		return s
	}
}

// Document is a shape list together with the grid cell size it was drawn at.
// A zero GridCellSize means the renderer's configured size applies.
type Document struct {
	GridCellSize int
	Shapes       []Shape
}

// Count returns how many shapes of each kind the document holds.
func (d *Document) Count() map[Kind]int {
	counts := make(map[Kind]int, 4)
	if d == nil {
		return counts
	}
	for _, s := range d.Shapes {
		counts[s.Kind()]++
	}
	return counts
}
