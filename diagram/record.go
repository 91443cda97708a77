package diagram

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownShapeType is returned when a record's type is not a known shape kind.
var ErrUnknownShapeType = errors.New("unknown shape type")

// Record is the flat wire form of a shape. Geometry fields are pointers so
// that encoding only emits the fields the shape's kind uses.
type Record struct {
	Type      Kind     `json:"type" yaml:"type"`
	ID        string   `json:"id" yaml:"id"`
	CreatedAt int64    `json:"created_at" yaml:"created_at"`
	X         *float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y         *float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Width     *float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height    *float64 `json:"height,omitempty" yaml:"height,omitempty"`
	X1        *float64 `json:"x1,omitempty" yaml:"x1,omitempty"`
	Y1        *float64 `json:"y1,omitempty" yaml:"y1,omitempty"`
	X2        *float64 `json:"x2,omitempty" yaml:"x2,omitempty"`
	Y2        *float64 `json:"y2,omitempty" yaml:"y2,omitempty"`
	Text      *string  `json:"text,omitempty" yaml:"text,omitempty"`
}

// DocumentRecord is the object form of a document on the wire.
type DocumentRecord struct {
	GridCellSize int      `json:"grid_cell_size,omitempty" yaml:"grid_cell_size,omitempty"`
	Shapes       []Record `json:"shapes" yaml:"shapes"`
}

// Shape converts the record into its typed shape. Missing geometry reads as zero.
func (r Record) Shape() (Shape, error) {
	h := Header{ID: r.ID, CreatedAt: r.CreatedAt}
	switch Kind(strings.ToLower(string(r.Type))) {
	case KindBox:
		return Box{Header: h, X: val(r.X), Y: val(r.Y), Width: val(r.Width), Height: val(r.Height)}, nil
	case KindLine:
		return Line{Header: h, Segment: r.segment()}, nil
	case KindArrow:
		return Arrow{Header: h, Segment: r.segment()}, nil
	case KindText:
		text := ""
		if r.Text != nil {
			text = *r.Text
		}
		return Text{Header: h, X: val(r.X), Y: val(r.Y), Text: text}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShapeType, r.Type)
	}
}

func (r Record) segment() Segment {
	return Segment{X1: val(r.X1), Y1: val(r.Y1), X2: val(r.X2), Y2: val(r.Y2)}
}

// NewRecord converts a shape to its wire form.
func NewRecord(s Shape) Record {
	h := s.Meta()
	r := Record{Type: s.Kind(), ID: h.ID, CreatedAt: h.CreatedAt}
	switch v := s.(type) {
	case Box:
		r.X, r.Y, r.Width, r.Height = ptr(v.X), ptr(v.Y), ptr(v.Width), ptr(v.Height)
	case Line:
		r.X1, r.Y1, r.X2, r.Y2 = ptr(v.X1), ptr(v.Y1), ptr(v.X2), ptr(v.Y2)
	case Arrow:
		r.X1, r.Y1, r.X2, r.Y2 = ptr(v.X1), ptr(v.Y1), ptr(v.X2), ptr(v.Y2)
	case Text:
		text := v.Text
		r.X, r.Y, r.Text = ptr(v.X), ptr(v.Y), &text
	}
	return r
}

// DecodeRecords converts wire records into shapes, preserving order.
func DecodeRecords(records []Record) ([]Shape, error) {
	shapes := make([]Shape, 0, len(records))
	for i, r := range records {
		s, err := r.Shape()
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

// NewDocumentRecord converts a document to its wire form.
func NewDocumentRecord(d *Document) DocumentRecord {
	out := DocumentRecord{GridCellSize: d.GridCellSize, Shapes: make([]Record, 0, len(d.Shapes))}
	for _, s := range d.Shapes {
		out.Shapes = append(out.Shapes, NewRecord(s))
	}
	return out
}

// Document converts the wire form back into a document.
func (dr DocumentRecord) Document() (*Document, error) {
	shapes, err := DecodeRecords(dr.Shapes)
	if err != nil {
		return nil, err
	}
	return &Document{GridCellSize: dr.GridCellSize, Shapes: shapes}, nil
}

func val(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func ptr(v float64) *float64 {
	return &v
}
