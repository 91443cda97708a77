package diagram

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Shape(t *testing.T) {
	text := "hello"
	tests := []struct {
		name   string
		record Record
		want   Shape
	}{
		{
			name:   "box",
			record: Record{Type: KindBox, ID: "b1", CreatedAt: 7, X: ptr(1), Y: ptr(2), Width: ptr(30), Height: ptr(40)},
			want:   Box{Header: Header{ID: "b1", CreatedAt: 7}, X: 1, Y: 2, Width: 30, Height: 40},
		},
		{
			name:   "line",
			record: Record{Type: KindLine, ID: "l1", X1: ptr(0), Y1: ptr(0), X2: ptr(30), Y2: ptr(0)},
			want:   Line{Header: Header{ID: "l1"}, Segment: Segment{X2: 30}},
		},
		{
			name:   "arrow with upper-case type",
			record: Record{Type: "ARROW", ID: "a1", X1: ptr(5), Y2: ptr(-5)},
			want:   Arrow{Header: Header{ID: "a1"}, Segment: Segment{X1: 5, Y2: -5}},
		},
		{
			name:   "text",
			record: Record{Type: KindText, ID: "t1", X: ptr(3), Y: ptr(4), Text: &text},
			want:   Text{Header: Header{ID: "t1"}, X: 3, Y: 4, Text: "hello"},
		},
		{
			name:   "text without body",
			record: Record{Type: KindText, ID: "t2"},
			want:   Text{Header: Header{ID: "t2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.record.Shape()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecord_UnknownType(t *testing.T) {
	_, err := Record{Type: "circle"}.Shape()
	require.ErrorIs(t, err, ErrUnknownShapeType)
	assert.Contains(t, err.Error(), "circle")

	_, err = DecodeRecords([]Record{{Type: KindBox}, {Type: "ellipse"}})
	require.ErrorIs(t, err, ErrUnknownShapeType)
	assert.Contains(t, err.Error(), "shape 1")
}

func TestNewRecord_EmitsOnlyKindFields(t *testing.T) {
	data, err := json.Marshal(NewRecord(Line{Header: Header{ID: "l", CreatedAt: 3}, Segment: Segment{X2: 10}}))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.ElementsMatch(t, []string{"type", "id", "created_at", "x1", "y1", "x2", "y2"}, keys(fields))
	assert.Equal(t, "line", fields["type"])
	assert.Equal(t, float64(0), fields["x1"], "zero coordinates are still emitted")
}

func TestDocumentRecord_RoundTrip(t *testing.T) {
	doc := &Document{
		GridCellSize: 20,
		Shapes: []Shape{
			Box{Header: Header{ID: "b"}, Width: 40, Height: 20},
			Arrow{Header: Header{ID: "a"}, Segment: Segment{X1: 0, Y1: 10, X2: 100, Y2: 10}},
			Text{Header: Header{ID: "t", CreatedAt: 99}, X: 5, Y: 5, Text: "你好"},
		},
	}

	back, err := NewDocumentRecord(doc).Document()
	require.NoError(t, err)
	assert.Equal(t, doc, back)
}

func TestDocument_Count(t *testing.T) {
	doc := &Document{Shapes: []Shape{Box{}, Box{}, Line{}, Text{}}}
	counts := doc.Count()
	assert.Equal(t, 2, counts[KindBox])
	assert.Equal(t, 1, counts[KindLine])
	assert.Equal(t, 0, counts[KindArrow])
	assert.Equal(t, 1, counts[KindText])
}

func TestBounds_Extend(t *testing.T) {
	b := Bounds{Min: Point{2, 2}, Max: Point{2, 2}}
	b = b.Extend(Point{-1, 5})
	b = b.Extend(Point{4, 0})

	assert.Equal(t, Bounds{Min: Point{-1, 0}, Max: Point{4, 5}}, b)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
