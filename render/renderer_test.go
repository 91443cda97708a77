package render

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"asciisketch/diagram"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(x, y, w, h float64) diagram.Box {
	return diagram.Box{X: x, Y: y, Width: w, Height: h}
}

func line(x1, y1, x2, y2 float64) diagram.Line {
	return diagram.Line{Segment: diagram.Segment{X1: x1, Y1: y1, X2: x2, Y2: y2}}
}

func arrow(x1, y1, x2, y2 float64) diagram.Arrow {
	return diagram.Arrow{Segment: diagram.Segment{X1: x1, Y1: y1, X2: x2, Y2: y2}}
}

func text(x, y float64, s string) diagram.Text {
	return diagram.Text{X: x, Y: y, Text: s}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		shapes   []diagram.Shape
		cellSize int
		want     string
	}{
		{
			name:     "empty",
			shapes:   nil,
			cellSize: 10,
			want:     "",
		},
		{
			name:     "box is five by three cells",
			shapes:   []diagram.Shape{box(0, 0, 40, 20)},
			cellSize: 10,
			want: "\n\n" +
				"  +---+\n" +
				"  |   |\n" +
				"  +---+\n" +
				"\n",
		},
		{
			name:     "line ends in a joint",
			shapes:   []diagram.Shape{line(0, 0, 30, 0)},
			cellSize: 10,
			want:     "\n\n  ---+\n\n",
		},
		{
			name:     "arrow ends in a head",
			shapes:   []diagram.Shape{arrow(0, 0, 30, 0)},
			cellSize: 10,
			want:     "\n\n  --->\n\n",
		},
		{
			name:     "degenerate box",
			shapes:   []diagram.Shape{box(0, 0, 0, 0)},
			cellSize: 10,
			want:     "\n\n  ++\n  ++\n\n",
		},
		{
			name:     "coincident line endpoints",
			shapes:   []diagram.Shape{line(10, 10, 10, 10)},
			cellSize: 10,
			want:     "\n\n  +\n\n",
		},
		{
			name:     "coincident arrow endpoints",
			shapes:   []diagram.Shape{arrow(10, 10, 10, 10)},
			cellSize: 10,
			want:     "\n\n  >\n\n",
		},
		{
			name:     "empty text still reserves its anchor",
			shapes:   []diagram.Shape{text(0, 0, "")},
			cellSize: 10,
			want:     "\n\n\n\n",
		},
		{
			name:     "cell size below one is clamped",
			shapes:   []diagram.Shape{line(0, 0, 2, 0)},
			cellSize: 0,
			want:     "\n\n  --+\n\n",
		},
		{
			name:     "leading blanks kept on rows",
			shapes:   []diagram.Shape{text(0, 0, "a"), text(30, 10, "b")},
			cellSize: 10,
			want:     "\n\n  a\n     b\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.shapes, tt.cellSize))
		})
	}
}

func TestRender_ArrowHeadOverBoxBorder(t *testing.T) {
	shapes := []diagram.Shape{
		arrow(-50, 10, 0, 10),
		box(0, 0, 40, 20),
	}

	want := "\n\n" +
		"       +---+\n" +
		"  ----->   |\n" +
		"       +---+\n" +
		"\n"
	assert.Equal(t, want, Render(shapes, 10))
}

func TestRender_LineEndKeepsBoxBorder(t *testing.T) {
	shapes := []diagram.Shape{
		box(0, 0, 40, 20),
		line(-50, 10, 0, 10),
	}

	got := Render(shapes, 10)
	assert.Contains(t, got, "  -----|   |")
}

func TestRender_WideTextWidthMatchesBounds(t *testing.T) {
	narrow, ok := Measure([]diagram.Shape{text(0, 0, "A")}, 10)
	require.True(t, ok)
	wide, ok := Measure([]diagram.Shape{text(0, 0, "你")}, 10)
	require.True(t, ok)

	assert.Equal(t, 1, wide.Width-narrow.Width, "wide rune adds one extra column")

	// The label after a wide rune starts two cells later, and the last
	// drawn column is the last column the bounds reserved before the margin.
	out := Render([]diagram.Shape{text(0, 0, "你A")}, 10)
	rows := strings.Split(out, "\n")
	require.Len(t, rows, 5)
	assert.Equal(t, "  你 A", rows[2])

	layout, _ := Measure([]diagram.Shape{text(0, 0, "你A")}, 10)
	assert.Equal(t, 8, layout.Width)
}

// TestRender_PassOrder checks layering follows kind, not list position.
func TestRender_PassOrder(t *testing.T) {
	shapes := []diagram.Shape{
		text(10, 0, "hi"),
		line(0, 0, 50, 0),
		box(0, 0, 50, 20),
	}

	rows := strings.Split(Render(shapes, 10), "\n")
	require.Len(t, rows, 7)
	// Box top edge is drawn first, text lands on top of it, and the line
	// fills nothing because the border already holds every cell.
	assert.Equal(t, "  +hi--+", rows[2])
}

// TestRender_ListOrderWithinPass checks the first stroke in the list wins a crossing.
func TestRender_ListOrderWithinPass(t *testing.T) {
	vertical := line(20, 0, 20, 40)
	vertical.CreatedAt = 200
	horizontal := line(0, 20, 40, 20)
	horizontal.CreatedAt = 100

	first := strings.Split(Render([]diagram.Shape{vertical, horizontal}, 10), "\n")
	second := strings.Split(Render([]diagram.Shape{horizontal, vertical}, 10), "\n")

	assert.Equal(t, "  --|-+", first[4])
	assert.Equal(t, "  ----+", second[4])
}

func TestRender_Deterministic(t *testing.T) {
	shapes := []diagram.Shape{
		box(0, 0, 80, 40),
		arrow(80, 20, 160, 60),
		line(0, 60, 120, 0),
		text(10, 10, "label 你好"),
	}

	want := Render(shapes, 10)
	require.NotEmpty(t, want)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Render(shapes, 10)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, want, got, "render %d", i)
	}
}

func TestRender_RowsTrimmedButKept(t *testing.T) {
	out := Render([]diagram.Shape{box(0, 0, 40, 20), text(200, 80, "x")}, 10)
	rows := strings.Split(out, "\n")

	layout, _ := Measure([]diagram.Shape{box(0, 0, 40, 20), text(200, 80, "x")}, 10)
	assert.Len(t, rows, layout.Height)
	for i, row := range rows {
		assert.False(t, strings.HasSuffix(row, " "), "row %d has trailing blanks: %q", i, row)
	}
}

func TestRenderer_RenderDocument(t *testing.T) {
	r := NewRenderer()
	assert.Equal(t, DefaultGridCellSize, r.GridCellSize())

	doc := &diagram.Document{Shapes: []diagram.Shape{line(0, 0, 30, 0)}}
	out, err := r.RenderDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, "\n\n  ---+\n\n", out)

	doc.GridCellSize = 5
	out, err = r.RenderDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, "\n\n  ------+\n\n", out, "document cell size wins")

	// Negative sizes clamp to one unit per cell, same as the pure Render.
	doc.GridCellSize = -3
	doc.Shapes = []diagram.Shape{line(0, 0, 3, 0)}
	out, err = r.RenderDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, "\n\n  ---+\n\n", out)
	assert.Equal(t, Render(doc.Shapes, -3), out)

	r.SetGridCellSize(-4)
	assert.Equal(t, 1, r.GridCellSize())

	_, err = r.RenderDocument(nil)
	assert.Error(t, err)
}

func TestRenderer_Empty(t *testing.T) {
	out, err := NewRenderer().Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestRenderer_MaxCells(t *testing.T) {
	r := NewRenderer()
	r.SetMaxCells(50)

	_, err := r.Render([]diagram.Shape{box(0, 0, 40, 20)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCanvasTooLarge))
	assert.Contains(t, err.Error(), "9x7")

	r.SetMaxCells(63)
	out, err := r.Render([]diagram.Shape{box(0, 0, 40, 20)})
	require.NoError(t, err)
	assert.Equal(t, Render([]diagram.Shape{box(0, 0, 40, 20)}, 10), out)

	r.SetMaxCells(0)
	_, err = r.Render([]diagram.Shape{line(0, 0, 1e6, 0)})
	assert.NoError(t, err, "no budget means no limit")
}

func ExampleRender() {
	shapes := []diagram.Shape{
		diagram.Box{X: 0, Y: 0, Width: 60, Height: 20},
		diagram.Text{X: 10, Y: 10, Text: "api"},
		diagram.Arrow{Segment: diagram.Segment{X1: 60, Y1: 10, X2: 100, Y2: 10}},
	}
	fmt.Println(strings.TrimRight(Render(shapes, 10), "\n"))
	// Output:
	//
	//
	//   +-----+
	//   |api  |--->
	//   +-----+
}
