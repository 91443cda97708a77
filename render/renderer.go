// Package render rasterizes sketch shapes onto a character grid.
//
// Rendering runs in a fixed order: boxes form the base layer, then lines
// and arrows, then text labels, each pass in input order. The overwrite
// policy of every write decides who wins an overlapping cell.
package render

import (
	"errors"
	"fmt"
	"log/slog"

	"asciisketch/canvas"
	"asciisketch/diagram"
)

// Margin is the number of blank cells kept around the drawing on every side.
const Margin = 2

// ErrCanvasTooLarge is returned when a render would exceed the cell budget.
var ErrCanvasTooLarge = errors.New("canvas too large")

// Layout describes the canvas a render allocates.
type Layout struct {
	// Origin is the grid cell drawn at canvas cell (0,0).
	Origin        diagram.Point
	Width, Height int
}

// Cells returns the number of cells the canvas holds.
func (l Layout) Cells() int {
	return l.Width * l.Height
}

// Measure computes the canvas layout for shapes without drawing anything.
// The second result is false when there is nothing to draw.
func Measure(shapes []diagram.Shape, cellSize int) (Layout, bool) {
	bounds, ok := ComputeBounds(shapes, ClampCellSize(cellSize))
	if !ok {
		return Layout{}, false
	}

	origin := diagram.Point{X: bounds.Min.X - Margin, Y: bounds.Min.Y - Margin}
	return Layout{
		Origin: origin,
		Width:  max(bounds.Max.X-origin.X+Margin+1, 1),
		Height: max(bounds.Max.Y-origin.Y+Margin+1, 1),
	}, true
}

// Render draws shapes onto a fresh canvas and returns it as text.
// An empty shape list renders as the empty string. Render keeps no state
// and is safe to call concurrently.
func Render(shapes []diagram.Shape, cellSize int) string {
	cellSize = ClampCellSize(cellSize)
	layout, ok := Measure(shapes, cellSize)
	if !ok {
		return ""
	}
	return draw(shapes, layout, cellSize)
}

func draw(shapes []diagram.Shape, layout Layout, cellSize int) string {
	c := canvas.NewMatrixCanvas(layout.Width, layout.Height)
	origin := layout.Origin

	for _, s := range shapes {
		if b, ok := s.(diagram.Box); ok {
			DrawBox(c, b, origin, cellSize)
		}
	}

	for _, s := range shapes {
		switch v := s.(type) {
		case diagram.Line:
			DrawLine(c, v, origin, cellSize)
		case diagram.Arrow:
			DrawArrow(c, v, origin, cellSize)
		}
	}

	for _, s := range shapes {
		if t, ok := s.(diagram.Text); ok {
			DrawText(c, t, origin, cellSize)
		}
	}

	return c.String()
}

// Renderer renders documents with a configured grid cell size and an
// optional cell budget.
type Renderer struct {
	cellSize int
	maxCells int // 0 means unlimited
	logger   *slog.Logger
}

// NewRenderer creates a renderer with the default grid cell size and no cell budget.
func NewRenderer() *Renderer {
	return &Renderer{
		cellSize: DefaultGridCellSize,
		logger:   slog.Default(),
	}
}

// SetGridCellSize sets the cell size used for documents that do not carry one.
func (r *Renderer) SetGridCellSize(size int) {
	r.cellSize = ClampCellSize(size)
}

// GridCellSize returns the configured cell size.
func (r *Renderer) GridCellSize() int {
	return r.cellSize
}

// SetMaxCells bounds the canvas size; renders above it fail with
// ErrCanvasTooLarge. Zero or less disables the check.
func (r *Renderer) SetMaxCells(n int) {
	r.maxCells = max(n, 0)
}

// SetLogger replaces the logger used for debug output.
func (r *Renderer) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	r.logger = logger
}

// Render draws shapes with the configured cell size.
func (r *Renderer) Render(shapes []diagram.Shape) (string, error) {
	return r.render(shapes, r.cellSize)
}

// RenderDocument draws d, preferring the document's own cell size when set.
// A zero document size means unset; negative sizes clamp to 1.
func (r *Renderer) RenderDocument(d *diagram.Document) (string, error) {
	if d == nil {
		return "", fmt.Errorf("document is nil")
	}
	cellSize := r.cellSize
	if d.GridCellSize != 0 {
		cellSize = ClampCellSize(d.GridCellSize)
	}
	return r.render(d.Shapes, cellSize)
}

func (r *Renderer) render(shapes []diagram.Shape, cellSize int) (string, error) {
	cellSize = ClampCellSize(cellSize)
	layout, ok := Measure(shapes, cellSize)
	if !ok {
		r.logger.Debug("nothing to render")
		return "", nil
	}

	// Compare by division; Width*Height can overflow for absurd coordinates.
	if r.maxCells > 0 && layout.Width > r.maxCells/layout.Height {
		return "", fmt.Errorf("%w: %dx%d cells exceeds budget of %d (grid cell size %d)",
			ErrCanvasTooLarge, layout.Width, layout.Height, r.maxCells, cellSize)
	}

	out := draw(shapes, layout, cellSize)
	r.logger.Debug("rendered sketch",
		slog.Int("shapes", len(shapes)),
		slog.Int("grid_cell_size", cellSize),
		slog.Int("width", layout.Width),
		slog.Int("height", layout.Height))
	return out, nil
}
