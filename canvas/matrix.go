package canvas

import (
	"strings"
	"unicode"

	"asciisketch/diagram"
)

// Blank is the rune an empty cell holds.
const Blank = ' '

// MatrixCanvas implements a rune matrix-based canvas.
//
// A MatrixCanvas belongs to a single render call and is NOT thread-safe.
//
// Coordinate System:
//   - Origin (0,0) is top-left
//   - X increases rightward
//   - Y increases downward
//   - All coordinates are in character cells
//
// Overwrite policy:
//   - Set with overwrite always replaces the cell
//   - Set without overwrite only fills a blank cell, so earlier strokes win
type MatrixCanvas struct {
	matrix [][]rune
	width  int
	height int
}

// NewMatrixCanvas creates a new canvas with the specified dimensions.
// It returns nil when either dimension is not positive.
func NewMatrixCanvas(width, height int) *MatrixCanvas {
	if width <= 0 || height <= 0 {
		return nil
	}

	// One backing array, sliced per row.
	cells := make([]rune, width*height)
	for i := range cells {
		cells[i] = Blank
	}
	matrix := make([][]rune, height)
	for y := 0; y < height; y++ {
		matrix[y] = cells[y*width : (y+1)*width : (y+1)*width]
	}

	return &MatrixCanvas{
		matrix: matrix,
		width:  width,
		height: height,
	}
}

// Size returns the width and height of the canvas.
func (c *MatrixCanvas) Size() (width, height int) {
	return c.width, c.height
}

// Matrix returns direct access to the underlying rune matrix.
func (c *MatrixCanvas) Matrix() [][]rune {
	return c.matrix
}

// Get returns the character at the given position.
// Returns ' ' (space) if position is out of bounds.
func (c *MatrixCanvas) Get(p diagram.Point) rune {
	if !c.inBounds(p) {
		return Blank
	}
	return c.matrix[p.Y][p.X]
}

// Set places a character at the given position.
// Out-of-bounds writes are dropped silently.
func (c *MatrixCanvas) Set(p diagram.Point, char rune, overwrite bool) {
	if !c.inBounds(p) {
		return
	}
	if !overwrite && c.matrix[p.Y][p.X] != Blank {
		return
	}
	c.matrix[p.Y][p.X] = char
}

// Clear resets the canvas to all blanks.
func (c *MatrixCanvas) Clear() {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			c.matrix[y][x] = Blank
		}
	}
}

// String returns the canvas rows joined by newlines. Each row drops its
// trailing blanks; leading and inner blanks and blank rows are kept.
// Control runes are written as blanks so a row never breaks or tabs.
func (c *MatrixCanvas) String() string {
	var sb strings.Builder
	sb.Grow(c.height * (c.width + 1))

	for y := 0; y < c.height; y++ {
		row := c.matrix[y]
		end := len(row)
		for end > 0 && isBlank(row[end-1]) {
			end--
		}
		for _, r := range row[:end] {
			if isBlank(r) {
				r = Blank
			}
			sb.WriteRune(r)
		}
		if y < c.height-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// isBlank reports whether r serializes as an empty cell.
func isBlank(r rune) bool {
	return r == Blank || unicode.IsControl(r)
}

func (c *MatrixCanvas) inBounds(p diagram.Point) bool {
	return p.X >= 0 && p.X < c.width && p.Y >= 0 && p.Y < c.height
}
