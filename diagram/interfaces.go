package diagram

// Canvas represents a 2D character grid for drawing.
type Canvas interface {
	// Size returns the width and height of the grid.
	Size() (width, height int)

	// Get returns the character at the given position.
	// Returns ' ' (space) if position is out of bounds.
	Get(p Point) rune

	// Set places a character at the given position. Writes outside the grid
	// are dropped. Without overwrite the cell is only written when blank.
	Set(p Point, char rune, overwrite bool)

	// String returns the grid as text, one line per row.
	String() string
}
