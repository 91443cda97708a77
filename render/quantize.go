package render

import "math"

// DefaultGridCellSize is the number of length units per cell used when
// neither the caller nor the document specifies one.
const DefaultGridCellSize = 10

// ClampCellSize returns size, or 1 if size is below 1.
func ClampCellSize(size int) int {
	if size < 1 {
		return 1
	}
	return size
}

// ToCell maps a continuous coordinate to a cell index, rounding half away
// from zero. Non-finite coordinates map to 0.
func ToCell(v float64, cellSize int) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v / float64(ClampCellSize(cellSize))))
}

// toExtent quantizes a box extent; extents never drop below one cell.
func toExtent(v float64, cellSize int) int {
	return max(ToCell(v, cellSize), 1)
}
