// Package canvas provides the character grid the renderer draws onto, and the
// display-width table used to lay text out on it.
package canvas

import "asciisketch/diagram"

var _ diagram.Canvas = (*MatrixCanvas)(nil)
