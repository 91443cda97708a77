// Package preview shows a rendered sketch in a scrollable terminal viewer.
package preview

import (
	"fmt"
	"strings"

	"asciisketch/canvas"

	"github.com/gdamore/tcell/v2"
)

const statusHelp = "q quit  arrows scroll"

var (
	textStyle   = tcell.StyleDefault
	statusStyle = tcell.StyleDefault.Reverse(true)
)

// Viewer holds a rendered sketch and the current scroll position.
type Viewer struct {
	rows    [][]rune
	width   int // widest row in cells
	offsetX int
	offsetY int
	// viewport size, refreshed on every Draw
	viewW, viewH int
}

// NewViewer creates a viewer for rendered text.
func NewViewer(text string) *Viewer {
	v := &Viewer{}
	if text != "" {
		for _, line := range strings.Split(text, "\n") {
			row := []rune(line)
			v.rows = append(v.rows, row)
			v.width = max(v.width, len(row))
		}
	}
	return v
}

// Offset returns the grid cell shown at the top-left of the screen.
func (v *Viewer) Offset() (x, y int) {
	return v.offsetX, v.offsetY
}

// Draw paints the visible part of the sketch and a status line.
func (v *Viewer) Draw(s tcell.Screen) {
	s.Clear()
	w, h := s.Size()
	v.viewW, v.viewH = w, max(h-1, 0)
	v.clamp()

	for y := 0; y < v.viewH && v.offsetY+y < len(v.rows); y++ {
		row := v.rows[v.offsetY+y]
		for x := 0; x < w && v.offsetX+x < len(row); x++ {
			r := row[v.offsetX+x]
			s.SetContent(x, y, r, nil, textStyle)
			// A wide rune's right half covers the blank that follows it.
			if canvas.UnicodeWidth(r) == 2 && v.offsetX+x+1 < len(row) && row[v.offsetX+x+1] == canvas.Blank {
				x++
			}
		}
	}

	if h > 0 {
		status := fmt.Sprintf("%s  rows %d-%d of %d", statusHelp,
			min(v.offsetY+1, len(v.rows)), min(v.offsetY+v.viewH, len(v.rows)), len(v.rows))
		for x, r := range []rune(canvas.TruncateToWidth(status, w)) {
			s.SetContent(x, h-1, r, nil, statusStyle)
		}
	}
}

// HandleEvent applies a terminal event and reports whether the viewer
// should close.
func (v *Viewer) HandleEvent(ev tcell.Event) (quit bool) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}

	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		if key.Rune() == 'q' || key.Rune() == 'Q' {
			return true
		}
	case tcell.KeyUp:
		v.offsetY--
	case tcell.KeyDown:
		v.offsetY++
	case tcell.KeyLeft:
		v.offsetX--
	case tcell.KeyRight:
		v.offsetX++
	case tcell.KeyPgUp:
		v.offsetY -= max(v.viewH-1, 1)
	case tcell.KeyPgDn:
		v.offsetY += max(v.viewH-1, 1)
	case tcell.KeyHome:
		v.offsetX, v.offsetY = 0, 0
	case tcell.KeyEnd:
		v.offsetY = len(v.rows)
	}
	v.clamp()
	return false
}

// clamp keeps the offsets inside the scrollable area.
func (v *Viewer) clamp() {
	v.offsetY = min(v.offsetY, max(len(v.rows)-v.viewH, 0))
	v.offsetX = min(v.offsetX, max(v.width-v.viewW, 0))
	v.offsetY = max(v.offsetY, 0)
	v.offsetX = max(v.offsetX, 0)
}

// Show runs the viewer on an initialized screen until the user quits.
// The caller owns the screen and finalizes it afterwards.
func Show(s tcell.Screen, text string) error {
	if s == nil {
		return fmt.Errorf("preview: no screen")
	}
	s.SetStyle(textStyle)
	s.HideCursor()

	v := NewViewer(text)
	for {
		v.Draw(s)
		s.Show()

		ev := s.PollEvent()
		if ev == nil {
			return nil // screen finalized
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			s.Sync()
			continue
		}
		if v.HandleEvent(ev) {
			return nil
		}
	}
}

// Run opens the terminal, shows text and restores the terminal on return.
func Run(text string) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer s.Fini()

	return Show(s, text)
}
