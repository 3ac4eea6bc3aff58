package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"snake/internal/engine"
)

// Each board cell is two terminal columns wide so squares look square.
const cellWidth = 2

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	bodyStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	headStyle   = tcell.StyleDefault.Foreground(tcell.ColorLightGreen).Bold(true)
	foodStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Terminal draws frames onto a tcell screen inside a bordered box.
type Terminal struct {
	screen tcell.Screen
}

func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Draw clears the screen and stamps the food, every segment and a status
// line. Nothing is carried over from the previous frame.
func (t *Terminal) Draw(f engine.Frame) {
	t.screen.Clear()
	t.drawBorder()

	col, row := Cell(f.Food)
	t.stamp(col, row, '▪', foodStyle)

	for i, seg := range f.Snake {
		style := bodyStyle
		if i == len(f.Snake)-1 {
			style = headStyle
		}
		col, row := Cell(seg)
		t.stamp(col, row, '█', style)
	}

	status := fmt.Sprintf(" length %d  round %d  heading %s  [arrows/wasd move, p pause, q quit]",
		len(f.Snake), f.Round, f.Direction)
	t.text(0, Rows+2, status, statusStyle)

	t.screen.Show()
}

// stamp fills one board cell. The border occupies row 0 and column 0.
func (t *Terminal) stamp(col, row int, r rune, style tcell.Style) {
	x := 1 + col*cellWidth
	y := 1 + row
	for i := 0; i < cellWidth; i++ {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (t *Terminal) drawBorder() {
	right := 1 + Columns*cellWidth
	bottom := 1 + Rows
	for x := 1; x < right; x++ {
		t.screen.SetContent(x, 0, '─', nil, borderStyle)
		t.screen.SetContent(x, bottom, '─', nil, borderStyle)
	}
	for y := 1; y < bottom; y++ {
		t.screen.SetContent(0, y, '│', nil, borderStyle)
		t.screen.SetContent(right, y, '│', nil, borderStyle)
	}
	t.screen.SetContent(0, 0, '┌', nil, borderStyle)
	t.screen.SetContent(right, 0, '┐', nil, borderStyle)
	t.screen.SetContent(0, bottom, '└', nil, borderStyle)
	t.screen.SetContent(right, bottom, '┘', nil, borderStyle)
}

func (t *Terminal) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
