// Package render turns engine frames into pixels or terminal cells. Board
// coordinates have the origin at the centre and Y pointing up; screens have
// the origin top-left and Y pointing down.
package render

import (
	"math"

	"snake/internal/engine"
)

// Grid size in whole steps.
const (
	Columns = engine.BoardWidth / engine.StepSize
	Rows    = engine.BoardHeight / engine.StepSize
)

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Centre returns the screen point of p at the given scale.
func Centre(p engine.Position, scale float64) (x, y float64) {
	x = float64(p.X+engine.BoardWidth/2) * scale
	y = float64(engine.BoardHeight/2-p.Y) * scale
	return x, y
}

// Square returns the size x size square centred on p, scaled.
func Square(p engine.Position, size int, scale float64) Rect {
	cx, cy := Centre(p, scale)
	s := float64(size) * scale
	return Rect{X: cx - s/2, Y: cy - s/2, W: s, H: s}
}

// Cell returns the grid cell containing p, clamped to the board.
func Cell(p engine.Position) (col, row int) {
	x, y := Centre(p, 1)
	col = clamp(int(math.Floor(x/engine.StepSize)), 0, Columns-1)
	row = clamp(int(math.Floor(y/engine.StepSize)), 0, Rows-1)
	return col, row
}

// Fit returns the largest scale at which the board fits in w x h.
func Fit(w, h int) float64 {
	sx := float64(w) / engine.BoardWidth
	sy := float64(h) / engine.BoardHeight
	return math.Min(sx, sy)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
