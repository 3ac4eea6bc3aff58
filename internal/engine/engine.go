// Package engine holds the snake simulation: one Engine owns the body, the
// heading and the food, and advances them one step per Tick.
package engine

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
)

const (
	BoardWidth    = 500
	BoardHeight   = 500
	FoodSize      = 10
	StepSize      = 20
	InitialLength = 5
	TickDelay     = 100 * time.Millisecond
)

// RandomSource supplies food coordinates. Intn returns a value in [0, n).
type RandomSource interface {
	Intn(n int) int
}

// Frame is what a renderer draws after a tick. It owns its slice.
type Frame struct {
	Snake     []Position `json:"snake"`
	Food      Position   `json:"food"`
	Direction Direction  `json:"direction"`
	Round     int        `json:"round"`
	Ate       bool       `json:"ate"`
	Collided  bool       `json:"collided"`
}

// Head returns the most recently added segment.
func (f Frame) Head() Position {
	return f.Snake[len(f.Snake)-1]
}

// Step is the result of a tick: the frame to draw and how long the host
// should wait before calling Tick again.
type Step struct {
	Frame Frame
	Next  time.Duration
}

// Engine is not safe for concurrent use. Hosts serialize Tick and the
// direction setters on a single goroutine.
type Engine struct {
	rng RandomSource

	snake     []Position // tail first, head last
	direction Direction
	food      Position

	round int
	last  Frame
}

// New creates an engine and starts the first round.
func New(rng RandomSource) *Engine {
	e := &Engine{rng: rng}
	e.Reset()
	return e
}

// NewSeeded is New with a PCG source from golang.org/x/exp/rand.
func NewSeeded(seed uint64) *Engine {
	return New(rand.New(rand.NewSource(seed)))
}

// Reset puts a fresh vertical snake at the origin heading up, places new
// food and performs the first tick of the round.
func (e *Engine) Reset() Step {
	e.snake = make([]Position, InitialLength)
	for i := range e.snake {
		e.snake[i] = Position{0, i * StepSize}
	}
	e.direction = Up
	e.food = e.randomFood()
	e.round++
	return e.Tick()
}

// Tick advances the snake by one step.
func (e *Engine) Tick() Step {
	newHead := e.head().Add(e.direction.Offset())

	// The tail slot is vacated this step, so stepping onto it is allowed.
	if e.bites(newHead) {
		step := e.Reset()
		step.Frame.Collided = true
		e.last.Collided = true
		return step
	}

	e.snake = append(e.snake, newHead)

	ate := e.eat(newHead)
	if !ate {
		e.snake = e.snake[1:]
	}

	last := len(e.snake) - 1
	e.snake[last] = wrap(e.snake[last])

	e.last = e.frame(ate)
	return Step{Frame: e.last, Next: TickDelay}
}

// SetDirection changes heading unless d would reverse the snake onto itself.
func (e *Engine) SetDirection(d Direction) {
	if !d.Valid() || d == e.direction.Opposite() {
		return
	}
	e.direction = d
}

func (e *Engine) Up()    { e.SetDirection(Up) }
func (e *Engine) Down()  { e.SetDirection(Down) }
func (e *Engine) Left()  { e.SetDirection(Left) }
func (e *Engine) Right() { e.SetDirection(Right) }

func (e *Engine) Direction() Direction {
	return e.direction
}

// Snapshot returns the frame produced by the most recent tick.
func (e *Engine) Snapshot() Frame {
	return e.last
}

func (e *Engine) head() Position {
	return e.snake[len(e.snake)-1]
}

func (e *Engine) bites(p Position) bool {
	for _, s := range e.snake[1:] {
		if s == p {
			return true
		}
	}
	return false
}

// eat relocates the food when p is within one step of it.
func (e *Engine) eat(p Position) bool {
	if distance(p, e.food) >= StepSize {
		return false
	}
	e.food = e.randomFood()
	return true
}

func (e *Engine) randomFood() Position {
	return Position{
		X: -BoardWidth/2 + FoodSize + e.rng.Intn(BoardWidth-2*FoodSize+1),
		Y: -BoardHeight/2 + FoodSize + e.rng.Intn(BoardHeight-2*FoodSize+1),
	}
}

func (e *Engine) frame(ate bool) Frame {
	snake := make([]Position, len(e.snake))
	copy(snake, e.snake)
	return Frame{
		Snake:     snake,
		Food:      e.food,
		Direction: e.direction,
		Round:     e.round,
		Ate:       ate,
	}
}

func distance(a, b Position) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}

// wrap moves a position that left the board back in from the opposite edge.
func wrap(p Position) Position {
	switch {
	case p.X > BoardWidth/2:
		p.X -= BoardWidth
	case p.X < -BoardWidth/2:
		p.X += BoardWidth
	}
	switch {
	case p.Y > BoardHeight/2:
		p.Y -= BoardHeight
	case p.Y < -BoardHeight/2:
		p.Y += BoardHeight
	}
	return p
}
