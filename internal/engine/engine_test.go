package engine

import (
	"slices"
	"testing"

	"golang.org/x/exp/rand"
)

// fixedRand always answers v, clamped into range. With 0 the food lands in
// the bottom-left corner, far from the starting snake.
type fixedRand int

func (f fixedRand) Intn(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

func newTestEngine(snake []Position, d Direction, food Position) *Engine {
	e := New(fixedRand(0))
	e.snake = slices.Clone(snake)
	e.direction = d
	e.food = food
	return e
}

var farFood = Position{-240, -240}

func canonicalFirstFrame() []Position {
	return []Position{{0, 20}, {0, 40}, {0, 60}, {0, 80}, {0, 100}}
}

func TestNew_StartsMovingUp(t *testing.T) {
	e := New(fixedRand(0))
	f := e.Snapshot()

	if !slices.Equal(f.Snake, canonicalFirstFrame()) {
		t.Errorf("Expected snake %v after reset, got %v", canonicalFirstFrame(), f.Snake)
	}
	if f.Direction != Up {
		t.Errorf("Expected direction up, got %v", f.Direction)
	}
	if f.Food != farFood {
		t.Errorf("Expected food at %v, got %v", farFood, f.Food)
	}
	if f.Round != 1 {
		t.Errorf("Expected round 1, got %d", f.Round)
	}
}

func TestTick_FirstStepScenario(t *testing.T) {
	start := []Position{{0, 0}, {0, 20}, {0, 40}, {0, 60}, {0, 80}}
	e := newTestEngine(start, Up, farFood)

	step := e.Tick()

	if !slices.Equal(step.Frame.Snake, canonicalFirstFrame()) {
		t.Errorf("Expected %v, got %v", canonicalFirstFrame(), step.Frame.Snake)
	}
	if step.Next != TickDelay {
		t.Errorf("Expected next tick in %v, got %v", TickDelay, step.Next)
	}
	if step.Frame.Ate || step.Frame.Collided {
		t.Errorf("Expected plain move, got ate=%v collided=%v", step.Frame.Ate, step.Frame.Collided)
	}
}

func TestTick_Food(t *testing.T) {
	start := []Position{{0, 0}, {0, 20}, {0, 40}, {0, 60}, {0, 80}}

	tests := []struct {
		name    string
		food    Position
		wantAte bool
	}{
		{"exact overlap", Position{0, 100}, true},
		{"within tolerance", Position{10, 110}, true},
		{"one step away", Position{0, 120}, false},
		{"far", farFood, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(start, Up, tt.food)
			step := e.Tick()

			if step.Frame.Ate != tt.wantAte {
				t.Fatalf("Expected ate=%v, got %v", tt.wantAte, step.Frame.Ate)
			}
			wantLen := len(start)
			if tt.wantAte {
				wantLen++
			}
			if len(step.Frame.Snake) != wantLen {
				t.Errorf("Expected length %d, got %d", wantLen, len(step.Frame.Snake))
			}
			if tt.wantAte {
				if step.Frame.Food == tt.food {
					t.Errorf("Expected food to move away from %v", tt.food)
				}
				if step.Frame.Snake[0] != (Position{0, 0}) {
					t.Errorf("Expected tail to stay at origin, got %v", step.Frame.Snake[0])
				}
			} else if step.Frame.Food != tt.food {
				t.Errorf("Expected food to stay at %v, got %v", tt.food, step.Frame.Food)
			}
		})
	}
}

func TestTick_Wraps(t *testing.T) {
	tests := []struct {
		name  string
		snake []Position
		dir   Direction
		want  Position
	}{
		{"right edge", []Position{{200, 0}, {220, 0}, {240, 0}}, Right, Position{-240, 0}},
		{"left edge", []Position{{-200, 0}, {-220, 0}, {-240, 0}}, Left, Position{240, 0}},
		{"top edge", []Position{{0, 200}, {0, 220}, {0, 240}}, Up, Position{0, -240}},
		{"bottom edge", []Position{{0, -200}, {0, -220}, {0, -240}}, Down, Position{0, 240}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(tt.snake, tt.dir, Position{100, 100})
			f := e.Tick().Frame
			if got := f.Head(); got != tt.want {
				t.Errorf("Expected head %v, got %v", tt.want, got)
			}
			if len(f.Snake) != len(tt.snake) {
				t.Errorf("Expected length %d, got %d", len(tt.snake), len(f.Snake))
			}
		})
	}
}

func TestTick_SelfCollisionResets(t *testing.T) {
	// Heading down from (20,20) lands on (20,0), the second segment.
	snake := []Position{{40, 0}, {20, 0}, {0, 0}, {0, 20}, {20, 20}}
	e := newTestEngine(snake, Down, Position{100, 100})
	e.round = 3

	step := e.Tick()

	if !step.Frame.Collided {
		t.Fatal("Expected collision")
	}
	if !slices.Equal(step.Frame.Snake, canonicalFirstFrame()) {
		t.Errorf("Expected fresh snake %v, got %v", canonicalFirstFrame(), step.Frame.Snake)
	}
	if step.Frame.Food == (Position{100, 100}) {
		t.Error("Expected food to be resampled")
	}
	if step.Frame.Direction != Up {
		t.Errorf("Expected direction reset to up, got %v", step.Frame.Direction)
	}
	if step.Frame.Round != 4 {
		t.Errorf("Expected round 4, got %d", step.Frame.Round)
	}
	if step.Next != TickDelay {
		t.Errorf("Expected next tick in %v, got %v", TickDelay, step.Next)
	}
	if !e.Snapshot().Collided {
		t.Error("Expected snapshot to carry the collision flag")
	}

	if next := e.Tick(); next.Frame.Collided {
		t.Error("Expected collision flag to clear on the following tick")
	}
}

func TestTick_TailCellIsFree(t *testing.T) {
	// A 2x2 loop: heading down from (0,20) lands on the tail at (0,0).
	snake := []Position{{0, 0}, {20, 0}, {20, 20}, {0, 20}}
	e := newTestEngine(snake, Down, farFood)

	f := e.Tick().Frame

	if f.Collided {
		t.Fatal("Expected no collision when entering the vacating tail cell")
	}
	want := []Position{{20, 0}, {20, 20}, {0, 20}, {0, 0}}
	if !slices.Equal(f.Snake, want) {
		t.Errorf("Expected %v, got %v", want, f.Snake)
	}
}

func TestSetDirection_NoReversal(t *testing.T) {
	tests := []struct {
		current, requested, want Direction
	}{
		{Up, Down, Up},
		{Down, Up, Down},
		{Left, Right, Left},
		{Right, Left, Right},
		{Up, Left, Left},
		{Up, Right, Right},
		{Left, Up, Up},
		{Left, Down, Down},
		{Up, Up, Up},
	}

	for _, tt := range tests {
		e := newTestEngine(canonicalFirstFrame(), tt.current, farFood)
		e.SetDirection(tt.requested)
		if got := e.Direction(); got != tt.want {
			t.Errorf("%v then %v: expected %v, got %v", tt.current, tt.requested, tt.want, got)
		}
	}
}

func TestSetDirection_Setters(t *testing.T) {
	e := New(fixedRand(0))

	e.Down() // reversal while heading up
	if e.Direction() != Up {
		t.Fatalf("Expected up, got %v", e.Direction())
	}
	e.Left()
	e.Right()
	if e.Direction() != Left {
		t.Fatalf("Expected left, got %v", e.Direction())
	}
	e.Down()
	e.Up()
	if e.Direction() != Down {
		t.Fatalf("Expected down, got %v", e.Direction())
	}
	e.SetDirection(Direction(42))
	if e.Direction() != Down {
		t.Errorf("Expected invalid direction to be ignored, got %v", e.Direction())
	}
}

func TestRandomFood_Bounds(t *testing.T) {
	low := newTestEngine(canonicalFirstFrame(), Up, farFood).randomFood()
	if low != (Position{-240, -240}) {
		t.Errorf("Expected lowest food %v, got %v", Position{-240, -240}, low)
	}

	e := New(fixedRand(1 << 30))
	if high := e.randomFood(); high != (Position{240, 240}) {
		t.Errorf("Expected highest food %v, got %v", Position{240, 240}, high)
	}
}

func TestFoodRelocation_Statistical(t *testing.T) {
	start := []Position{{0, 0}, {0, 20}, {0, 40}, {0, 60}, {0, 80}}
	eaten := Position{0, 100}
	e := NewSeeded(7)
	same := 0

	for i := 0; i < 200; i++ {
		e.snake = slices.Clone(start)
		e.direction = Up
		e.food = eaten

		f := e.Tick().Frame
		if !f.Ate {
			t.Fatalf("Trial %d: expected food at %v to be eaten", i, eaten)
		}
		if f.Food.X < -BoardWidth/2+FoodSize || f.Food.X > BoardWidth/2-FoodSize ||
			f.Food.Y < -BoardHeight/2+FoodSize || f.Food.Y > BoardHeight/2-FoodSize {
			t.Fatalf("Trial %d: food %v out of bounds", i, f.Food)
		}
		if f.Food == eaten {
			same++
		}
	}

	if same > 2 {
		t.Errorf("Expected relocated food to differ almost always, %d of 200 were unchanged", same)
	}
}

func TestTick_StaysOnGrid(t *testing.T) {
	e := NewSeeded(42)
	steer := rand.New(rand.NewSource(99))

	for i := 0; i < 5000; i++ {
		if steer.Intn(4) == 0 {
			e.SetDirection(Direction(steer.Intn(4)))
		}
		before := len(e.Snapshot().Snake)
		f := e.Tick().Frame

		want := before
		if f.Collided {
			want = InitialLength
		}
		if f.Ate {
			want++
		}
		if len(f.Snake) != want {
			t.Fatalf("Tick %d: expected length %d, got %d (ate=%v collided=%v)",
				i, want, len(f.Snake), f.Ate, f.Collided)
		}

		for _, p := range f.Snake {
			if p.X < -BoardWidth/2 || p.X > BoardWidth/2 || p.Y < -BoardHeight/2 || p.Y > BoardHeight/2 {
				t.Fatalf("Tick %d: segment %v off the board", i, p)
			}
			if p.X%StepSize != 0 || p.Y%StepSize != 0 {
				t.Fatalf("Tick %d: segment %v not aligned to step", i, p)
			}
		}
	}
}
