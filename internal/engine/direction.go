package engine

import "github.com/pkg/errors"

// ErrUnknownDirection is returned by ParseDirection for anything other than
// "up", "down", "left" or "right".
var ErrUnknownDirection = errors.New("unknown direction")

// Position is a point on the board. The origin is the board centre and Y
// grows upwards.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by o.
func (p Position) Add(o Position) Position {
	return Position{p.X + o.X, p.Y + o.Y}
}

type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionNames = [...]string{
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

func (d Direction) Valid() bool {
	return d <= Right
}

func (d Direction) String() string {
	if !d.Valid() {
		return "unknown"
	}
	return directionNames[d]
}

// Opposite returns the direction that would fold the head back onto the
// second segment.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Offset is the per-tick movement for d, one StepSize along a single axis.
func (d Direction) Offset() Position {
	switch d {
	case Up:
		return Position{0, StepSize}
	case Down:
		return Position{0, -StepSize}
	case Left:
		return Position{-StepSize, 0}
	case Right:
		return Position{StepSize, 0}
	}
	return Position{}
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, ErrUnknownDirection
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection resolves a named direction request.
func ParseDirection(name string) (Direction, error) {
	for d, n := range directionNames {
		if n == name {
			return Direction(d), nil
		}
	}
	return 0, ErrUnknownDirection
}
