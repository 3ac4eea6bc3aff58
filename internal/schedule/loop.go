package schedule

import (
	"context"
	"time"

	"snake/internal/engine"
	"snake/internal/logging"
)

// Renderer receives every frame the loop produces.
type Renderer interface {
	Draw(engine.Frame)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(engine.Frame)

func (f RendererFunc) Draw(frame engine.Frame) { f(frame) }

// Loop drives an engine from a single goroutine. Ticks, direction requests
// and cancellation are all handled in one select, so the engine never sees
// concurrent calls.
type Loop struct {
	Engine   *engine.Engine
	Renderer Renderer
	Input    <-chan engine.Direction
	Log      *logging.Logger

	// Pause holds ticks while true is received and resumes them on false.
	Pause <-chan bool

	// After arms the one-shot timer. Defaults to time.After.
	After func(time.Duration) <-chan time.Time
}

// Run draws the current frame and then ticks until ctx is done. The timer is
// re-armed only after a tick has finished, with the delay that tick returned.
func (l *Loop) Run(ctx context.Context) error {
	after := l.After
	if after == nil {
		after = time.After
	}
	input := l.Input
	paused := false

	l.Renderer.Draw(l.Engine.Snapshot())
	fire := after(engine.TickDelay)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case d, ok := <-input:
			if !ok {
				input = nil
				continue
			}
			l.Engine.SetDirection(d)

		case p := <-l.Pause:
			switch {
			case p && !paused:
				fire = nil
			case !p && paused:
				fire = after(engine.TickDelay)
			}
			paused = p

		case <-fire:
			step := l.Engine.Tick()
			if step.Frame.Collided && l.Log != nil {
				l.Log.Event("RESET", step.Frame.Round, "snake bit itself")
			}
			l.Renderer.Draw(step.Frame)
			fire = after(step.Next)
		}
	}
}
