package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"snake/internal/engine"
	"snake/internal/input"
	"snake/internal/logging"
	"snake/internal/render"
	"snake/internal/schedule"
)

var (
	debugFlag = flag.Bool("debug", false, "write a debug log under logs/")
	seedFlag  = flag.Uint64("seed", 0, "food placement seed, 0 seeds from the clock")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "snake-tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	log, closeLog, err := logging.Open(logging.DefaultDir, *debugFlag, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}

	// Restore the terminal before anything is printed about a crash.
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mSNAKE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()
	screen.HideCursor()

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Info("starting terminal, seed %d", seed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dirs := make(chan engine.Direction, 8)
	pause := make(chan bool)
	go pollEvents(ctx, cancel, screen, dirs, pause)

	loop := &schedule.Loop{
		Engine:   engine.NewSeeded(seed),
		Renderer: render.NewTerminal(screen),
		Input:    dirs,
		Pause:    pause,
		Log:      log,
	}
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("quit")
	return nil
}

// pollEvents feeds key presses to the loop until quit or ctx ends.
func pollEvents(ctx context.Context, quit context.CancelFunc, screen tcell.Screen, dirs chan<- engine.Direction, pause chan<- bool) {
	paused := false
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch input.TerminalAction(ev) {
			case input.Quit:
				quit()
				return
			case input.Pause:
				paused = !paused
				select {
				case pause <- paused:
				case <-ctx.Done():
					return
				}
				continue
			}

			if d, ok := input.Terminal(ev); ok {
				select {
				case dirs <- d:
				case <-ctx.Done():
					return
				}
			}

		case *tcell.EventResize:
			screen.Sync()
		}
	}
}
