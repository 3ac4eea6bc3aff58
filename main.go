package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"

	"snake/internal/engine"
	"snake/internal/logging"
	"snake/internal/render"
	"snake/internal/schedule"
)

const (
	windowWidth  = 700
	windowHeight = 700
	bodyScale    = 0.9
)

var (
	debugFlag = flag.Bool("debug", false, "write a debug log under logs/")
	seedFlag  = flag.Uint64("seed", 0, "food placement seed, 0 seeds from the clock")
)

var (
	bgColor   = color.RGBA{24, 24, 28, 255}
	gridColor = color.RGBA{40, 40, 48, 255}
	headColor = color.RGBA{80, 220, 120, 255}
	bodyColor = color.RGBA{60, 180, 100, 255}
	foodColor = color.RGBA{230, 200, 70, 255}
)

var directionKeys = []struct {
	dir  engine.Direction
	keys []ebiten.Key
}{
	{engine.Up, []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}},
	{engine.Down, []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}},
	{engine.Left, []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
	{engine.Right, []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
}

type Game struct {
	engine *engine.Engine
	clock  *schedule.Accumulator
	frame  engine.Frame
	log    *logging.Logger

	scaleFactor  float64
	isFullscreen bool
}

func NewGame(eng *engine.Engine, log *logging.Logger) *Game {
	return &Game{
		engine:      eng,
		clock:       schedule.NewAccumulator(engine.TickDelay),
		frame:       eng.Snapshot(),
		log:         log,
		scaleFactor: 1.0,
	}
}

func (g *Game) Update() error {
	// Toggle full-screen/maximized with F key
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.isFullscreen = !g.isFullscreen
		if g.isFullscreen {
			ebiten.MaximizeWindow()
		} else {
			ebiten.RestoreWindow()
			ebiten.SetWindowSize(windowWidth, windowHeight)
		}
	}

	// Exit full-screen/maximized with Esc key
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.isFullscreen {
		g.isFullscreen = false
		ebiten.RestoreWindow()
		ebiten.SetWindowSize(windowWidth, windowHeight)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.clock.SetPaused(!g.clock.Paused())
	}

	for _, binding := range directionKeys {
		for _, k := range binding.keys {
			if inpututil.IsKeyJustPressed(k) {
				g.engine.SetDirection(binding.dir)
			}
		}
	}

	if !g.clock.Advance(time.Second / time.Duration(ebiten.TPS())) {
		return nil
	}

	step := g.engine.Tick()
	if step.Frame.Collided {
		g.log.Event("RESET", step.Frame.Round, "snake bit itself")
	}
	g.frame = step.Frame
	g.clock.Arm(step.Next)
	return nil
}

func (g *Game) drawSquare(screen *ebiten.Image, p engine.Position, size float64, c color.Color) {
	r := render.Square(p, engine.StepSize, g.scaleFactor)
	inset := r.W * (1 - size) / 2
	ebitenutil.DrawRect(screen, r.X+inset, r.Y+inset, r.W-2*inset, r.H-2*inset, c)
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Every frame is drawn from scratch.
	screen.Fill(bgColor)

	boardW := float64(engine.BoardWidth) * g.scaleFactor
	boardH := float64(engine.BoardHeight) * g.scaleFactor
	cell := float64(engine.StepSize) * g.scaleFactor
	for x := 0; x <= render.Columns; x++ {
		ebitenutil.DrawRect(screen, float64(x)*cell, 0, g.scaleFactor, boardH, gridColor)
	}
	for y := 0; y <= render.Rows; y++ {
		ebitenutil.DrawRect(screen, 0, float64(y)*cell, boardW, g.scaleFactor, gridColor)
	}

	food := render.Square(g.frame.Food, engine.FoodSize, g.scaleFactor)
	ebitenutil.DrawRect(screen, food.X, food.Y, food.W, food.H, foodColor)

	for i, s := range g.frame.Snake {
		if i == len(g.frame.Snake)-1 {
			g.drawSquare(screen, s, 1.0, headColor)
		} else {
			g.drawSquare(screen, s, bodyScale, bodyColor)
		}
	}

	lines := []string{
		fmt.Sprintf("Length: %d | Round: %d", len(g.frame.Snake), g.frame.Round),
		"Arrow/WASD (Move), P (Pause), F (Maximize), Esc (Restore)",
	}
	if g.clock.Paused() {
		lines = append(lines, "Paused - Press P to Resume")
	}

	padding := 10.0 * g.scaleFactor
	lineHeight := 20.0 * g.scaleFactor
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(padding), int(padding+float64(i)*lineHeight))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	g.isFullscreen = ebiten.IsWindowMaximized()
	g.scaleFactor = render.Fit(outsideWidth, outsideHeight)
	return int(float64(engine.BoardWidth) * g.scaleFactor), int(float64(engine.BoardHeight) * g.scaleFactor)
}

func run() error {
	log, closeLog, err := logging.Open(logging.DefaultDir, *debugFlag, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Info("starting window, seed %d", seed)

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Snake - Go + Ebiten")
	ebiten.SetWindowResizable(true)
	if err := ebiten.RunGame(NewGame(engine.NewSeeded(seed), log)); err != nil {
		log.Error("game stopped: %v", err)
		return errors.Wrap(err, "run game")
	}
	return nil
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		os.Exit(1)
	}
}
