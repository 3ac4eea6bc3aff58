package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"snake/internal/engine"
	"snake/internal/logging"
	"snake/internal/schedule"
	"snake/internal/spectate"
)

var (
	addrFlag  = flag.String("addr", "", "listen address (default $SNAKE_ADDR or :8080)")
	debugFlag = flag.Bool("debug", false, "write the log under logs/ instead of stderr")
	seedFlag  = flag.Uint64("seed", 0, "food placement seed, 0 seeds from the clock")
)

const shutdownTimeout = 5 * time.Second

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "snake-server: %v\n", err)
		os.Exit(1)
	}
}

func listenAddr() string {
	if *addrFlag != "" {
		return *addrFlag
	}
	if addr := os.Getenv("SNAKE_ADDR"); addr != "" {
		return addr
	}
	return ":8080"
}

func run() error {
	log, closeLog, err := logging.Open(logging.DefaultDir, *debugFlag, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	steer := make(chan engine.Direction, 8)
	hub := spectate.NewHub(steer, log)
	loop := &schedule.Loop{
		Engine:   engine.NewSeeded(seed),
		Renderer: hub,
		Input:    steer,
		Log:      log,
	}
	srv := &http.Server{
		Addr:              listenAddr(),
		Handler:           spectate.Routes(hub),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return loop.Run(gctx)
	})
	g.Go(func() error {
		log.Info("listening on %s, seed %d", srv.Addr, seed)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		log.Info("shut down")
		return nil
	}
	return err
}
