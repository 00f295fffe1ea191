package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pastel-notes/internal/config"
	"pastel-notes/internal/logger"
	"pastel-notes/internal/services/notes"
	"pastel-notes/internal/utils/sanitize"

	_ "go.uber.org/automaxprocs"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 25 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Create bootstrap logger for early errors
	bootstrapLog := log.New(os.Stderr, "bootstrap: ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		bootstrapLog.Printf("config load failed: %v", err)
		os.Exit(1)
	}

	logg, err := logger.Init(cfg)
	if err != nil {
		bootstrapLog.Printf("logger init failed: %v", err)
		os.Exit(1)
	}

	stopProfiler := startProfiler(cfg, logg)
	defer stopProfiler()

	hub := notes.NewHub(cfg.WSOutboxBuffer)
	store := notes.NewStore(sessionFor(cfg), logg, notes.WithBus(hub))
	loop := notes.NewLoop(store, cfg.CommandQueueSize, logg)
	viewer := store.Viewer()

	logg.Info("starting PastelNotes", "port", cfg.AppPort, "viewer", viewer.Username, "guest", viewer.IsGuest())

	app := setupRouter(cfg, loop, hub, viewer.ID)
	portStr := fmt.Sprintf(":%d", cfg.AppPort)

	g.Go(func() error {
		return loop.Run(ctx)
	})

	g.Go(func() error {
		err := app.Listen(portStr)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	// Graceful shutdown
	g.Go(func() error {
		<-ctx.Done()
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error("fatal", "err", err)
		os.Exit(1)
	}
	logg.Info("graceful shutdown complete")
}

// sessionFor picks the viewer's session. Guest mode has no session, so the
// store falls back to a guest viewer.
func sessionFor(cfg config.Config) notes.SessionProvider {
	if cfg.GuestMode {
		return notes.UnimplementedSession{}
	}
	return notes.StaticSession{User: notes.NewUser(sanitize.Name(cfg.ViewerUsername))}
}
