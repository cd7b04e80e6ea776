package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/lmittmann/tint"

	"ising/internal/ising"
	"ising/internal/scheduler"
	"ising/internal/server"
)

func main() {
	cfg := NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	})))

	eng, err := ising.NewEngine(cfg.Sim)
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(2)
	}

	if cfg.Sweeps > 0 {
		runHeadless(eng, cfg.Sweeps)
		return
	}

	granularity, err := scheduler.ParseGranularity(cfg.Granularity)
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := serve(ctx, eng, cfg, granularity); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func runHeadless(eng *ising.Engine, sweeps int) {
	eng.SetObserver(func(e *ising.Engine) {
		l := e.Lattice()
		fmt.Printf("sweep %d  M %s  R %s  E %d\n",
			e.Sweeps(),
			ising.FormatReadout(ising.Magnetization(l)),
			ising.FormatReadout(ising.LocalCorrelation(l)),
			ising.Energy(l))
	})
	for i := 0; i < sweeps; i++ {
		eng.Sweep()
	}
	slog.Debug("headless run done", "sweeps", eng.Sweeps(), "flips", eng.Flips())
}

func serve(ctx context.Context, eng *ising.Engine, cfg *Config, g scheduler.Granularity) error {
	session := server.NewSession(eng, server.SessionConfig{
		TPS:         cfg.TPS,
		Granularity: g,
		Logger:      slog.Default(),
	})

	mux := http.NewServeMux()
	mux.Handle("/ws", server.NewHandler(session, server.HandlerConfig{Logger: slog.Default()}))
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	errc := make(chan error, 2)
	go func() {
		if err := session.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errc <- fmt.Errorf("scheduler: %w", err)
		}
	}()
	go func() {
		slog.Info("listening", "addr", cfg.Addr, "sim", eng.Name(), "size", cfg.Sim.Size)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errc:
		return err
	}

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdown)
}
