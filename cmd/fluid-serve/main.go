package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stable-fluids/internal/app"
	"stable-fluids/internal/stream"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	addr := flag.String("addr", ":8080", "listen address")
	downsample := flag.Int("downsample", 1, "average factor×factor blocks before sending")
	velocity := flag.Bool("velocity", true, "include the velocity field in frames")
	flag.Parse()

	sim, err := cfg.NewSim()
	if err != nil {
		log.Fatal(err)
	}

	srv := stream.New(sim, stream.Options{
		TPS:        cfg.TPS,
		Downsample: *downsample,
		Velocity:   *velocity,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{Addr: *addr, Handler: srv.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("simulation loop: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	size := sim.Size()
	log.Printf("serving %s (%dx%d) on %s at %d tps", sim.Name(), size.W, size.H, *addr, cfg.TPS)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
