package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"userorders/internal/app"
	"userorders/internal/correlation"
	"userorders/internal/env"
	"userorders/internal/httpapi"
	"userorders/internal/metrics"
	"userorders/pkg/graceful"
)

const shutdownTimeout = 10 * time.Second

func main() {
	env.LoadEnv()
	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	cfg, err := env.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	users, closeUsers, err := app.OpenUserStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s user store: %v", cfg.UserStore, err)
	}
	defer closeUsers()

	reg := metrics.NewRegistry()
	logger := correlation.DefaultLogger()
	svc := app.NewService(cfg, users, reg, logger)
	api := httpapi.NewServer(svc, reg.Handler(), logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP shutdown: %v", err)
		}
	}()

	log.Printf("Listening on %s (user store: %s, product timeout: %s)", cfg.HTTPAddr, cfg.UserStore, cfg.ProductTimeout)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server: %v", err)
	}
	log.Println("Server stopped.")
}
