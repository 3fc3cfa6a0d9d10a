// Package app builds the service graph shared by the commands from an env.Config.
package app

import (
	"context"
	"fmt"
	"log"

	"userorders/internal/correlation"
	"userorders/internal/env"
	"userorders/internal/metrics"
	"userorders/internal/storage"
	"userorders/internal/userorders"
	"userorders/pkg/ordersearch"
	"userorders/pkg/productinfo"
)

// UserStore is a backend that can both resolve and persist users.
type UserStore interface {
	userorders.UserStore
	storage.UserWriter
}

// OpenUserStore opens the backend selected by cfg.UserStore. The returned
// close function releases it and is never nil.
func OpenUserStore(ctx context.Context, cfg env.Config) (UserStore, func(), error) {
	noop := func() {}
	switch cfg.UserStore {
	case env.StoreMemory:
		store := storage.NewMemoryUserStore()
		if cfg.UsersFile != "" {
			users, err := storage.ReadUsersFile(cfg.UsersFile)
			if err != nil {
				return nil, noop, err
			}
			store = storage.NewMemoryUserStore(users...)
			log.Printf("Loaded %d users from %s", len(users), cfg.UsersFile)
		}
		return store, noop, nil
	case env.StorePostgres:
		store, pool, err := storage.NewPostgresUserStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return store, pool.Close, nil
	case env.StoreS3:
		store, err := storage.NewS3UserStore(storage.S3Options{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			UseSSL:    cfg.MinioUseSSL,
			Bucket:    cfg.UsersBucket,
		})
		if err != nil {
			return nil, noop, err
		}
		if err := store.EnsureBucket(ctx, ""); err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	case env.StorePebble:
		store, err := storage.NewPebbleUserStore(cfg.PebbleDir)
		if err != nil {
			return nil, noop, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				log.Printf("Failed to close pebble store: %v", err)
			}
		}, nil
	default:
		return nil, noop, fmt.Errorf("unknown USER_STORE %q", cfg.UserStore)
	}
}

// NewService wires the aggregation service to the HTTP upstreams named in cfg.
func NewService(cfg env.Config, users userorders.UserStore, reg *metrics.Registry, logger *correlation.Logger) *userorders.Service {
	return userorders.NewService(
		users,
		ordersearch.NewClient(cfg.OrderSearchURL),
		productinfo.NewClient(cfg.ProductInfoURL),
		userorders.WithLogger(logger),
		userorders.WithMetrics(reg),
		userorders.WithProductTimeout(cfg.ProductTimeout),
		userorders.WithMaxInFlight(cfg.MaxInFlight),
	)
}
