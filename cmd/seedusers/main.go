package main

import (
	"context"
	"log"
	"time"

	"userorders/internal/app"
	"userorders/internal/env"
	"userorders/internal/models"
	"userorders/internal/storage"
	"userorders/pkg/graceful"
)

// seedusers loads USERS_FILE into the persistent user store named by USER_STORE.
func main() {
	env.LoadEnv()
	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	cfg, err := env.Load()
	if err != nil {
		log.Fatal(err)
	}
	cfg.UsersFile = env.MustGetEnv("USERS_FILE")
	if cfg.UserStore == env.StoreMemory {
		log.Fatalf("USER_STORE=%s is not persistent, nothing to seed", env.StoreMemory)
	}

	start := time.Now()
	users, err := storage.ReadUsersFile(cfg.UsersFile)
	if err != nil {
		log.Fatal(err)
	}

	store, closeStore, err := app.OpenUserStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s user store: %v", cfg.UserStore, err)
	}
	defer closeStore()

	userCh := make(chan models.User)
	go func() {
		defer close(userCh)
		for _, u := range users {
			select {
			case userCh <- u:
			case <-ctx.Done():
				return
			}
		}
	}()

	stored := storage.StoreUsersFromChannel(ctx, store, userCh)
	log.Printf("Seeded %d of %d users into %s store, took %s", stored, len(users), cfg.UserStore, time.Since(start))
}
