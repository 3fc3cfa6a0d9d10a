// Package storage holds the user store backends: in-memory, PostgreSQL,
// S3-compatible object storage and an embedded Pebble database. Every backend
// reports a missing user as found=false with a nil error.
package storage

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"userorders/internal/models"
)

// UserWriter persists user records, overwriting an existing record with the same id.
type UserWriter interface {
	SaveUser(ctx context.Context, user models.User) error
}

// StoreUsersFromChannel reads users from a channel and saves each one
// concurrently. Failures are logged and do not stop the remaining writes.
// It returns the number of users saved successfully.
func StoreUsersFromChannel(ctx context.Context, w UserWriter, users <-chan models.User) int {
	var wg sync.WaitGroup
	var stored atomic.Int64

	for user := range users {
		wg.Add(1)
		go func(u models.User) {
			defer wg.Done()
			if err := w.SaveUser(ctx, u); err != nil {
				log.Printf("Error storing user '%s': %v", u.ID, err)
				return
			}
			stored.Add(1)
		}(user)
	}

	wg.Wait()
	log.Printf("Finished storing all users from the channel. Count %d", stored.Load())
	return int(stored.Load())
}
