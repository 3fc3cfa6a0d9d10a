package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"

	"userorders/internal/keys"
	"userorders/internal/models"
)

// PebbleUserStore keeps users in an embedded Pebble database, JSON encoded
// under keys.User(id).
type PebbleUserStore struct {
	db *pebble.DB
}

func NewPebbleUserStore(dir string) (*PebbleUserStore, error) {
	return openPebble(filepath.Clean(dir), &pebble.Options{})
}

func openPebble(dir string, opts *pebble.Options) (*PebbleUserStore, error) {
	d, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &PebbleUserStore{db: d}, nil
}

func (p *PebbleUserStore) Close() error { return p.db.Close() }

func (p *PebbleUserStore) FindUserByID(_ context.Context, id string) (models.User, bool, error) {
	v, closer, err := p.db.Get([]byte(keys.User(id)))
	if errors.Is(err, pebble.ErrNotFound) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, fmt.Errorf("pebble get %s: %w", id, err)
	}
	defer closer.Close()

	var u models.User
	if err := json.Unmarshal(v, &u); err != nil {
		return models.User{}, false, fmt.Errorf("decode user %s: %w", id, err)
	}
	return u, true, nil
}

func (p *PebbleUserStore) SaveUser(_ context.Context, user models.User) error {
	b, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return p.db.Set([]byte(keys.User(user.ID)), b, pebble.Sync)
}
