package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"userorders/internal/models"
)

// MemoryUserStore is a thread-safe map of users keyed by id.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserStore(users ...models.User) *MemoryUserStore {
	s := &MemoryUserStore{users: make(map[string]models.User, len(users))}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *MemoryUserStore) FindUserByID(_ context.Context, id string) (models.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok, nil
}

func (s *MemoryUserStore) SaveUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

// ReadUsersFile decodes a JSON array of users from path.
func ReadUsersFile(path string) ([]models.User, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open users file: %w", err)
	}
	defer f.Close()

	var users []models.User
	if err := json.NewDecoder(f).Decode(&users); err != nil {
		return nil, fmt.Errorf("decode users file %s: %w", path, err)
	}
	return users, nil
}
