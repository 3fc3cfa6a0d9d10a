package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"userorders/internal/models"
)

var john = models.User{ID: "user1", Name: "John Doe", Phone: "123456789"}

type userStore interface {
	FindUserByID(ctx context.Context, id string) (models.User, bool, error)
	UserWriter
}

func newMemPebble(t *testing.T) *PebbleUserStore {
	t.Helper()
	s, err := openPebble("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestUserStores_SaveAndFind(t *testing.T) {
	stores := []struct {
		name  string
		store func(t *testing.T) userStore
	}{
		{name: "memory", store: func(*testing.T) userStore { return NewMemoryUserStore() }},
		{name: "pebble", store: func(t *testing.T) userStore { return newMemPebble(t) }},
		{name: "postgres", store: func(*testing.T) userStore { return &PostgresUserStore{db: newFakeQuerier()} }},
	}

	for _, st := range stores {
		t.Run(st.name, func(t *testing.T) {
			ctx := context.Background()
			s := st.store(t)

			if _, found, err := s.FindUserByID(ctx, john.ID); err != nil || found {
				t.Fatalf("empty store: found=%v err=%v", found, err)
			}
			if err := s.SaveUser(ctx, john); err != nil {
				t.Fatalf("SaveUser: %v", err)
			}
			got, found, err := s.FindUserByID(ctx, john.ID)
			if err != nil || !found {
				t.Fatalf("after save: found=%v err=%v", found, err)
			}
			if got != john {
				t.Errorf("got %+v, want %+v", got, john)
			}

			renamed := john
			renamed.Name = "John Renamed"
			if err := s.SaveUser(ctx, renamed); err != nil {
				t.Fatalf("SaveUser overwrite: %v", err)
			}
			if got, _, _ := s.FindUserByID(ctx, john.ID); got.Name != "John Renamed" {
				t.Errorf("expected overwrite, got %+v", got)
			}
		})
	}
}

func TestPostgresUserStore_PropagatesQueryErrors(t *testing.T) {
	q := newFakeQuerier()
	q.err = errors.New("connection reset")
	s := &PostgresUserStore{db: q}

	_, found, err := s.FindUserByID(context.Background(), "user1")
	if found || !errors.Is(err, q.err) {
		t.Errorf("found=%v err=%v, want wrapped connection reset", found, err)
	}
}

func TestStoreUsersFromChannel(t *testing.T) {
	users := make(chan models.User, 3)
	users <- john
	users <- models.User{ID: "user2", Name: "Mark", Phone: "987654321"}
	users <- models.User{ID: "user3", Name: "David", Phone: "111111111"}
	close(users)

	s := NewMemoryUserStore()
	if n := StoreUsersFromChannel(context.Background(), s, users); n != 3 {
		t.Errorf("stored %d users, want 3", n)
	}
	for _, id := range []string{"user1", "user2", "user3"} {
		if _, found, _ := s.FindUserByID(context.Background(), id); !found {
			t.Errorf("user %s missing", id)
		}
	}
}

func TestReadUsersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(path, []byte(`[{"id":"user1","name":"John Doe","phone":"123456789"}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	users, err := ReadUsersFile(path)
	if err != nil {
		t.Fatalf("ReadUsersFile: %v", err)
	}
	if len(users) != 1 || users[0] != john {
		t.Errorf("got %+v", users)
	}

	if _, err := ReadUsersFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

// fakeQuerier emulates the users table for the two statements the store issues.
type fakeQuerier struct {
	rows map[string]models.User
	err  error
}

func newFakeQuerier() *fakeQuerier { return &fakeQuerier{rows: map[string]models.User{}} }

type fakeRow struct {
	user  models.User
	found bool
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if !r.found {
		return pgx.ErrNoRows
	}
	*dest[0].(*string) = r.user.ID
	*dest[1].(*string) = r.user.Name
	*dest[2].(*string) = r.user.Phone
	return nil
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	if sql != selectUserSQL {
		return fakeRow{err: errors.New("unexpected query")}
	}
	u, ok := q.rows[args[0].(string)]
	return fakeRow{user: u, found: ok, err: q.err}
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if q.err != nil {
		return pgconn.CommandTag{}, q.err
	}
	if sql != upsertUserSQL {
		return pgconn.CommandTag{}, errors.New("unexpected statement")
	}
	u := models.User{ID: args[0].(string), Name: args[1].(string), Phone: args[2].(string)}
	q.rows[u.ID] = u
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}
