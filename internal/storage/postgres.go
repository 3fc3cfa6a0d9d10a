package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"userorders/internal/models"
)

const (
	selectUserSQL = `SELECT id, name, phone FROM users WHERE id = $1`
	upsertUserSQL = `INSERT INTO users (id, name, phone) VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, phone = EXCLUDED.phone`
)

// querier is the subset of *pgxpool.Pool the store needs.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresUserStore reads users from a `users(id, name, phone)` table.
type PostgresUserStore struct {
	db querier
}

// NewPostgresUserStore opens a connection pool for databaseURL and pings it.
func NewPostgresUserStore(ctx context.Context, databaseURL string) (*PostgresUserStore, *pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("pgx ping: %w", err)
	}
	return &PostgresUserStore{db: pool}, pool, nil
}

func (s *PostgresUserStore) FindUserByID(ctx context.Context, id string) (models.User, bool, error) {
	var u models.User
	err := s.db.QueryRow(ctx, selectUserSQL, id).Scan(&u.ID, &u.Name, &u.Phone)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, fmt.Errorf("select user %s: %w", id, err)
	}
	return u, true, nil
}

func (s *PostgresUserStore) SaveUser(ctx context.Context, user models.User) error {
	if _, err := s.db.Exec(ctx, upsertUserSQL, user.ID, user.Name, user.Phone); err != nil {
		return fmt.Errorf("upsert user %s: %w", user.ID, err)
	}
	return nil
}
