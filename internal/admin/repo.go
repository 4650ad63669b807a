// Package admin backs the storefront's admin login against the
// admin_accounts table.
package admin

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("admin account not found")
)

type Account struct {
	ID           int64
	Username     string
	PasswordHash string
}

type Repository interface {
	GetByUsername(ctx context.Context, username string) (*Account, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) GetByUsername(ctx context.Context, username string) (*Account, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var a Account
	err := r.db.QueryRow(ctx, `
		SELECT id, username, password_hash
		FROM admin_accounts WHERE username=$1
	`, username).Scan(&a.ID, &a.Username, &a.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
