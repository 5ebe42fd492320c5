package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Repo = (*PostgresRepo)(nil)

const upsertSQL = `INSERT INTO users (user_id, access_token, refresh_token) VALUES ($1, $2, $3) ON CONFLICT (user_id) DO UPDATE SET access_token = EXCLUDED.access_token, refresh_token = EXCLUDED.refresh_token`

// PostgresRepo implements Repo against the shared users table.
type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(pool *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{pool: pool}
}

func (r *PostgresRepo) Upsert(ctx context.Context, user User) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("[PostgresRepo Upsert] failed to acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, upsertSQL, user.ID, user.AccessToken, user.RefreshToken); err != nil {
		return fmt.Errorf("[PostgresRepo Upsert] upsert failed: %w", err)
	}
	return nil
}
