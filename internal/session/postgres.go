package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps sessions in the storefront_sessions table. Expired
// rows are invisible to Get and removed by DeleteExpired.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var (
	_ Store   = (*PostgresStore)(nil)
	_ Sweeper = (*PostgresStore)(nil)
)

// NewPostgresStore wraps a connection pool. The table is created by the
// embedded migrations.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Get returns the session with id.
func (p *PostgresStore) Get(ctx context.Context, id string) (*Session, error) {
	var data []byte
	err := p.pool.QueryRow(ctx,
		`SELECT data FROM storefront_sessions WHERE id = $1 AND expires_at > now()`,
		id,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return decode(data)
}

// Save upserts s.
func (p *PostgresStore) Save(ctx context.Context, s *Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO storefront_sessions (id, data, expires_at, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE
		SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at, updated_at = now()`,
		s.ID, data, s.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes the session with id.
func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM storefront_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes expired rows and returns how many were removed.
func (p *PostgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM storefront_sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
