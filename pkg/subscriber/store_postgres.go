package subscriber

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LarryRage/blockbiller/pkg/pg"
)

// PostgresStore persists enrollments in the subscribers table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store backed by the given connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, subscriberID string) (Subscriber, error) {
	const query = `
		SELECT id, plan_id, account, expires_at
		FROM subscribers WHERE id = $1`

	var sub Subscriber
	err := s.pool.QueryRow(ctx, query, subscriberID).Scan(
		&sub.ID, &sub.PlanID, &sub.Account, &sub.ExpiresAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Subscriber{}, ErrSubscriberNotFound
		}
		return Subscriber{}, fmt.Errorf("failed to get subscriber %s: %w", subscriberID, err)
	}

	return sub, nil
}

func (s *PostgresStore) Save(ctx context.Context, sub Subscriber) error {
	const query = `
		INSERT INTO subscribers (id, plan_id, account, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET plan_id = EXCLUDED.plan_id,
		    account = EXCLUDED.account,
		    expires_at = EXCLUDED.expires_at`

	if _, err := s.pool.Exec(ctx, query, sub.ID, sub.PlanID, sub.Account, sub.ExpiresAt); err != nil {
		return fmt.Errorf("failed to save subscriber %s: %w", sub.ID, err)
	}

	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, subscriberID string) error {
	const query = `DELETE FROM subscribers WHERE id = $1`

	if _, err := s.pool.Exec(ctx, query, subscriberID); err != nil {
		return fmt.Errorf("failed to delete subscriber %s: %w", subscriberID, err)
	}

	return nil
}
