package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LarryRage/blockbiller/pkg/pg"
)

// PostgresStore persists plans in the plans table. Durations are stored as
// whole seconds.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store backed by the given connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, planID string) (Plan, error) {
	const query = `
		SELECT id, price, duration_seconds, balance, owner, instrument, created_at
		FROM plans WHERE id = $1`

	var (
		plan        Plan
		durationSec int64
	)
	err := s.pool.QueryRow(ctx, query, planID).Scan(
		&plan.ID, &plan.Price, &durationSec, &plan.Balance,
		&plan.Owner, &plan.Instrument, &plan.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Plan{}, ErrPlanNotFound
		}
		return Plan{}, fmt.Errorf("failed to get plan %s: %w", planID, err)
	}

	plan.Duration = time.Duration(durationSec) * time.Second
	return plan, nil
}

func (s *PostgresStore) Save(ctx context.Context, plan Plan) error {
	const query = `
		INSERT INTO plans (id, price, duration_seconds, balance, owner, instrument, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET balance = EXCLUDED.balance`

	_, err := s.pool.Exec(ctx, query,
		plan.ID, plan.Price, int64(plan.Duration/time.Second), plan.Balance,
		plan.Owner, plan.Instrument, plan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save plan %s: %w", plan.ID, err)
	}

	return nil
}
