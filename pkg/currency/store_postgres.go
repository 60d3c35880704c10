package currency

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LarryRage/blockbiller/pkg/pg"
)

// PostgresStore persists instruments in the currencies table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store backed by the given connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, instrument string) (Info, error) {
	const query = `SELECT pay_token, cost_value FROM currencies WHERE instrument = $1`

	var info Info
	err := s.pool.QueryRow(ctx, query, instrument).Scan(&info.PayToken, &info.CostValue)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Info{}, ErrCurrencyNotFound
		}
		return Info{}, fmt.Errorf("failed to get instrument %s: %w", instrument, err)
	}

	return info, nil
}

func (s *PostgresStore) Save(ctx context.Context, instrument string, info Info) error {
	const query = `
		INSERT INTO currencies (instrument, pay_token, cost_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (instrument) DO UPDATE
		SET pay_token = EXCLUDED.pay_token, cost_value = EXCLUDED.cost_value`

	if _, err := s.pool.Exec(ctx, query, instrument, info.PayToken, info.CostValue); err != nil {
		return fmt.Errorf("failed to save instrument %s: %w", instrument, err)
	}

	return nil
}
