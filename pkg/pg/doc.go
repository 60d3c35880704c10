// Package pg bootstraps the PostgreSQL layer of the billing ledger: a pgx/v5
// connection pool with retrying Connect, goose schema migrations routed
// through the application logger, a health check, and error classification
// helpers used by the plan, subscriber and currency stores.
//
// Configuration comes from environment variables via the Config struct; see
// its field tags for variable names and defaults. Typical wiring:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		// Handle error
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//		// Handle error
//	}
package pg
