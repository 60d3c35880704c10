package pg

import "time"

// Config holds the environment-driven postgres pool and migration settings.
type Config struct {
	// ConnectionString is the postgres connection URL.
	ConnectionString string `env:"PG_CONN_URL,required"`

	MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns      int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`

	// RetryAttempts is how many times Connect pings before giving up;
	// RetryInterval is the pause between attempts.
	RetryAttempts int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`

	// MigrationsPath is the goose SQL directory; MigrationsTable tracks the
	// applied version.
	MigrationsPath  string `env:"PG_MIGRATIONS_PATH" envDefault:"db/migrations"`
	MigrationsTable string `env:"PG_MIGRATIONS_TABLE" envDefault:"schema_migrations"`
}
