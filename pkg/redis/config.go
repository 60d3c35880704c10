package redis

import "time"

// Config holds the environment-driven Redis connection settings.
type Config struct {
	// ConnectionURL in the form "redis://:password@localhost:6379/0".
	ConnectionURL string `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`

	// RetryAttempts is how many times Connect pings before giving up.
	RetryAttempts int `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`

	// RetryInterval is the pause between failed ping attempts.
	RetryInterval time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`

	// ConnectTimeout bounds the whole connection attempt.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}
