package redis

import "errors"

var (
	// ErrEmptyConnectionURL is returned when the connection URL is blank.
	ErrEmptyConnectionURL = errors.New("empty redis connection URL")

	// ErrFailedToParseRedisConnString is returned for malformed URLs.
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")

	// ErrRedisNotReady is returned when the server does not answer pings
	// within the configured retry budget.
	ErrRedisNotReady = errors.New("redis did not become ready within the given time period")

	// ErrHealthcheckFailed wraps ping failures from Healthcheck.
	ErrHealthcheckFailed = errors.New("redis healthcheck failed")
)
