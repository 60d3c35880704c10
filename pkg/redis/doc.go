// Package redis connects the billing ledger to Redis. The connection feeds
// the cross-process event broadcaster (see pkg/event); the package itself
// only handles configuration, retrying connection setup and health checks.
package redis
