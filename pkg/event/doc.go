// Package event defines the domain events the billing ledger emits and the
// broadcaster used to fan them out to subscribers.
//
// Every mutating operation on the ledger publishes exactly one Event after its
// state change has been applied. Delivery is best-effort: broadcasters never
// block a ledger operation on a slow consumer, they drop instead. Events are
// a projection of committed state, not the source of truth, so a dropped
// event can always be reconstructed from the stores.
//
// Two broadcaster implementations ship with the package: an in-process
// MemoryBroadcaster and a RedisBroadcaster that relays events over Redis
// pub/sub as JSON for cross-process consumers.
package event
