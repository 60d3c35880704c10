// Package catalog owns the subscription plan records of the billing ledger.
//
// A plan fixes its price, duration, payment instrument and owning principal
// at creation; only the accrued balance changes afterwards, and only through
// the billing engine. Plan identifiers are write-once: a created plan can
// never be recreated and there is no delete operation.
//
// The catalog validates creations (accepted instrument, minimum duration,
// positive price, unique identifier) and serves reads. The platform fee rate
// is deliberately not stored here; it comes from the billing engine's fee
// provider.
package catalog
