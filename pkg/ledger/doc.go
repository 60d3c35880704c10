// Package ledger provides an in-memory implementation of the atomic transfer
// primitive the billing engine depends on.
//
// Balances are keyed by (instrument, principal). Transfer is all-or-nothing:
// the funds check and both balance mutations happen under one lock, so a
// failed transfer leaves no partial effect. Production deployments substitute
// a real token or payments backend behind the same billing.Transferrer
// interface; this implementation backs tests and single-process setups.
package ledger
