// Package currency tracks the payment instruments the billing ledger accepts.
//
// An instrument is accepted when its registered Info carries a non-zero
// CostValue; there is no separate "enabled" flag. Registering an instrument
// with CostValue zero is legal and effectively delists it while keeping the
// pay-token reference on record.
//
// Registration is admin-gated through the authz oracle. Lookups are open.
package currency
