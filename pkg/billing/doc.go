// Package billing implements the recurring-billing state machine on top of
// the plan catalog and the subscriber registry.
//
// The Engine orchestrates the four ledger operations (Subscribe, Renew,
// Cancel and Withdraw) and is the only writer of plan balances and
// subscriber expirations. Every operation runs in a serialized window: the
// engine resolves the effective principal once, authorizes, validates,
// invokes the external transfer primitive and only then mutates state and
// emits the domain event. Failures abort the whole operation with no state
// change, with one documented exception: a withdrawal's balance reset is
// persisted before the payout transfers and stays committed even if a
// transfer then fails, which closes the double-withdraw window.
//
// External collaborators enter through small interfaces: Transferrer (atomic
// value transfer), FeeProvider (platform fee recipient and rate),
// sender.Resolver (effective-principal resolution) and authz.Authorizer
// (role checks). pkg/ledger ships a reference Transferrer.
package billing
