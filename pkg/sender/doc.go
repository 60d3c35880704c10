// Package sender resolves raw callers to effective principals, supporting
// relayed (gasless-style) requests.
//
// A request carries the raw caller and, optionally, the principal it claims
// to act for. If the caller is a registered trusted relay, resolution yields
// the forwarded principal; otherwise the caller itself is the principal and
// any forwarded value is ignored. The billing engine resolves each request
// exactly once and uses the result for the whole operation.
//
// The registry also owns the deployer slot and the append-only trusted-relay
// set, both admin-gated.
package sender
