// Package subscriber owns the enrollment records of the billing ledger.
//
// The package is pure storage: a Subscriber links a subscriber identity to a
// plan, a controlling account and an expiration timestamp. All mutation logic
// lives in the billing engine; this package only defines the record and its
// stores. A deleted or never-created record is indistinguishable from "not
// subscribed", which the zero-valued ExpiresAt encodes.
package subscriber
