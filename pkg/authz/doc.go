// Package authz provides the role oracle consumed by the billing engine and
// the administrative surfaces of the ledger.
//
// The package deliberately stays small: it answers "does principal P hold
// role R" and nothing else. Role storage is abstracted behind GrantSource so
// applications can back it with a database or an identity provider; an
// in-memory source and a YAML file source ship with the package.
//
// # Quick Start
//
//	grants := map[authz.Principal][]authz.Role{
//		"0xdeployer": {authz.RoleDefaultAdmin, authz.RoleAdmin},
//	}
//
//	oracle, err := authz.NewOracle(ctx, authz.NewInMemGrantSource(grants))
//	if err != nil {
//		// Handle error
//	}
//
//	if !oracle.HasRole(ctx, "0xdeployer", authz.RoleAdmin) {
//		// Reject the request
//	}
//
// Grants are snapshotted at construction and treated as immutable afterwards,
// which keeps HasRole lock-free and safe for concurrent use.
package authz
