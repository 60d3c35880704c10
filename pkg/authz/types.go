package authz

// Principal is an authenticated actor identity. The zero value is never a
// valid principal; registries use it as the "nobody" sentinel.
type Principal string

// Role names a capability grantable to a principal.
type Role string

const (
	// RoleDefaultAdmin is the root administrative role, held by the deployer.
	RoleDefaultAdmin Role = "default_admin"

	// RoleAdmin gates currency registration, forced cancellation and
	// renewal on behalf of subscribers, and balance withdrawal.
	RoleAdmin Role = "admin"

	// RoleCreator is provisioned for future plan-creation gating. No ledger
	// operation checks it today.
	RoleCreator Role = "creator"
)
