package billing

// Config holds the environment-driven settings of the billing module.
type Config struct {
	// Custody is the principal holding funds between subscription payments
	// and withdrawals.
	Custody string `env:"BILLING_CUSTODY_ACCOUNT,required"`

	// Deployer is the initial deployer principal. It is granted the default
	// admin and admin roles unless a grants file overrides the grant set.
	Deployer string `env:"BILLING_DEPLOYER,required"`

	// FeeRecipient receives the platform fee taken on withdrawal.
	FeeRecipient string `env:"BILLING_FEE_RECIPIENT,required"`

	// FeeBps is the platform fee rate in basis points (max 10000).
	FeeBps int64 `env:"BILLING_FEE_BPS" envDefault:"0"`

	// GrantsFile optionally points to a YAML role-grants file. When empty,
	// only the deployer holds roles.
	GrantsFile string `env:"BILLING_GRANTS_FILE"`

	// EventBuffer is the per-subscriber buffer of the in-memory broadcaster.
	EventBuffer int `env:"BILLING_EVENT_BUFFER" envDefault:"64"`

	// EventChannel is the Redis pub/sub channel for cross-process events.
	// Leave empty to keep events in-process only.
	EventChannel string `env:"BILLING_EVENT_CHANNEL"`
}
