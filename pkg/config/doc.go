// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Define a struct with env tags and pass a pointer to Load:
//
//	type BillingConfig struct {
//		Custody      string `env:"BILLING_CUSTODY_ACCOUNT,required"`
//		FeeRecipient string `env:"BILLING_FEE_RECIPIENT,required"`
//		FeeBps       int64  `env:"BILLING_FEE_BPS" envDefault:"0"`
//	}
//
//	var cfg BillingConfig
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
//
// The first Load in a process reads .env once if present; a missing file is
// not an error.
package config
