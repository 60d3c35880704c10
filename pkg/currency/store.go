package currency

import "context"

// Info describes a registered payment instrument.
type Info struct {
	// PayToken references the transferable token backing the instrument.
	PayToken string

	// CostValue is the nominal cost value of one unit. A non-zero value is
	// the sole admission flag: zero means "not accepted".
	CostValue int64
}

// Store defines the interface for instrument persistence.
// The instrument identifier is the primary key.
type Store interface {
	// Get retrieves the info for an instrument.
	// Returns ErrCurrencyNotFound if it was never registered.
	Get(ctx context.Context, instrument string) (Info, error)

	// Save creates or overwrites the info for an instrument.
	Save(ctx context.Context, instrument string, info Info) error
}
