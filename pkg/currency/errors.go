package currency

import "errors"

var (
	// ErrCurrencyNotFound is returned when an instrument has never been registered.
	ErrCurrencyNotFound = errors.New("currency: instrument not registered")

	// ErrEmptyInstrument is returned when the instrument identifier is blank.
	ErrEmptyInstrument = errors.New("currency: instrument identifier is required")
)
