package catalog

import "errors"

var (
	ErrPlanNotFound      = errors.New("catalog: plan not found")
	ErrPlanAlreadyExists = errors.New("catalog: plan identifier already in use")

	ErrTokenNotAccepted = errors.New("catalog: payment instrument not accepted")
	ErrDurationTooShort = errors.New("catalog: plan duration below the 30-day minimum")
	ErrZeroPrice        = errors.New("catalog: plan price must be positive")
	ErrEmptyPlanID      = errors.New("catalog: plan identifier is required")
)
