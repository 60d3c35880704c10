package billing

import (
	"errors"

	"github.com/LarryRage/blockbiller/pkg/authz"
)

var (
	// ErrAlreadySubscribed is returned when the subscriber id is enrolled.
	ErrAlreadySubscribed = errors.New("billing: subscriber already subscribed")

	// ErrNotReadyToRenew is returned when the current term has not elapsed.
	ErrNotReadyToRenew = errors.New("billing: subscription term has not elapsed yet")

	// ErrPlanMismatch is returned when the supplied plan id differs from the
	// subscriber's enrolled plan.
	ErrPlanMismatch = errors.New("billing: plan does not match the enrolled plan")

	// ErrNoBalance is returned when a plan has nothing to withdraw.
	ErrNoBalance = errors.New("billing: plan balance is zero")

	// ErrTransferFailed wraps failures of the external transfer primitive.
	ErrTransferFailed = errors.New("billing: value transfer failed")

	// ErrInvalidFeeRate is returned for fee rates above MaxBps.
	ErrInvalidFeeRate = errors.New("billing: fee rate exceeds 10000 basis points")

	// ErrNotAuthorized aliases the authz sentinel so callers can match either.
	ErrNotAuthorized = authz.ErrNotAuthorized
)
