package billing

import (
	"context"

	"github.com/LarryRage/blockbiller/pkg/authz"
)

// Transferrer is the external atomic value-transfer primitive. A transfer
// either fully succeeds or fails with no partial effect; the engine never
// retries.
type Transferrer interface {
	Transfer(ctx context.Context, instrument string, from, to authz.Principal, amount int64) error
}

// FeeInfo is the platform fee configuration applied on withdrawal.
type FeeInfo struct {
	// Recipient receives the platform's cut.
	Recipient authz.Principal

	// Bps is the fee rate in basis points, at most MaxBps.
	Bps int64
}

// FeeProvider supplies the platform fee configuration. It is read on every
// withdrawal so rate changes take effect without a restart.
type FeeProvider interface {
	PlatformFee(ctx context.Context) (FeeInfo, error)
}

// StaticFeeProvider is a FeeProvider with a fixed recipient and rate.
type StaticFeeProvider struct {
	info FeeInfo
}

// NewStaticFeeProvider creates a fixed fee provider. The rate is validated
// against MaxBps once here, so reads cannot fail.
func NewStaticFeeProvider(recipient authz.Principal, bps int64) (*StaticFeeProvider, error) {
	if bps < 0 || bps > MaxBps {
		return nil, ErrInvalidFeeRate
	}
	return &StaticFeeProvider{info: FeeInfo{Recipient: recipient, Bps: bps}}, nil
}

func (p *StaticFeeProvider) PlatformFee(ctx context.Context) (FeeInfo, error) {
	return p.info, nil
}
