package catalog

import (
	"time"

	"github.com/LarryRage/blockbiller/pkg/authz"
)

// MinDuration is the shortest billing period a plan may declare: 30 days
// (2,592,000 seconds).
const MinDuration = 30 * 24 * time.Hour

// Plan is a subscription offering. Price, Duration, Owner and Instrument are
// immutable after creation; Balance accrues on subscribe/renew and resets to
// zero on withdrawal.
type Plan struct {
	ID         string
	Price      int64
	Duration   time.Duration
	Balance    int64
	Owner      authz.Principal
	Instrument string
	CreatedAt  time.Time
}

// ExpiryFrom returns the subscription expiration for a term starting at now.
func (p Plan) ExpiryFrom(now time.Time) time.Time {
	return now.Add(p.Duration)
}
