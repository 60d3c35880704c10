package catalog

import "context"

// Store defines the interface for plan persistence. The plan identifier is
// the primary key.
type Store interface {
	// Get retrieves a plan by identifier.
	// Returns ErrPlanNotFound if no plan exists.
	Get(ctx context.Context, planID string) (Plan, error)

	// Save creates or updates a plan. The implementation uses Plan.ID to
	// determine whether it's an update.
	Save(ctx context.Context, plan Plan) error
}
