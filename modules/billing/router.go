package billing

import (
	"github.com/go-chi/chi/v5"
)

// Router mounts the billing ledger's HTTP surface.
//
// Example:
//
//	mod, cleanup, err := billing.NewFromEnv(ctx, transferBackend)
//	if err != nil {
//		// Handle error
//	}
//	defer cleanup()
//
//	r := chi.NewRouter()
//	r.Mount("/billing", billing.Router(mod))
func Router(mod *Module) chi.Router {
	h := &handler{mod: mod}

	r := chi.NewRouter()

	r.Get("/health", h.health)
	r.Post("/currencies", h.addCurrency)

	r.Route("/plans", func(plans chi.Router) {
		plans.Post("/", h.createPlan)
		plans.Get("/{planID}/balance", h.planBalance)
		plans.Post("/{planID}/withdrawals", h.withdraw)
	})

	r.Route("/subscriptions", func(subs chi.Router) {
		subs.Post("/", h.subscribe)
		subs.Post("/{subscriberID}/renew", h.renew)
		subs.Delete("/{subscriberID}", h.cancel)
	})

	r.Route("/admin", func(admin chi.Router) {
		admin.Post("/relays", h.addRelay)
		admin.Put("/deployer", h.setDeployer)
	})

	return r
}
