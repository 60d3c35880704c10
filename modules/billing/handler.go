package billing

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/LarryRage/blockbiller/pkg/authz"
	engine "github.com/LarryRage/blockbiller/pkg/billing"
	"github.com/LarryRage/blockbiller/pkg/catalog"
	"github.com/LarryRage/blockbiller/pkg/currency"
	"github.com/LarryRage/blockbiller/pkg/ledger"
	"github.com/LarryRage/blockbiller/pkg/sender"
	"github.com/LarryRage/blockbiller/pkg/subscriber"
)

// CallerHeader carries the raw caller identity.
const CallerHeader = "X-Caller"

// ForwardedHeader carries the principal a trusted relay acts for.
const ForwardedHeader = "X-Forwarded-Caller"

type handler struct {
	mod *Module
}

func requestFrom(r *http.Request) sender.Request {
	return sender.Request{
		Caller:       authz.Principal(r.Header.Get(CallerHeader)),
		ForwardedFor: authz.Principal(r.Header.Get(ForwardedHeader)),
	}
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if h.mod.Health != nil {
		if err := h.mod.Health(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (h *handler) addCurrency(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Instrument string `json:"instrument"`
		PayToken   string `json:"pay_token"`
		CostValue  int64  `json:"cost_value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	req := requestFrom(r)
	caller, err := h.mod.Senders.Resolve(r.Context(), req)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	info := currency.Info{PayToken: body.PayToken, CostValue: body.CostValue}
	if err := h.mod.Currencies.Add(r.Context(), caller, body.Instrument, info); err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"instrument": body.Instrument,
		"cost_value": body.CostValue,
	})
}

func (h *handler) createPlan(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID              string `json:"id"`
		Price           int64  `json:"price"`
		DurationSeconds int64  `json:"duration_seconds"`
		Instrument      string `json:"instrument"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	owner, err := h.mod.Senders.Resolve(r.Context(), requestFrom(r))
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	plan, err := h.mod.Catalog.Create(r.Context(), owner, body.ID, body.Price,
		time.Duration(body.DurationSeconds)*time.Second, body.Instrument)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	writeJSON(w, http.StatusCreated, planResponse(plan))
}

func (h *handler) planBalance(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")

	writeJSON(w, http.StatusOK, map[string]any{
		"plan_id": planID,
		"balance": h.mod.Catalog.Balance(r.Context(), planID),
	})
}

func (h *handler) subscribe(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PlanID       string `json:"plan_id"`
		SubscriberID string `json:"subscriber_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sub, err := h.mod.Engine.Subscribe(r.Context(), requestFrom(r), body.PlanID, body.SubscriberID)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	writeJSON(w, http.StatusCreated, subscriberResponse(sub))
}

func (h *handler) renew(w http.ResponseWriter, r *http.Request) {
	subscriberID := chi.URLParam(r, "subscriberID")

	var body struct {
		PlanID string `json:"plan_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sub, err := h.mod.Engine.Renew(r.Context(), requestFrom(r), subscriberID, body.PlanID)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	writeJSON(w, http.StatusOK, subscriberResponse(sub))
}

func (h *handler) cancel(w http.ResponseWriter, r *http.Request) {
	subscriberID := chi.URLParam(r, "subscriberID")

	if err := h.mod.Engine.Cancel(r.Context(), requestFrom(r), subscriberID); err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) withdraw(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")

	receipt, err := h.mod.Engine.Withdraw(r.Context(), requestFrom(r), planID)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"plan_id": receipt.PlanID,
		"fee":     receipt.Fee,
		"payout":  receipt.Payout,
	})
}

func (h *handler) addRelay(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Relay string `json:"relay"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	caller := authz.Principal(r.Header.Get(CallerHeader))
	if err := h.mod.Senders.AddRelay(r.Context(), caller, authz.Principal(body.Relay)); err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) setDeployer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Deployer string `json:"deployer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	caller := authz.Principal(r.Header.Get(CallerHeader))
	if err := h.mod.Senders.SetDeployer(r.Context(), caller, authz.Principal(body.Deployer)); err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func planResponse(p catalog.Plan) map[string]any {
	return map[string]any{
		"id":               p.ID,
		"price":            p.Price,
		"duration_seconds": int64(p.Duration / time.Second),
		"balance":          p.Balance,
		"owner":            p.Owner,
		"instrument":       p.Instrument,
	}
}

func subscriberResponse(s subscriber.Subscriber) map[string]any {
	return map[string]any{
		"id":         s.ID,
		"plan_id":    s.PlanID,
		"account":    s.Account,
		"expires_at": s.ExpiresAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{
		"error": err.Error(),
	})
}

// statusOf maps the ledger error taxonomy onto HTTP statuses.
func statusOf(err error) int {
	switch {
	case errors.Is(err, authz.ErrNotAuthorized),
		errors.Is(err, sender.ErrNotDeployer):
		return http.StatusForbidden
	case errors.Is(err, catalog.ErrPlanNotFound),
		errors.Is(err, subscriber.ErrSubscriberNotFound),
		errors.Is(err, currency.ErrCurrencyNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrAlreadySubscribed),
		errors.Is(err, catalog.ErrPlanAlreadyExists),
		errors.Is(err, engine.ErrNotReadyToRenew),
		errors.Is(err, engine.ErrPlanMismatch):
		return http.StatusConflict
	case errors.Is(err, engine.ErrTransferFailed),
		errors.Is(err, ledger.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, catalog.ErrTokenNotAccepted),
		errors.Is(err, catalog.ErrDurationTooShort),
		errors.Is(err, catalog.ErrZeroPrice),
		errors.Is(err, catalog.ErrEmptyPlanID),
		errors.Is(err, currency.ErrEmptyInstrument),
		errors.Is(err, engine.ErrNoBalance),
		errors.Is(err, sender.ErrEmptyCaller):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
