package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/LarryRage/blockbiller/pkg/authz"
)

var (
	// ErrInsufficientFunds is returned when the debited account cannot cover
	// the transfer amount.
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")

	// ErrInvalidAmount is returned for zero or negative transfer amounts.
	ErrInvalidAmount = errors.New("ledger: amount must be positive")

	// ErrInvalidAccount is returned when a transfer names an empty principal.
	ErrInvalidAccount = errors.New("ledger: account principal is required")
)

type account struct {
	instrument string
	principal  authz.Principal
}

// Ledger is an in-memory token ledger, safe for concurrent use.
type Ledger struct {
	mu       sync.Mutex
	balances map[account]int64
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{balances: make(map[account]int64)}
}

// Transfer atomically moves amount units of instrument between the two
// principals. Either the whole transfer applies or nothing does.
func (l *Ledger) Transfer(ctx context.Context, instrument string, from, to authz.Principal, amount int64) error {
	if from == "" || to == "" {
		return ErrInvalidAccount
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	src := account{instrument: instrument, principal: from}
	if l.balances[src] < amount {
		return errors.Join(ErrInsufficientFunds,
			fmt.Errorf("account %s holds %d of %s, needs %d", from, l.balances[src], instrument, amount))
	}

	l.balances[src] -= amount
	l.balances[account{instrument: instrument, principal: to}] += amount
	return nil
}

// Mint credits amount units of instrument to the principal. Used to seed
// accounts in tests and development setups.
func (l *Ledger) Mint(instrument string, principal authz.Principal, amount int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[account{instrument: instrument, principal: principal}] += amount
}

// BalanceOf returns the principal's balance in the given instrument.
func (l *Ledger) BalanceOf(instrument string, principal authz.Principal) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.balances[account{instrument: instrument, principal: principal}]
}
