// Package saldo computes account balances.
package saldo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kontor-dev/kontor/internal/accounts"
	"github.com/kontor-dev/kontor/internal/ledger"
	"github.com/kontor-dev/kontor/internal/model"
)

// Query selects the balance to compute.
type Query struct {
	// Account is an account name or path. Report ignores it.
	Account string
	// Start and End restrict leaf balances to [Start, End]. Both must be set to take effect.
	Start, End time.Time
	// WithVirtual adds the virtual bookings.
	WithVirtual bool
}

// Balance is the saldo of an account, rounded to cents.
type Balance struct {
	Saldo       decimal.Decimal
	Virtual     decimal.Decimal
	WithVirtual bool
}

// Total returns the real plus the virtual saldo.
func (b Balance) Total() decimal.Decimal {
	return b.Saldo.Add(b.Virtual)
}

func (b Balance) String() string {
	if b.WithVirtual {
		return fmt.Sprintf("%s (virtual %s)", b.Saldo.StringFixed(2), b.Virtual.StringFixed(2))
	}
	return b.Saldo.StringFixed(2)
}

// Aggregator sums bookings into balances.
type Aggregator struct {
	store  *ledger.Store
	logger *slog.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(store *ledger.Store, logger *slog.Logger) *Aggregator {
	return &Aggregator{store: store, logger: logger}
}

// Get returns the balance of q.Account.
//
// An account with sub-accounts sums the bookings of its direct children over
// all dates; its own bookings are not counted. A leaf account sums its own
// bookings, restricted to the journal entry dates in [Start, End].
func (a *Aggregator) Get(ctx context.Context, q Query) (Balance, error) {
	acct, err := accounts.NewService(a.store, a.logger).Resolve(ctx, q.Account)
	if err != nil {
		return Balance{}, err
	}

	children, err := a.store.ChildAccounts(ctx, acct.ID)
	if err != nil {
		return Balance{}, err
	}

	bal, err := a.balance(ctx, acct, len(children) > 0, q)
	if err != nil {
		return Balance{}, err
	}
	a.logger.Debug("saldo computed", "account", acct.Name, "saldo", bal.Saldo.StringFixed(2), "virtual", bal.Virtual.StringFixed(2))
	return bal, nil
}

func (a *Aggregator) balance(ctx context.Context, acct model.Account, hasChildren bool, q Query) (Balance, error) {
	var bq ledger.BookingQuery
	var vq ledger.VirtualQuery
	if hasChildren {
		bq.ParentAccountID = acct.ID
		vq.ParentAccountID = acct.ID
	} else {
		bq = ledger.BookingQuery{AccountIDs: []int64{acct.ID}, From: q.Start, To: q.End}
		vq = ledger.VirtualQuery{AccountIDs: []int64{acct.ID}, From: q.Start, To: q.End}
	}

	sum, _, err := a.store.SumBookings(ctx, bq)
	if err != nil {
		return Balance{}, fmt.Errorf("summing bookings of %s: %w", acct.Name, err)
	}
	bal := Balance{Saldo: sum.RoundBank(2), Virtual: decimal.Zero, WithVirtual: q.WithVirtual}

	if q.WithVirtual {
		vsum, _, err := a.store.SumVirtualBookings(ctx, vq)
		if err != nil {
			return Balance{}, fmt.Errorf("summing virtual bookings of %s: %w", acct.Name, err)
		}
		bal.Virtual = vsum.RoundBank(2)
	}
	return bal, nil
}

// Line is one account of a balance report.
type Line struct {
	Account model.Account
	Depth   int
	Balance Balance
}

// Report returns the balance of every account in tree order.
func (a *Aggregator) Report(ctx context.Context, q Query) ([]Line, error) {
	tree, err := accounts.NewService(a.store, a.logger).LoadTree(ctx)
	if err != nil {
		return nil, err
	}

	var lines []Line
	err = tree.Walk(accounts.DefaultMaxDepth, func(acct model.Account, depth int) error {
		bal, err := a.balance(ctx, acct, tree.HasChildren(acct.ID), q)
		if err != nil {
			return err
		}
		lines = append(lines, Line{Account: acct, Depth: depth, Balance: bal})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}
