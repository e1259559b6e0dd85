package saldo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontor-dev/kontor/internal/apperrors"
	"github.com/kontor-dev/kontor/internal/ledger"
	"github.com/kontor-dev/kontor/internal/ledger/ledgertest"
	"github.com/kontor-dev/kontor/internal/logging"
	"github.com/kontor-dev/kontor/internal/model"
)

func setup(t *testing.T) (*ledger.Store, *Aggregator) {
	t.Helper()
	store := ledgertest.New(t)
	return store, NewAggregator(store, logging.Discard())
}

func TestLeafSaldo(t *testing.T) {
	ctx := context.Background()
	store, agg := setup(t)
	acct := ledgertest.Account(t, store, "Cash", 0)

	for i, v := range []string{"10.00", "-3.50", "2.00"} {
		e := ledgertest.Entry(t, store, ledgertest.Date(2020, 3, i+1), v)
		ledgertest.Booking(t, store, acct, e, v)
	}

	bal, err := agg.Get(ctx, Query{Account: "Cash"})
	require.NoError(t, err)
	assert.Equal(t, "8.50", bal.Saldo.StringFixed(2))
	assert.Equal(t, "8.50", bal.String())
	assert.False(t, bal.WithVirtual)
}

func TestLeafSaldoDateRange(t *testing.T) {
	ctx := context.Background()
	store, agg := setup(t)
	acct := ledgertest.Account(t, store, "Cash", 0)

	march := ledgertest.Entry(t, store, ledgertest.Date(2020, 3, 31), "10")
	april := ledgertest.Entry(t, store, ledgertest.Date(2020, 4, 1), "5")
	ledgertest.Booking(t, store, acct, march, "10")
	ledgertest.Booking(t, store, acct, april, "5")

	bal, err := agg.Get(ctx, Query{Account: "Cash", Start: ledgertest.Date(2020, 3, 1), End: ledgertest.Date(2020, 3, 31)})
	require.NoError(t, err)
	assert.Equal(t, "10.00", bal.Saldo.StringFixed(2), "end date is inclusive")

	bal, err = agg.Get(ctx, Query{Account: "Cash", Start: ledgertest.Date(2020, 4, 1)})
	require.NoError(t, err)
	assert.Equal(t, "15.00", bal.Saldo.StringFixed(2), "one bound alone does not filter")
}

func TestParentSumsDirectChildren(t *testing.T) {
	ctx := context.Background()
	store, agg := setup(t)
	parent := ledgertest.Account(t, store, "Expenses", 0)
	rent := ledgertest.Account(t, store, "Rent", parent.ID)
	food := ledgertest.Account(t, store, "Food", parent.ID)
	ledgertest.Account(t, store, "Empty", parent.ID)

	e1 := ledgertest.Entry(t, store, ledgertest.Date(2019, 1, 1), "-240")
	e2 := ledgertest.Entry(t, store, ledgertest.Date(2020, 1, 1), "0")
	ledgertest.Booking(t, store, rent, e1, "-240.00")
	ledgertest.Booking(t, store, food, e2, "0.00")
	// The parent's own booking is shadowed by its children.
	ledgertest.Booking(t, store, parent, e1, "-999")

	bal, err := agg.Get(ctx, Query{
		Account: "Expenses",
		Start:   ledgertest.Date(2020, 1, 1),
		End:     ledgertest.Date(2020, 12, 31),
	})
	require.NoError(t, err)
	assert.Equal(t, "-240.00", bal.Saldo.StringFixed(2), "no date filter on parents")
}

func TestParentWithoutChildBookings(t *testing.T) {
	ctx := context.Background()
	store, agg := setup(t)
	parent := ledgertest.Account(t, store, "Income", 0)
	ledgertest.Account(t, store, "Sales", parent.ID)

	e := ledgertest.Entry(t, store, ledgertest.Date(2020, 1, 1), "50")
	ledgertest.Booking(t, store, parent, e, "50")

	bal, err := agg.Get(ctx, Query{Account: "Income"})
	require.NoError(t, err)
	assert.Equal(t, "0.00", bal.Saldo.StringFixed(2))
}

func TestParentSumsOnlyDirectChildren(t *testing.T) {
	ctx := context.Background()
	store, agg := setup(t)
	top := ledgertest.Account(t, store, "Top", 0)
	mid := ledgertest.Account(t, store, "Mid", top.ID)
	leaf := ledgertest.Account(t, store, "Leaf", mid.ID)

	e := ledgertest.Entry(t, store, ledgertest.Date(2020, 1, 1), "7")
	ledgertest.Booking(t, store, leaf, e, "7")

	bal, err := agg.Get(ctx, Query{Account: "Top"})
	require.NoError(t, err)
	assert.True(t, bal.Saldo.IsZero())

	bal, err = agg.Get(ctx, Query{Account: "Mid"})
	require.NoError(t, err)
	assert.Equal(t, "7.00", bal.Saldo.StringFixed(2))
}

func TestVirtualSaldo(t *testing.T) {
	ctx := context.Background()
	store, agg := setup(t)
	parent := ledgertest.Account(t, store, "Receivables", 0)
	client := ledgertest.Account(t, store, "Client", parent.ID)

	e := ledgertest.Entry(t, store, ledgertest.Date(2020, 2, 1), "100")
	ledgertest.Booking(t, store, client, e, "100")
	for _, v := range []model.VirtualBooking{
		{AccountID: client.ID, Date: ledgertest.Date(2020, 1, 15), Value: ledgertest.Dec("250")},
		{AccountID: client.ID, Date: ledgertest.Date(2020, 6, 15), Value: ledgertest.Dec("80.5")},
	} {
		_, err := store.CreateVirtualBooking(ctx, v)
		require.NoError(t, err)
	}

	bal, err := agg.Get(ctx, Query{Account: "Client", WithVirtual: true,
		Start: ledgertest.Date(2020, 1, 1), End: ledgertest.Date(2020, 3, 31)})
	require.NoError(t, err)
	assert.Equal(t, "100.00 (virtual 250.00)", bal.String())
	assert.Equal(t, "350.00", bal.Total().StringFixed(2))

	bal, err = agg.Get(ctx, Query{Account: "Receivables", WithVirtual: true})
	require.NoError(t, err)
	assert.Equal(t, "100.00", bal.Saldo.StringFixed(2))
	assert.Equal(t, "330.50", bal.Virtual.StringFixed(2))

	bal, err = agg.Get(ctx, Query{Account: "Receivables"})
	require.NoError(t, err)
	assert.True(t, bal.Virtual.IsZero())
}

func TestGetUnknownAccount(t *testing.T) {
	_, agg := setup(t)
	_, err := agg.Get(context.Background(), Query{Account: "Nope"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReport(t *testing.T) {
	ctx := context.Background()
	store, agg := setup(t)
	parent := ledgertest.Account(t, store, "Expenses", 0)
	rent := ledgertest.Account(t, store, "Rent", parent.ID)
	ledgertest.Account(t, store, "VAT_IN", 0)

	e := ledgertest.Entry(t, store, ledgertest.Date(2020, 1, 1), "-240")
	ledgertest.Booking(t, store, rent, e, "-240")

	lines, err := agg.Report(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, "Expenses", lines[0].Account.Name)
	assert.Equal(t, 0, lines[0].Depth)
	assert.Equal(t, "-240.00", lines[0].Balance.Saldo.StringFixed(2))
	assert.Equal(t, "Rent", lines[1].Account.Name)
	assert.Equal(t, 1, lines[1].Depth)
	assert.Equal(t, "VAT_IN", lines[2].Account.Name)
	assert.Equal(t, "0.00", lines[2].Balance.Saldo.StringFixed(2))
}
