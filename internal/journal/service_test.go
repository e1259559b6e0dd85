package journal

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontor-dev/kontor/internal/apperrors"
	"github.com/kontor-dev/kontor/internal/ledger/ledgertest"
	"github.com/kontor-dev/kontor/internal/logging"
	"github.com/kontor-dev/kontor/internal/model"
)

func TestImport(t *testing.T) {
	ctx := context.Background()
	svc := NewService(ledgertest.New(t), logging.Discard())
	fixed := time.Date(2020, 4, 2, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	entries, err := ReadEntries(strings.NewReader(statement))
	require.NoError(t, err)

	stored, err := svc.Import(ctx, entries)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.NotZero(t, stored[0].ID)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, e := range all {
		assert.True(t, e.ImportedAt.Equal(fixed), "one import date per batch")
	}

	got, err := svc.Get(ctx, stored[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Hardware Store", got.Receiver)
	assert.True(t, got.Value.Equal(dec("-129.48")))
}

func TestImportInvalidStoresNothing(t *testing.T) {
	ctx := context.Background()
	svc := NewService(ledgertest.New(t), logging.Discard())

	_, err := svc.Import(ctx, []model.JournalEntry{
		{Date: date(2020, 1, 1), Value: dec("1"), Balance: dec("1")},
		{Date: date(2020, 1, 2), Value: dec("0.001"), Balance: dec("1")},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetMissing(t *testing.T) {
	svc := NewService(ledgertest.New(t), logging.Discard())
	_, err := svc.Get(context.Background(), 7)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
