package accounts

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontor-dev/kontor/internal/apperrors"
	"github.com/kontor-dev/kontor/internal/model"
)

func TestRoundTrip(t *testing.T) {
	accounts := []model.Account{
		{ID: 1, Name: "Expenses"},
		{ID: 2, Name: "Office, Home", ParentID: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, accounts))
	assert.True(t, strings.HasPrefix(buf.String(), "account_id,account_name,parent_id\n"))

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	assert.Equal(t, accounts, got)
}

func TestUnmarshalAccountErrors(t *testing.T) {
	tests := []struct {
		name   string
		record []string
	}{
		{"wrong field count", []string{"1", "A"}},
		{"bad id", []string{"x", "A", ""}},
		{"bad parent", []string{"1", "A", "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalAccount(tt.record)
			assert.Error(t, err)
		})
	}
}

func TestImportCSVRemapsIDs(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	// Child before parent, file ids unrelated to store ids.
	in := "account_id,account_name,parent_id\n" +
		"20,Office,10\n" +
		"10,Expenses,\n" +
		"30,Paper,20\n"

	created, err := svc.ImportCSV(ctx, strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	paper, err := svc.Resolve(ctx, "Expenses:Office:Paper")
	require.NoError(t, err)
	assert.NotEqual(t, int64(30), paper.ID)

	var out bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, &out))
	exported, err := ReadAccounts(&out)
	require.NoError(t, err)
	assert.Len(t, exported, 3)
}

func TestImportCSVInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unknown parent", "account_id,account_name,parent_id\n1,A,\n2,B,9\n"},
		{"duplicate id", "account_id,account_name,parent_id\n1,A,\n1,B,\n"},
		{"cycle", "account_id,account_name,parent_id\n1,A,2\n2,B,1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService(t).ImportCSV(context.Background(), strings.NewReader(tt.in))
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}
