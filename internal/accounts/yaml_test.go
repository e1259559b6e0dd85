package accounts

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontor-dev/kontor/internal/apperrors"
)

const chartYAML = `
Income:
  - Sales
  - Consulting
Expenses:
  Office:
    - Supplies
    - Software
  Travel:
VAT_IN:
VAT_OUT:
`

func TestParseYAML(t *testing.T) {
	nodes, err := ParseYAML(strings.NewReader(chartYAML))
	require.NoError(t, err)

	want := []Node{
		{Name: "Income", Children: []Node{{Name: "Sales"}, {Name: "Consulting"}}},
		{Name: "Expenses", Children: []Node{
			{Name: "Office", Children: []Node{{Name: "Supplies"}, {Name: "Software"}}},
			{Name: "Travel"},
		}},
		{Name: "VAT_IN"},
		{Name: "VAT_OUT"},
	}
	assert.Equal(t, want, nodes)
}

func TestParseYAMLMixedSequence(t *testing.T) {
	nodes, err := ParseYAML(strings.NewReader("Assets:\n  - Bank\n  - Cash:\n      - Wallet\n"))
	require.NoError(t, err)

	want := []Node{{Name: "Assets", Children: []Node{
		{Name: "Bank"},
		{Name: "Cash", Children: []Node{{Name: "Wallet"}}},
	}}}
	assert.Equal(t, want, nodes)
}

func TestParseYAMLRejectsNonStrings(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"int leaf", "Income:\n  - 42\n"},
		{"bool key", "true:\n  - Sales\n"},
		{"separator in name", "Income:\n  - \"A:B\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestParseYAMLEmpty(t *testing.T) {
	nodes, err := ParseYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestImportYAML(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.ImportYAML(ctx, strings.NewReader(chartYAML))
	require.NoError(t, err)
	assert.Equal(t, 10, created)

	acct, err := svc.Resolve(ctx, "Expenses:Office:Software")
	require.NoError(t, err)

	tree, err := svc.LoadTree(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Expenses:Office:Software", tree.Path(acct.ID))
}
