package report

import (
	"strings"

	"github.com/kontor-dev/kontor/internal/accounts"
	"github.com/kontor-dev/kontor/internal/model"
	"github.com/kontor-dev/kontor/internal/saldo"
)

func treePrefix(depth int) string {
	return strings.Repeat("┃ ", depth) + "┣━"
}

// AccountTree draws the chart of accounts, one line per account.
func AccountTree(tree *accounts.Tree) ([]string, error) {
	var lines []string
	err := tree.Walk(accounts.DefaultMaxDepth, func(acct model.Account, depth int) error {
		lines = append(lines, treePrefix(depth)+acct.Name)
		return nil
	})
	return lines, err
}

// SaldoTree draws the chart of accounts with the balance of every account.
func SaldoTree(lines []saldo.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = treePrefix(l.Depth) + l.Account.Name + "  " + l.Balance.String()
	}
	return out
}
