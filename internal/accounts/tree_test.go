package accounts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kontor-dev/kontor/internal/apperrors"
	"github.com/kontor-dev/kontor/internal/model"
)

func sampleTree() *Tree {
	return NewTree([]model.Account{
		{ID: 1, Name: "Income"},
		{ID: 2, Name: "Expenses"},
		{ID: 3, Name: "Sales", ParentID: 1},
		{ID: 4, Name: "Office", ParentID: 2},
		{ID: 5, Name: "Paper", ParentID: 4},
		{ID: 6, Name: "Travel", ParentID: 2},
	})
}

func TestWalkOrder(t *testing.T) {
	tree := sampleTree()

	var visited []string
	var depths []int
	err := tree.Walk(DefaultMaxDepth, func(acct model.Account, depth int) error {
		visited = append(visited, acct.Name)
		depths = append(depths, depth)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Income", "Sales", "Expenses", "Office", "Paper", "Travel"}, visited)
	assert.Equal(t, []int{0, 1, 0, 1, 2, 1}, depths)
}

func TestWalkMaxDepth(t *testing.T) {
	tree := sampleTree()

	err := tree.Walk(1, func(model.Account, int) error { return nil })
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	assert.NoError(t, tree.Walk(2, func(model.Account, int) error { return nil }))
}

func TestWalkStopsOnError(t *testing.T) {
	tree := sampleTree()
	stop := errors.New("stop")

	n := 0
	err := tree.Walk(DefaultMaxDepth, func(model.Account, int) error {
		n++
		if n == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, n)
}

func TestTreeQueries(t *testing.T) {
	tree := sampleTree()

	assert.Equal(t, 6, tree.Len())
	assert.Len(t, tree.Roots(), 2)
	assert.True(t, tree.HasChildren(2))
	assert.False(t, tree.HasChildren(6))
	assert.Equal(t, "Expenses:Office:Paper", tree.Path(5))
	assert.Equal(t, "Income", tree.Path(1))

	kids := tree.Children(2)
	require.Len(t, kids, 2)
	assert.Equal(t, "Office", kids[0].Name)
	assert.Equal(t, "Travel", kids[1].Name)

	acct, ok := tree.Get(3)
	assert.True(t, ok)
	assert.Equal(t, "Sales", acct.Name)
}

func TestOrphanBecomesRoot(t *testing.T) {
	tree := NewTree([]model.Account{{ID: 7, Name: "Orphan", ParentID: 99}})
	require.Len(t, tree.Roots(), 1)
	assert.Equal(t, "Orphan", tree.Roots()[0].Name)
}
