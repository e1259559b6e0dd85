package accounts

import (
	"fmt"
	"strings"

	"github.com/kontor-dev/kontor/internal/apperrors"
	"github.com/kontor-dev/kontor/internal/model"
)

// DefaultMaxDepth bounds tree traversal.
const DefaultMaxDepth = 32

// Tree is the chart of accounts as an adjacency list keyed by parent ID.
// Children keep the order in which the accounts were passed to NewTree.
type Tree struct {
	byID     map[int64]model.Account
	children map[int64][]int64
}

// NewTree builds a tree from a flat list of accounts. Accounts whose parent is
// not in the list are treated as roots.
func NewTree(accts []model.Account) *Tree {
	t := &Tree{
		byID:     make(map[int64]model.Account, len(accts)),
		children: make(map[int64][]int64),
	}
	for _, a := range accts {
		t.byID[a.ID] = a
	}
	for _, a := range accts {
		parent := a.ParentID
		if _, ok := t.byID[parent]; !ok {
			parent = 0
		}
		t.children[parent] = append(t.children[parent], a.ID)
	}
	return t
}

// Len returns the number of accounts.
func (t *Tree) Len() int {
	return len(t.byID)
}

// Get returns the account with the given ID.
func (t *Tree) Get(id int64) (model.Account, bool) {
	a, ok := t.byID[id]
	return a, ok
}

// Roots returns the top-level accounts.
func (t *Tree) Roots() []model.Account {
	return t.Children(0)
}

// Children returns the direct children of id.
func (t *Tree) Children(id int64) []model.Account {
	ids := t.children[id]
	out := make([]model.Account, 0, len(ids))
	for _, c := range ids {
		out = append(out, t.byID[c])
	}
	return out
}

// HasChildren reports whether id has at least one child.
func (t *Tree) HasChildren(id int64) bool {
	return len(t.children[id]) > 0
}

// Path returns the colon-separated names from the root down to id.
func (t *Tree) Path(id int64) string {
	var names []string
	for seen := 0; id != 0 && seen <= len(t.byID); seen++ {
		a, ok := t.byID[id]
		if !ok {
			break
		}
		names = append(names, a.Name)
		id = a.ParentID
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, PathSeparator)
}

// Walk visits every account depth-first, parents before children. depth is 0
// for top-level accounts. Walk fails if the tree is deeper than maxDepth or fn
// returns an error.
func (t *Tree) Walk(maxDepth int, fn func(acct model.Account, depth int) error) error {
	type frame struct {
		id    int64
		depth int
	}

	roots := t.children[0]
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{id: roots[i]})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth > maxDepth {
			return fmt.Errorf("account tree deeper than %d levels: %w", maxDepth, apperrors.ErrValidation)
		}
		if err := fn(t.byID[f.id], f.depth); err != nil {
			return err
		}

		kids := t.children[f.id]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: kids[i], depth: f.depth + 1})
		}
	}
	return nil
}
