package model

// Account is a node in the chart of accounts.
type Account struct {
	ID       int64
	Name     string
	ParentID int64 // 0 = top-level
}

// IsRoot reports whether the account has no parent.
func (a Account) IsRoot() bool {
	return a.ParentID == 0
}
