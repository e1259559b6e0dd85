package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountIsRoot(t *testing.T) {
	tests := []struct {
		acct Account
		want bool
	}{
		{Account{ID: 1, Name: "Income"}, true},
		{Account{ID: 2, Name: "Consulting", ParentID: 1}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.acct.IsRoot(), "IsRoot(%q)", tt.acct.Name)
	}
}
