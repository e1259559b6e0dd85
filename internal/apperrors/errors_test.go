package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverallocationError(t *testing.T) {
	err := fmt.Errorf("booking entry 3: %w", &OverallocationError{
		Requested: decimal.RequireFromString("50"),
		Remaining: decimal.RequireFromString("40"),
	})

	assert.ErrorIs(t, err, ErrOverallocation)
	assert.NotErrorIs(t, err, ErrAllocationExhausted)
	assert.Equal(t, "booking entry 3: cannot book 50.00, only 40.00 remaining", err.Error())

	var oe *OverallocationError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, "40", oe.Remaining.String())
}
