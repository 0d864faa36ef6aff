package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeRangeOverlaps(t *testing.T) {
	mk := func(a, b string) TimeRange {
		r, err := NewTimeRange(a, b)
		require.NoError(t, err)
		return r
	}
	cases := []struct {
		a, b TimeRange
		want bool
	}{
		{mk("09:00", "10:00"), mk("09:30", "10:30"), true},
		{mk("09:00", "10:00"), mk("10:00", "11:00"), false},
		{mk("10:00", "11:00"), mk("09:00", "10:00"), false},
		{mk("09:00", "12:00"), mk("10:00", "11:00"), true},
		{mk("09:00", "10:00"), mk("11:00", "12:00"), false},
	}
	for i, c := range cases {
		assert.Equal(t, c.want, c.a.Overlaps(c.b), "case %d", i)
		assert.Equal(t, c.want, c.b.Overlaps(c.a), "case %d reversed", i)
	}
}

func TestNewTimeRangeRejects(t *testing.T) {
	_, err := NewTimeRange("10:00", "10:00")
	assert.True(t, IsValidation(err))
	_, err = NewTimeRange("ab", "10:00")
	assert.True(t, IsValidation(err))
}

func TestClock(t *testing.T) {
	c, err := ParseClock("07:45:00")
	require.NoError(t, err)
	assert.Equal(t, "07:45", c.String())
	end, ok := c.Add(90)
	assert.True(t, ok)
	assert.Equal(t, "09:15", end.String())
	_, ok = c.Add(24 * 60)
	assert.False(t, ok)
	late, _ := ParseClock("23:00")
	_, ok = late.Add(60)
	assert.False(t, ok)
}

func TestComputeOrderTotals(t *testing.T) {
	tot, err := ComputeOrderTotals([]ItemPricing{{UnitPrice: 10000, Quantity: 2}, {UnitPrice: 6000, Quantity: 1}}, 1000)
	require.NoError(t, err)
	assert.Equal(t, []int64{20000, 6000}, tot.Subtotals)
	assert.Equal(t, int64(26000), tot.Gross)
	assert.Equal(t, int64(25000), tot.Total)

	tot, err = ComputeOrderTotals([]ItemPricing{{UnitPrice: 500, Quantity: 1}}, 500)
	require.NoError(t, err)
	assert.Zero(t, tot.Total)

	_, err = ComputeOrderTotals([]ItemPricing{{UnitPrice: 500, Quantity: 1}}, 501)
	assert.True(t, IsValidation(err))
	_, err = ComputeOrderTotals([]ItemPricing{{UnitPrice: 500, Quantity: 0}}, 0)
	assert.True(t, IsValidation(err))
	_, err = ComputeOrderTotals(nil, -1)
	assert.True(t, IsValidation(err))
}

func TestPaymentStatusFor(t *testing.T) {
	assert.Equal(t, PaymentUnpaid, PaymentStatusFor(1000, 0))
	assert.Equal(t, PaymentPartial, PaymentStatusFor(1000, 1))
	assert.Equal(t, PaymentPaid, PaymentStatusFor(1000, 1000))
	assert.Equal(t, PaymentPaid, PaymentStatusFor(0, 0))
}

func TestErrorHelpersSeeWrappedErrors(t *testing.T) {
	err := fmt.Errorf("outer: %w", ConflictError{Resource: "order", Code: CodeInvalidStatus})
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))

	var ce ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, CodeInvalidStatus, ce.ErrorCode())
	assert.Equal(t, CodeConflict, ConflictError{}.ErrorCode())
	assert.Equal(t, CodeValidation, ValidationError{}.ErrorCode())
	assert.True(t, IsRateLimited(RateLimitError{}))
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, Pagination{Page: 2, PageSize: 20, Total: 41, TotalPages: 3}, NewPagination(2, 20, 41))
	assert.Equal(t, 0, NewPagination(1, 20, 0).TotalPages)
}
