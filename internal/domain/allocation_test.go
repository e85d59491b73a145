package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func mustSecurity(t *testing.T, id, price string) Security {
	t.Helper()
	p, err := decimal.NewFromString(price)
	require.NoError(t, err)
	sec, err := NewSecurity(id, p)
	require.NoError(t, err)
	return sec
}

func weight(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	w, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return w
}

func TestNewTargetAllocation_Valid(t *testing.T) {
	alloc, err := NewTargetAllocation([]TargetEntry{
		{Weight: weight(t, "40"), Security: mustSecurity(t, "META", "150")},
		{Weight: weight(t, "60"), Security: mustSecurity(t, "AAPL", "180")},
	})
	require.NoError(t, err)
	require.Equal(t, 2, alloc.Len())

	entries := alloc.Entries()
	require.Equal(t, "META", entries[0].Security.ID())
	require.Equal(t, "AAPL", entries[1].Security.ID())
}

func TestNewTargetAllocation_SumBelow100(t *testing.T) {
	_, err := NewTargetAllocation([]TargetEntry{
		{Weight: weight(t, "40"), Security: mustSecurity(t, "META", "150")},
		{Weight: weight(t, "59.99"), Security: mustSecurity(t, "AAPL", "180")},
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrWeightSum))
}

func TestNewTargetAllocation_SumAbove100(t *testing.T) {
	_, err := NewTargetAllocation([]TargetEntry{
		{Weight: weight(t, "40.02"), Security: mustSecurity(t, "META", "150")},
		{Weight: weight(t, "59.99"), Security: mustSecurity(t, "AAPL", "180")},
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrWeightSum))
}

func TestNewTargetAllocation_ExactFractionalSum(t *testing.T) {
	// 33.33 + 33.33 + 33.34 == 100 exactly in decimal arithmetic
	_, err := NewTargetAllocation([]TargetEntry{
		{Weight: weight(t, "33.33"), Security: mustSecurity(t, "A", "1")},
		{Weight: weight(t, "33.33"), Security: mustSecurity(t, "B", "1")},
		{Weight: weight(t, "33.34"), Security: mustSecurity(t, "C", "1")},
	})
	require.NoError(t, err)
}

func TestNewTargetAllocation_NegativeWeight(t *testing.T) {
	_, err := NewTargetAllocation([]TargetEntry{
		{Weight: weight(t, "-30"), Security: mustSecurity(t, "META", "150")},
		{Weight: weight(t, "130"), Security: mustSecurity(t, "AAPL", "180")},
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidWeight))
}

func TestNewTargetAllocation_ZeroWeightAllowed(t *testing.T) {
	alloc, err := NewTargetAllocation([]TargetEntry{
		{Weight: weight(t, "0"), Security: mustSecurity(t, "META", "150")},
		{Weight: weight(t, "100"), Security: mustSecurity(t, "AAPL", "180")},
	})
	require.NoError(t, err)
	require.Equal(t, 2, alloc.Len())
}

func TestNewTargetAllocation_DuplicateSecurity(t *testing.T) {
	_, err := NewTargetAllocation([]TargetEntry{
		{Weight: weight(t, "50"), Security: mustSecurity(t, "META", "150")},
		{Weight: weight(t, "50"), Security: mustSecurity(t, "META", "151")},
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDuplicateSecurity))
}

func TestNewTargetAllocation_DuplicateCheckedBeforeWeights(t *testing.T) {
	// the input breaks every rule at once; the duplicate must win
	_, err := NewTargetAllocation([]TargetEntry{
		{Weight: weight(t, "-50"), Security: mustSecurity(t, "META", "150")},
		{Weight: weight(t, "-50"), Security: mustSecurity(t, "META", "151")},
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDuplicateSecurity))
}

func TestNewTargetAllocation_NegativeWeightCheckedBeforeSum(t *testing.T) {
	_, err := NewTargetAllocation([]TargetEntry{
		{Weight: weight(t, "-10"), Security: mustSecurity(t, "META", "150")},
		{Weight: weight(t, "60"), Security: mustSecurity(t, "AAPL", "180")},
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidWeight))
}

func TestNewTargetAllocation_EmptyFailsSum(t *testing.T) {
	_, err := NewTargetAllocation(nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrWeightSum))
}

func TestNewTargetAllocation_Idempotent(t *testing.T) {
	entries := []TargetEntry{
		{Weight: weight(t, "40"), Security: mustSecurity(t, "META", "150")},
		{Weight: weight(t, "60"), Security: mustSecurity(t, "AAPL", "180")},
	}

	first, err := NewTargetAllocation(entries)
	require.NoError(t, err)
	second, err := NewTargetAllocation(entries)
	require.NoError(t, err)

	require.Equal(t, first.Entries(), second.Entries())
}

func TestNewTargetAllocation_CopiesInput(t *testing.T) {
	entries := []TargetEntry{
		{Weight: weight(t, "100"), Security: mustSecurity(t, "META", "150")},
	}
	alloc, err := NewTargetAllocation(entries)
	require.NoError(t, err)

	entries[0].Weight = weight(t, "5")

	require.True(t, alloc.Entries()[0].Weight.Equal(weight(t, "100")))
}

func TestSingleTarget(t *testing.T) {
	alloc := SingleTarget(mustSecurity(t, "META", "150"))
	require.Equal(t, 1, alloc.Len())

	entries := alloc.Entries()
	require.Equal(t, "META", entries[0].Security.ID())
	require.True(t, entries[0].Weight.Equal(decimal.NewFromInt(100)))
}
