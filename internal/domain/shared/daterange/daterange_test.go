package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewRejectsInvertedAndZeroLengthRanges(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{"checkout before checkin", day(2026, 6, 5), day(2026, 6, 1)},
		{"checkout equals checkin", day(2026, 6, 5), day(2026, 6, 5)},
		{"zero checkin", time.Time{}, day(2026, 6, 5)},
		{"zero checkout", day(2026, 6, 5), time.Time{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.checkIn, tc.checkOut)
			assert.ErrorIs(t, err, ErrInvalidRange)
		})
	}
}

func TestNights(t *testing.T) {
	dr, err := New(day(2026, 6, 1), day(2026, 6, 5))
	require.NoError(t, err)
	assert.Equal(t, 4, dr.Nights())
}

func TestOverlapsIsHalfOpen(t *testing.T) {
	base, err := New(day(2026, 6, 1), day(2026, 6, 5))
	require.NoError(t, err)

	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     bool
	}{
		{"touching at checkout is free", day(2026, 6, 5), day(2026, 6, 8), false},
		{"touching at checkin is free", day(2026, 5, 28), day(2026, 6, 1), false},
		{"one shared night overlaps", day(2026, 6, 4), day(2026, 6, 6), true},
		{"fully inside overlaps", day(2026, 6, 2), day(2026, 6, 3), true},
		{"fully covering overlaps", day(2026, 5, 30), day(2026, 6, 10), true},
		{"disjoint after", day(2026, 6, 10), day(2026, 6, 12), false},
		{"disjoint before", day(2026, 5, 20), day(2026, 5, 25), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			other, err := New(tc.checkIn, tc.checkOut)
			require.NoError(t, err)
			assert.Equal(t, tc.want, base.Overlaps(other))
			assert.Equal(t, tc.want, other.Overlaps(base))
		})
	}
}

func TestContainsDateExcludesCheckout(t *testing.T) {
	dr, err := New(day(2026, 6, 1), day(2026, 6, 5))
	require.NoError(t, err)

	assert.True(t, dr.ContainsDate(day(2026, 6, 1)))
	assert.True(t, dr.ContainsDate(day(2026, 6, 4)))
	assert.False(t, dr.ContainsDate(day(2026, 6, 5)))
	assert.False(t, dr.ContainsDate(day(2026, 5, 31)))
}

func TestExtend(t *testing.T) {
	dr, err := New(day(2026, 6, 1), day(2026, 6, 5))
	require.NoError(t, err)

	extended, err := dr.Extend(day(2026, 6, 8))
	require.NoError(t, err)
	assert.Equal(t, 7, extended.Nights())

	_, err = dr.Extend(day(2026, 5, 30))
	assert.ErrorIs(t, err, ErrInvalidRange)
}
