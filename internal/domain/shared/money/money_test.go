package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 450.85, Round2(450.846))
	assert.Equal(t, 450.84, Round2(450.844))
	assert.Equal(t, 100.0, Round2(100))
	assert.Equal(t, -12.35, Round2(-12.345000001))
}

func TestNewConverterValidatesCodes(t *testing.T) {
	_, err := NewConverter("us", nil)
	assert.ErrorIs(t, err, ErrInvalidCurrency)

	_, err = NewConverter("USD", map[string]float64{"EURO": 1.1})
	assert.ErrorIs(t, err, ErrInvalidCurrency)

	_, err = NewConverter("USD", map[string]float64{"EUR": -1})
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestConvert(t *testing.T) {
	c, err := NewConverter("USD", map[string]float64{"EUR": 0.9, "gbp": 0.8})
	require.NoError(t, err)

	got, err := c.Convert(100, "EUR")
	require.NoError(t, err)
	assert.InDelta(t, 90, got, 1e-9)

	// rate table keys are normalized to upper case
	got, err = c.Convert(100, "gbp")
	require.NoError(t, err)
	assert.InDelta(t, 80, got, 1e-9)

	// empty target and the base currency are identity conversions
	got, err = c.Convert(100, "")
	require.NoError(t, err)
	assert.Equal(t, 100.0, got)
	got, err = c.Convert(100, "usd")
	require.NoError(t, err)
	assert.Equal(t, 100.0, got)

	_, err = c.Convert(100, "JPY")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}
