package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10.0, cfg.TaxRatePercent)
	assert.Equal(t, "USD", cfg.BaseCurrency)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("TAX_RATE_PERCENT", "7.5")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("OUTBOX_POLL_INTERVAL", "250ms")
	t.Setenv("CURRENCY_RATES", `{"EUR":0.9,"GBP":0.8}`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 7.5, cfg.TaxRatePercent)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 250*time.Millisecond, cfg.OutboxPollInterval)
	assert.Equal(t, map[string]float64{"EUR": 0.9, "GBP": 0.8}, cfg.CurrencyRates)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("TAX_RATE_PERCENT", "ten")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsMalformedRates(t *testing.T) {
	t.Setenv("CURRENCY_RATES", "EUR=0.9")
	_, err := Load()
	assert.Error(t, err)
}
