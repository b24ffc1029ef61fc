package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "usd", cfg.Currency)
	assert.Equal(t, time.Hour, cfg.CartTTL)
	assert.Equal(t, "checkout-api", cfg.ServiceName)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("KAFKA_BROKERS", "b1:9092, b2:9092,")
	t.Setenv("CART_TTL", "30m")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, []string{"b1:9092", "b2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Minute, cfg.CartTTL)
}

func TestGetdurRejectsGarbage(t *testing.T) {
	t.Setenv("CART_TTL", "not-a-duration")
	assert.Equal(t, time.Hour, getdur("CART_TTL", time.Hour))

	t.Setenv("CART_TTL", "-5m")
	assert.Equal(t, time.Hour, getdur("CART_TTL", time.Hour))
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitCSV("a,b"))
	assert.Equal(t, []string{"a"}, splitCSV(" a , ,"))
	assert.Empty(t, splitCSV(""))
}
