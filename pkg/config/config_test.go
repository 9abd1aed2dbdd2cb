package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestEnvIntDefault(t *testing.T) {
	t.Setenv("SHOP_TEST_PORT", "9090")
	assert.Equal(t, 9090, EnvIntDefault("SHOP_TEST_PORT", 1))

	t.Setenv("SHOP_TEST_PORT", "nope")
	assert.Equal(t, 1, EnvIntDefault("SHOP_TEST_PORT", 1))
}

func TestLoad(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://shop.db")
	t.Setenv("JWT_SECRET", "jwt")
	t.Setenv("SESSION_SECRET", "session")
	t.Setenv("KAFKA_BROKERS", "kafka:9092")
	t.Setenv("ES_INDEX", "")

	cfg := Load()
	assert.Equal(t, "sqlite://shop.db", cfg.DatabaseURL)
	assert.Equal(t, []byte("jwt"), cfg.JWTAccessSecret)
	assert.Equal(t, []byte("session"), cfg.SessionSecret)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "products", cfg.ESIndex)
}

func TestEnvBoolDefault(t *testing.T) {
	t.Setenv("SHOP_TEST_FLAG", "")
	assert.True(t, EnvBoolDefault("SHOP_TEST_FLAG", true))

	t.Setenv("SHOP_TEST_FLAG", "false")
	assert.False(t, EnvBoolDefault("SHOP_TEST_FLAG", true))

	t.Setenv("SHOP_TEST_FLAG", "1")
	assert.True(t, EnvBoolDefault("SHOP_TEST_FLAG", false))
}
