package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
appUrl: https://wallet.example.com/
server:
  port: 9090
  readTimeout: 5
database:
  host: db.internal
  username: wallet
  database: wallet_funding
  connMaxLifetime: 2
payment:
  minAmount: 5000
  gateways:
    zarinpal:
      sandbox: true
redis:
  callbackLockTtl: 45
`

func writeConfig(t *testing.T, env, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, env+".yaml"), []byte(body), 0o600))
	return dir
}

func TestLoadConfigFrom(t *testing.T) {
	dir := writeConfig(t, Test, testYAML)

	cfg, err := LoadConfigFrom(Test, dir)
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, int64(5000), cfg.Payment.MinAmount)
	assert.Equal(t, int64(1000), cfg.Payment.AdminMinAmount)
	assert.Equal(t, int64(9_999_999_999), cfg.Payment.MaxAmount)
	assert.Equal(t, 15*time.Second, cfg.Payment.GatewayTimeout)
	assert.Equal(t, 45*time.Second, cfg.Redis.CallbackLockTTL)
	assert.Equal(t, int64(5000), cfg.Transaction.LockTimeoutMs)
	assert.Equal(t, "payir", cfg.Payment.DefaultGateway)

	assert.Equal(t, "https://wallet.example.com/api/payment/callback", cfg.Payment.CallbackURL)

	zp := cfg.Payment.Gateways.Zarinpal
	assert.Equal(t, "https://sandbox.zarinpal.com/pg/v4", zp.BaseURL)
	assert.Equal(t, "https://sandbox.zarinpal.com/pg/StartPay", zp.GatewayBase)
}

func TestLoadConfigFrom_EnvOverrides(t *testing.T) {
	dir := writeConfig(t, Test, testYAML)

	t.Setenv("WP_DB_HOST", "override.internal")
	t.Setenv("WP_SERVER_PORT", "7070")
	t.Setenv("WP_JWT_SECRET", "from-env")
	t.Setenv("WP_CALLBACK_URL", "https://cb.example.com/hook")
	t.Setenv("WP_DEFAULT_GATEWAY", " ZarinPal ")
	t.Setenv("WP_TRANSACTION_MAX_RETRIES", "0")
	t.Setenv("WP_ZARINPAL_SANDBOX", "false")
	t.Setenv("WP_SEED_DEFAULT_USERS", "true")
	t.Setenv("WP_DB_MAX_OPEN_CONNS", "not-a-number")

	cfg, err := LoadConfigFrom(Test, dir)
	require.NoError(t, err)

	assert.Equal(t, "override.internal", cfg.Database.Host)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "https://cb.example.com/hook", cfg.Payment.CallbackURL)
	assert.Equal(t, "zarinpal", cfg.Payment.DefaultGateway)
	assert.Equal(t, 0, cfg.Transaction.MaxRetries)
	assert.False(t, cfg.Payment.Gateways.Zarinpal.Sandbox)
	assert.Equal(t, "https://api.zarinpal.com/pg/v4", cfg.Payment.Gateways.Zarinpal.BaseURL)
	assert.True(t, cfg.Seed.DefaultUsers)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
}

func TestLoadConfigFrom_MissingFile(t *testing.T) {
	_, err := LoadConfigFrom(Production, t.TempDir())
	assert.Error(t, err)
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("WP_ENV", "")
	assert.Equal(t, Development, getEnvironment())

	t.Setenv("WP_ENV", "PRODUCTION")
	assert.Equal(t, Production, getEnvironment())
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("WP_TEST_INT", "12")
	assert.Equal(t, 12, getEnvInt("WP_TEST_INT", 3))

	t.Setenv("WP_TEST_INT", "twelve")
	assert.Equal(t, 3, getEnvInt("WP_TEST_INT", 3))

	assert.Equal(t, -1, getEnvInt("WP_TEST_INT_UNSET", -1))
}
