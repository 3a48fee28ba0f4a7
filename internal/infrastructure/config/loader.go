package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "WP"

// CallbackPath is appended to the application URL when no callback URL is configured
const CallbackPath = "/api/payment/callback"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	return LoadConfigFrom(getEnvironment(), ConfigPaths...)
}

// LoadConfigFrom reads {env}.yaml from the given directories and applies environment overrides
func LoadConfigFrom(env string, paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)
	applyDerivedDefaults(&config)

	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("appUrl", "http://localhost:8080")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 30)      // seconds, covers a provider verify round trip
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds
	v.SetDefault("server.corsAllowOrigins", []string{"*"})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds
	v.SetDefault("database.logLevel", "warn")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	v.SetDefault("payment.defaultGateway", "payir")
	v.SetDefault("payment.minAmount", 1000)
	v.SetDefault("payment.adminMinAmount", 1000)
	v.SetDefault("payment.maxAmount", 9_999_999_999)
	v.SetDefault("payment.gatewayTimeout", 15) // seconds
	v.SetDefault("payment.gateways.payir.enabled", true)
	v.SetDefault("payment.gateways.payir.baseUrl", "https://pay.ir/pg")
	v.SetDefault("payment.gateways.zarinpal.enabled", true)
	v.SetDefault("payment.gateways.zarinpal.baseUrl", "https://api.zarinpal.com/pg/v4")
	v.SetDefault("payment.gateways.zarinpal.gatewayBase", "https://www.zarinpal.com/pg/StartPay")
	v.SetDefault("payment.gateways.zarinpal.sandbox", false)

	v.SetDefault("transaction.lockTimeoutMs", 5000)
	v.SetDefault("transaction.maxRetries", 3)

	v.SetDefault("auth.issuer", "")

	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.callbackLockTtl", 30) // seconds

	v.SetDefault("messaging.walletTopic", "wallet_events")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("seed.defaultUsers", false)
}

// getEnvironment determines the environment to use based on WP_ENV environment variable
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures environment variables override config values.
// Secrets are only ever expected from the environment.
func processEnvOverrides(v *viper.Viper) {
	stringOverrides := map[string]string{
		"WP_APP_URL":              "appUrl",
		"WP_DB_HOST":              "database.host",
		"WP_DB_PORT":              "database.port",
		"WP_DB_USERNAME":          "database.username",
		"WP_DB_PASSWORD":          "database.password",
		"WP_DB_NAME":              "database.database",
		"WP_DB_SSL_MODE":          "database.sslMode",
		"WP_SERVER_HOST":          "server.host",
		"WP_LOGGER_LEVEL":         "logger.level",
		"WP_DEFAULT_GATEWAY":      "payment.defaultGateway",
		"WP_CALLBACK_URL":         "payment.callbackUrl",
		"WP_PAYIR_API_KEY":        "payment.gateways.payir.apiKey",
		"WP_ZARINPAL_MERCHANT_ID": "payment.gateways.zarinpal.merchantId",
		"WP_JWT_SECRET":           "auth.jwtSecret",
		"WP_JWT_ISSUER":           "auth.issuer",
		"WP_REDIS_ADDR":           "redis.addr",
		"WP_REDIS_PASSWORD":       "redis.password",
		"WP_NSQ_ADDRESS":          "messaging.nsqAddress",
	}
	for env, key := range stringOverrides {
		if value := os.Getenv(env); value != "" {
			v.Set(key, value)
		}
	}

	if serverPort := getEnvInt("WP_SERVER_PORT", 0); serverPort > 0 {
		v.Set("server.port", serverPort)
	}
	if maxOpenConns := getEnvInt("WP_DB_MAX_OPEN_CONNS", 0); maxOpenConns > 0 {
		v.Set("database.maxOpenConns", maxOpenConns)
	}
	if maxIdleConns := getEnvInt("WP_DB_MAX_IDLE_CONNS", 0); maxIdleConns > 0 {
		v.Set("database.maxIdleConns", maxIdleConns)
	}
	if redisDB := getEnvInt("WP_REDIS_DB", -1); redisDB >= 0 {
		v.Set("redis.db", redisDB)
	}
	if lockTimeout := getEnvInt("WP_TRANSACTION_LOCK_TIMEOUT_MS", 0); lockTimeout > 0 {
		v.Set("transaction.lockTimeoutMs", lockTimeout)
	}
	if maxRetries := getEnvInt("WP_TRANSACTION_MAX_RETRIES", -1); maxRetries >= 0 {
		v.Set("transaction.maxRetries", maxRetries)
	}
	if sandbox := os.Getenv("WP_ZARINPAL_SANDBOX"); sandbox != "" {
		if enabled, err := strconv.ParseBool(sandbox); err == nil {
			v.Set("payment.gateways.zarinpal.sandbox", enabled)
		}
	}
	if seed := os.Getenv("WP_SEED_DEFAULT_USERS"); seed != "" {
		if enabled, err := strconv.ParseBool(seed); err == nil {
			v.Set("seed.defaultUsers", enabled)
		}
	}
}

// Helper function to get environment variable as int
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second

	config.Payment.GatewayTimeout = time.Duration(config.Payment.GatewayTimeout) * time.Second
	config.Redis.CallbackLockTTL = time.Duration(config.Redis.CallbackLockTTL) * time.Second
}

// applyDerivedDefaults fills values computed from other settings
func applyDerivedDefaults(config *Config) {
	if config.Payment.CallbackURL == "" {
		config.Payment.CallbackURL = strings.TrimRight(config.AppURL, "/") + CallbackPath
	}
	config.Payment.DefaultGateway = strings.ToLower(strings.TrimSpace(config.Payment.DefaultGateway))

	zp := &config.Payment.Gateways.Zarinpal
	if zp.Sandbox {
		zp.BaseURL = strings.Replace(zp.BaseURL, "://api.", "://sandbox.", 1)
		zp.GatewayBase = strings.Replace(zp.GatewayBase, "://www.", "://sandbox.", 1)
	}
}
