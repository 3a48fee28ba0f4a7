package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string            `mapstructure:"environment"`
	AppURL      string            `mapstructure:"appUrl"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Logger      LoggerConfig      `mapstructure:"logger"`
	Payment     PaymentConfig     `mapstructure:"payment"`
	Transaction TransactionConfig `mapstructure:"transaction"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Messaging   MessagingConfig   `mapstructure:"messaging"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Seed        SeedConfig        `mapstructure:"seed"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
	CORSAllowOrigins  []string      `mapstructure:"corsAllowOrigins"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
	LogLevel        string        `mapstructure:"logLevel"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// PaymentConfig contains the gateway and amount rules
type PaymentConfig struct {
	DefaultGateway string         `mapstructure:"defaultGateway"`
	CallbackURL    string         `mapstructure:"callbackUrl"`
	MinAmount      int64          `mapstructure:"minAmount"`
	AdminMinAmount int64          `mapstructure:"adminMinAmount"`
	MaxAmount      int64          `mapstructure:"maxAmount"`
	GatewayTimeout time.Duration  `mapstructure:"gatewayTimeout"` // seconds
	Gateways       GatewaysConfig `mapstructure:"gateways"`
}

// GatewaysConfig holds per-provider settings
type GatewaysConfig struct {
	Payir    PayirConfig    `mapstructure:"payir"`
	Zarinpal ZarinpalConfig `mapstructure:"zarinpal"`
}

// PayirConfig contains Pay.ir credentials and endpoints
type PayirConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"apiKey"`
	BaseURL string `mapstructure:"baseUrl"`

	// AlreadyVerifiedCodes are verify error codes that mean the token was verified before
	AlreadyVerifiedCodes []string `mapstructure:"alreadyVerifiedCodes"`
}

// ZarinpalConfig contains Zarinpal credentials and endpoints
type ZarinpalConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MerchantID  string `mapstructure:"merchantId"`
	BaseURL     string `mapstructure:"baseUrl"`
	GatewayBase string `mapstructure:"gatewayBase"`
	Sandbox     bool   `mapstructure:"sandbox"`
}

// TransactionConfig contains unit-of-work settings
type TransactionConfig struct {
	LockTimeoutMs int64 `mapstructure:"lockTimeoutMs"`
	MaxRetries    int   `mapstructure:"maxRetries"`
}

// AuthConfig contains bearer token verification settings
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwtSecret"`
	Issuer    string `mapstructure:"issuer"`
}

// RedisConfig contains the callback guard store. An empty Addr disables the guard.
type RedisConfig struct {
	Addr            string        `mapstructure:"addr"`
	Password        string        `mapstructure:"password"`
	DB              int           `mapstructure:"db"`
	CallbackLockTTL time.Duration `mapstructure:"callbackLockTtl"` // seconds
}

// MessagingConfig contains the event publisher settings. An empty NSQAddress disables publishing.
type MessagingConfig struct {
	NSQAddress  string `mapstructure:"nsqAddress"`
	WalletTopic string `mapstructure:"walletTopic"`
}

// MetricsConfig contains Prometheus exposition settings
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// SeedConfig controls development data
type SeedConfig struct {
	DefaultUsers bool `mapstructure:"defaultUsers"`
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}
