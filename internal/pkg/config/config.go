package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.)
// - default: Values common across all environments, standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	DB     DBConfig
	CORS   CORSConfig
	Log    LogConfig
	Engine EngineConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,X-Employee-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// EngineConfig holds the pricing and rental constants consumed by the
// transaction engine. Values are parsed into decimals once at bootstrap and
// injected as engine.Settings; nothing reads them through global state.
type EngineConfig struct {
	TaxMultiplier    string `envconfig:"TAX_MULTIPLIER" default:"1.06"`
	LateFeeRate      string `envconfig:"LATE_FEE_RATE" default:"0.10"`
	RentalPeriodDays int    `envconfig:"RENTAL_PERIOD_DAYS" default:"14"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func (c *EngineConfig) TaxMultiplierDecimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.TaxMultiplier)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid TAX_MULTIPLIER %q: %w", c.TaxMultiplier, err)
	}
	if d.LessThan(decimal.NewFromInt(1)) {
		return decimal.Decimal{}, fmt.Errorf("TAX_MULTIPLIER %q must be >= 1", c.TaxMultiplier)
	}
	return d, nil
}

func (c *EngineConfig) LateFeeRateDecimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.LateFeeRate)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid LATE_FEE_RATE %q: %w", c.LateFeeRate, err)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("LATE_FEE_RATE %q must not be negative", c.LateFeeRate)
	}
	return d, nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level:      "error",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Engine: EngineConfig{
			TaxMultiplier:    "1.06",
			LateFeeRate:      "0.10",
			RentalPeriodDays: 14,
		},
	}
}
