package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/detailpos/detailpos/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Pricing    PricingConfig    `validate:"required"`
	Cache      CacheConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// PricingConfig carries the store-level pricing knobs consumed by the
// checkout engine: sales tax rate, the fixed loyalty points to dollars
// conversion rate, and the display currency.
type PricingConfig struct {
	// TaxRate is the sales tax rate as a fraction, e.g. 0.08 for 8%
	TaxRate float64 `validate:"gte=0,lt=1"`
	// LoyaltyRatePerPoint is the dollar value of a single loyalty point
	LoyaltyRatePerPoint float64 `validate:"gte=0"`
	// Currency is the 3 digit ISO code in lowercase, e.g. usd
	Currency string `validate:"required"`
}

type CacheConfig struct {
	Enabled bool
}

// GetDSN builds the postgres connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode,
	)
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/detailpos")

	v.SetEnvPrefix("DETAILPOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// TaxRateDecimal returns the configured tax rate as a decimal fraction
func (c *Configuration) TaxRateDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.Pricing.TaxRate)
}

// LoyaltyRateDecimal returns the configured per-point dollar value
func (c *Configuration) LoyaltyRateDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.Pricing.LoyaltyRatePerPoint)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Pricing: PricingConfig{
			TaxRate:             0.08,
			LoyaltyRatePerPoint: 0.01,
			Currency:            "usd",
		},
		Cache: CacheConfig{Enabled: true},
	}
}
