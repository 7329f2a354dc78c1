// Package config loads application configuration from config files and the
// environment using viper. Tariff constants live here so tests and alternate
// tariff regimes can substitute them instead of relying on ambient globals.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	ierr "github.com/luminapower/propdeck/internal/errors"
	"github.com/luminapower/propdeck/internal/types"
)

type Configuration struct {
	Deployment Deployment    `mapstructure:"deployment"`
	Server     ServerConfig  `mapstructure:"server"`
	Logging    LoggingConfig `mapstructure:"logging"`
	Sentry     SentryConfig  `mapstructure:"sentry"`
	Tariff     TariffConfig  `mapstructure:"tariff"`
	Render     RenderConfig  `mapstructure:"render"`
}

type Deployment struct {
	Mode string `mapstructure:"mode"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type LoggingConfig struct {
	Level          types.LogLevel `mapstructure:"level"`
	FluentdEnabled bool           `mapstructure:"fluentd_enabled"`
	FluentdHost    string         `mapstructure:"fluentd_host"`
	FluentdPort    int            `mapstructure:"fluentd_port"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// TariffConfig holds the utility tariff constants as decimal strings.
// Defaults are the ENEL CE rates the commercial deck is calibrated against.
type TariffConfig struct {
	EnergyRate       string `mapstructure:"energy_rate"`        // TE
	DistributionRate string `mapstructure:"distribution_rate"`  // TUSD
	ICMSRate         string `mapstructure:"icms_rate"`          // state VAT
	PISCofinsRate    string `mapstructure:"pis_cofins_rate"`    // federal taxes
}

// RenderConfig bounds the template upload accepted by the HTTP layer
type RenderConfig struct {
	MaxUploadSizeMB int64 `mapstructure:"max_upload_size_mb"`
}

// NewConfig loads configuration from ./config/config.yaml and the environment.
// Environment variables use the PROPDECK_ prefix with _ as the separator,
// ex PROPDECK_SERVER_ADDRESS.
func NewConfig() (*Configuration, error) {
	// Load .env if present; ignore absence silently
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.SetEnvPrefix("propdeck")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, ierr.WithError(err).
				WithHint("Failed to read configuration file").
				Mark(ierr.ErrSystem)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to parse configuration").
			Mark(ierr.ErrSystem)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", "api")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("tariff.energy_rate", "0.27291")
	v.SetDefault("tariff.distribution_rate", "0.44929")
	v.SetDefault("tariff.icms_rate", "0.2")
	v.SetDefault("tariff.pis_cofins_rate", "0.05")
	v.SetDefault("render.max_upload_size_mb", 50)
	v.SetDefault("sentry.sample_rate", 1.0)
}

// Validate checks the configuration is internally consistent
func (c *Configuration) Validate() error {
	if _, _, _, _, err := c.Tariff.Rates(); err != nil {
		return err
	}
	if c.Render.MaxUploadSizeMB <= 0 {
		return ierr.NewError("max_upload_size_mb must be positive").
			WithHint("Render upload size limit must be a positive number of megabytes").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Rates parses the configured tariff constants into decimals
func (t TariffConfig) Rates() (energy, distribution, icms, pisCofins decimal.Decimal, err error) {
	parse := func(name, raw string) (decimal.Decimal, error) {
		d, perr := decimal.NewFromString(raw)
		if perr != nil {
			return decimal.Zero, ierr.WithError(perr).
				WithHint("Tariff rates must be decimal numbers").
				WithReportableDetails(map[string]any{
					"rate":  name,
					"value": raw,
				}).
				Mark(ierr.ErrValidation)
		}
		return d, nil
	}

	if energy, err = parse("energy_rate", t.EnergyRate); err != nil {
		return
	}
	if distribution, err = parse("distribution_rate", t.DistributionRate); err != nil {
		return
	}
	if icms, err = parse("icms_rate", t.ICMSRate); err != nil {
		return
	}
	pisCofins, err = parse("pis_cofins_rate", t.PISCofinsRate)
	return
}

// GetDefaultConfig returns a configuration with built-in defaults, used by
// scripts and tests that do not go through NewConfig
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: Deployment{Mode: "local"},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelInfo},
		Tariff: TariffConfig{
			EnergyRate:       "0.27291",
			DistributionRate: "0.44929",
			ICMSRate:         "0.2",
			PISCofinsRate:    "0.05",
		},
		Render: RenderConfig{MaxUploadSizeMB: 50},
	}
}
