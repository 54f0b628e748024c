// Package config loads and validates sdtnames configuration via Viper.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/JakeFAU/sdtnames/internal/logging"
)

// EnvPrefix namespaces environment overrides, e.g. SDTNAMES_STUB_PORT=19090.
const EnvPrefix = "SDTNAMES"

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Stub    StubConfig    `mapstructure:"stub"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StubConfig controls the acknowledgement endpoint.
type StubConfig struct {
	Host                   string `mapstructure:"host"`
	Port                   int    `mapstructure:"port"`
	MaxBodyBytes           int64  `mapstructure:"max_body_bytes"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds"`
}

// LoggingConfig toggles zap development features and the minimum level.
type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Default returns the configuration used when no file or environment is present.
func Default() Config {
	return Config{
		Stub: StubConfig{
			Host:                   "127.0.0.1",
			Port:                   18080,
			MaxBodyBytes:           1 << 20,
			ShutdownTimeoutSeconds: 10,
		},
		Logging: LoggingConfig{
			Development: true,
			Level:       "info",
		},
	}
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("stub.host", def.Stub.Host)
	v.SetDefault("stub.port", def.Stub.Port)
	v.SetDefault("stub.max_body_bytes", def.Stub.MaxBodyBytes)
	v.SetDefault("stub.shutdown_timeout_seconds", def.Stub.ShutdownTimeoutSeconds)
	v.SetDefault("logging.development", def.Logging.Development)
	v.SetDefault("logging.level", def.Logging.Level)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Stub.Host) == "" {
		return fmt.Errorf("stub.host must be set")
	}
	if c.Stub.Port <= 0 || c.Stub.Port > 65535 {
		return fmt.Errorf("stub.port must be between 1 and 65535")
	}
	if c.Stub.MaxBodyBytes <= 0 {
		return fmt.Errorf("stub.max_body_bytes must be > 0")
	}
	if c.Stub.ShutdownTimeoutSeconds < 0 {
		return fmt.Errorf("stub.shutdown_timeout_seconds must be >= 0")
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// Addr joins the stub host and port into a listen address.
func (s StubConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ShutdownTimeout converts the shutdown budget into a duration.
func (s StubConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}
