package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/hance08/tally/internal/constants"
)

// EnvPrefix prefixes every environment override, e.g. TALLY_STORAGE_BACKEND.
const EnvPrefix = "TALLY"

type Config struct {
	Storage    StorageConfig  `mapstructure:"storage"`
	Ledger     LedgerConfig   `mapstructure:"ledger"`
	Log        LogConfig      `mapstructure:"log"`
	Server     ServerConfig   `mapstructure:"server"`
	Defaults   DefaultsConfig `mapstructure:"defaults"`
	ConfigPath string         `mapstructure:"-"`
}

type StorageConfig struct {
	Backend      string `mapstructure:"backend"`
	Path         string `mapstructure:"path"`
	RepairOnOpen bool   `mapstructure:"repair_on_open"`
}

type LedgerConfig struct {
	AllowDisableWithBalance bool          `mapstructure:"allow_disable_with_balance"`
	AllowOverdraft          bool          `mapstructure:"allow_overdraft"`
	LockTimeout             time.Duration `mapstructure:"lock_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Env   string `mapstructure:"env"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DefaultsConfig struct {
	Currency string `mapstructure:"currency"`
}

func NewDefault() *Config {
	return &Config{
		Storage: StorageConfig{Backend: constants.BackendSQLite},
		Ledger: LedgerConfig{
			LockTimeout: 5 * time.Second,
		},
		Log:      LogConfig{Level: "warn", Env: "development"},
		Server:   ServerConfig{Addr: "127.0.0.1:8080"},
		Defaults: DefaultsConfig{Currency: constants.DefaultCurrency},
	}
}

// SetDefaults registers every key with v so environment variables can
// override keys that no config file mentions.
func SetDefaults(v *viper.Viper) {
	d := NewDefault()
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.repair_on_open", d.Storage.RepairOnOpen)
	v.SetDefault("ledger.allow_disable_with_balance", d.Ledger.AllowDisableWithBalance)
	v.SetDefault("ledger.allow_overdraft", d.Ledger.AllowOverdraft)
	v.SetDefault("ledger.lock_timeout", d.Ledger.LockTimeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.env", d.Log.Env)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("defaults.currency", d.Defaults.Currency)
}

// BindEnv makes TALLY_* environment variables override config keys.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv reads KEY=value pairs from the given files into the process
// environment. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load decodes v into a Config seeded with defaults and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := NewDefault()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %v", err)
	}
	cfg.ConfigPath = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case constants.BackendSQLite, constants.BackendFiles:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q",
			constants.BackendSQLite, constants.BackendFiles, c.Storage.Backend)
	}
	if c.Ledger.LockTimeout < 0 {
		return fmt.Errorf("ledger.lock_timeout must not be negative")
	}
	if len(c.Defaults.Currency) != 3 || strings.ToUpper(c.Defaults.Currency) != c.Defaults.Currency {
		return fmt.Errorf("defaults.currency must be a 3-letter upper-case code, got %q", c.Defaults.Currency)
	}
	return nil
}
