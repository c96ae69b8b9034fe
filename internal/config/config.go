package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "GPSTRACKER"

var (
	ErrReadConfig = errors.New("config read failed")
	ErrDecode     = errors.New("config decode failed")
)

type Server struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Network struct {
	Name string            `mapstructure:"name"`
	URLs map[string]string `mapstructure:"urls"`
}

type Contract struct {
	PackageID  string `mapstructure:"package_id"`
	Module     string `mapstructure:"module"`
	RegistryID string `mapstructure:"registry_id"`
}

type Wallet struct {
	PrivateKey string `mapstructure:"private_key"`
	Keystore   string `mapstructure:"keystore"`
	KeyIndex   int    `mapstructure:"key_index"`
	GasBudget  uint64 `mapstructure:"gas_budget"`
}

type Relay struct {
	Enabled       bool   `mapstructure:"enabled"`
	Brokers       string `mapstructure:"brokers"`
	GroupID       string `mapstructure:"group_id"`
	Topic         string `mapstructure:"topic"`
	ReceiptsTopic string `mapstructure:"receipts_topic"`
}

type Config struct {
	Server   Server   `mapstructure:"server"`
	Log      Log      `mapstructure:"log"`
	Network  Network  `mapstructure:"network"`
	Contract Contract `mapstructure:"contract"`
	Wallet   Wallet   `mapstructure:"wallet"`
	Relay    Relay    `mapstructure:"relay"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("network.name", "testnet")
	v.SetDefault("contract.module", "anti_theft_gps_tracker")
	v.SetDefault("wallet.key_index", 0)
	v.SetDefault("wallet.gas_budget", 10_000_000)
	v.SetDefault("relay.enabled", false)
	v.SetDefault("relay.brokers", "localhost:9092")
	v.SetDefault("relay.group_id", "gps-relay")
	v.SetDefault("relay.topic", "gps-fixes")
	v.SetDefault("relay.receipts_topic", "gps-receipts")
}

// Load reads configuration once: defaults, then the optional YAML file, then
// GPSTRACKER_* environment variables (a local .env is loaded first).
func Load(path string) (*Config, error) {
	const fn = "config:Load"
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%s:%w:%w", fn, ErrReadConfig, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrDecode, err)
	}
	return &cfg, nil
}

// AutomaticEnv only covers keys viper already knows about, so keys without a
// default are bound explicitly.
func bindEnv(v *viper.Viper) {
	for _, key := range []string{
		"contract.package_id",
		"contract.registry_id",
		"wallet.private_key",
		"wallet.keystore",
	} {
		_ = v.BindEnv(key)
	}
}
