// Package config resolves the service configuration from the environment
// and an optional config file. All settings carry working defaults so the
// service starts with zero configuration against public endpoints.
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/hydrawallet/wallet-core/internal/wallet/gateway"
)

const envPrefix = "WALLET"

// ChainConfig is one configured chain endpoint.
type ChainConfig struct {
	Name          string `mapstructure:"name"`
	RPCURL        string `mapstructure:"rpc_url"`
	EVMChainID    int64  `mapstructure:"evm_chain_id"`
	Symbol        string `mapstructure:"symbol"`
	Decimals      int    `mapstructure:"decimals"`
	AddressFormat string `mapstructure:"address_format"`
	Active        bool   `mapstructure:"active"`
}

// Logger holds the logging settings.
type Logger struct {
	Level              string `mapstructure:"level"`
	PrettyPrintConsole bool   `mapstructure:"pretty_print_console"`
}

// Config is the resolved service configuration.
type Config struct {
	Logger       Logger                 `mapstructure:"logger"`
	ProbeTimeout time.Duration          `mapstructure:"probe_timeout"`
	MetricsAddr  string                 `mapstructure:"metrics_addr"`
	Chains       map[string]ChainConfig `mapstructure:"chains"`
}

// GatewayChains converts the configured chains into the gateway's form.
func (c *Config) GatewayChains() map[string]gateway.ChainConfig {
	chains := make(map[string]gateway.ChainConfig, len(c.Chains))

	for slug, chain := range c.Chains {
		format := gateway.AddressFormatEthereum
		if chain.AddressFormat == "substrate" {
			format = gateway.AddressFormatSubstrate
		}

		chains[slug] = gateway.ChainConfig{
			Info: gateway.ChainInfo{
				Slug:          slug,
				Name:          chain.Name,
				AddressFormat: format,
				EVMChainID:    chain.EVMChainID,
				Symbol:        chain.Symbol,
				Decimals:      chain.Decimals,
			},
			Endpoint: chain.RPCURL,
			Active:   chain.Active,
		}
	}

	return chains
}

// FromEnv resolves the configuration. Environment variables use the WALLET_
// prefix with underscores for nesting (WALLET_LOGGER_LEVEL); a YAML config
// file named by WALLET_CONFIG_FILE is merged in when present.
func FromEnv() (*Config, error) {
	v := viper.New()

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.pretty_print_console", false)
	v.SetDefault("probe_timeout", 3*time.Second)
	v.SetDefault("metrics_addr", ":9090")
	v.SetDefault("chains", defaultChains())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)

		if err := v.MergeInConfig(); err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	return &cfg, nil
}

func defaultChains() map[string]map[string]any {
	return map[string]map[string]any{
		"ethereum": {
			"name":           "Ethereum Mainnet",
			"rpc_url":        "https://ethereum-rpc.publicnode.com",
			"evm_chain_id":   int64(1),
			"symbol":         "ETH",
			"decimals":       18,
			"address_format": "ethereum",
			"active":         true,
		},
		"polygon": {
			"name":           "Polygon",
			"rpc_url":        "https://polygon-bor-rpc.publicnode.com",
			"evm_chain_id":   int64(137),
			"symbol":         "POL",
			"decimals":       18,
			"address_format": "ethereum",
			"active":         false,
		},
	}
}
