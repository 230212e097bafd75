// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rovshanmuradov/pumpfun-marketcap/internal/dex/pumpfun"
	"github.com/rovshanmuradov/pumpfun-marketcap/internal/price"
)

type Config struct {
	RPCURL                   string `mapstructure:"rpc_url"`
	QuoteURL                 string `mapstructure:"quote_url"`
	ProgramID                string `mapstructure:"program_id"`
	TokenProgramID           string `mapstructure:"token_program_id"`
	AssociatedTokenProgramID string `mapstructure:"associated_token_program_id"`
	TotalSupply              uint64 `mapstructure:"total_supply"`
	TokenDecimals            int    `mapstructure:"token_decimals"`
	Commitment               string `mapstructure:"commitment"`
	FlagPolicy               string `mapstructure:"flag_policy"`
	RPCTimeout               int    `mapstructure:"rpc_timeout"`
	HTTPTimeout              int    `mapstructure:"http_timeout"`
	RetryDelay               int    `mapstructure:"retry_delay"`
	Retries                  int    `mapstructure:"retries"`
	DebugLogging             bool   `mapstructure:"debug_logging"`
}

const (
	DefaultRPCURL        = "https://api.mainnet-beta.solana.com"
	DefaultTotalSupply   = 1_000_000_000
	DefaultTokenDecimals = 6
	DefaultCommitment    = "confirmed"
	DefaultFlagPolicy    = "strict"
	DefaultRPCTimeout    = 10000 // ms
	DefaultHTTPTimeout   = 10000 // ms
	DefaultRetryDelay    = 500   // ms
	DefaultRetries       = 3

	// EnvPrefix is prepended to every environment override, e.g. PUMP_MC_RPC_URL.
	EnvPrefix = "PUMP_MC"

	// float64 cannot scale by more than 10^19 without losing the integer part of a u64
	maxTokenDecimals = 19
)

// flagKeys maps command line flag names to config keys.
var flagKeys = map[string]string{
	"rpc-url":     "rpc_url",
	"quote-url":   "quote_url",
	"supply":      "total_supply",
	"decimals":    "token_decimals",
	"commitment":  "commitment",
	"flag-policy": "flag_policy",
	"retries":     "retries",
	"debug":       "debug_logging",
}

// LoadConfig reads configuration from defaults, an optional file, the
// environment and command line flags, in increasing order of priority.
// path and flags may be empty/nil.
func LoadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"rpc_url":                     DefaultRPCURL,
		"quote_url":                   price.DefaultDIAEndpoint,
		"program_id":                  pumpfun.PumpFunProgramID.String(),
		"token_program_id":            pumpfun.DefaultTokenProgramID.String(),
		"associated_token_program_id": pumpfun.DefaultAssociatedTokenProgramID.String(),
		"total_supply":                DefaultTotalSupply,
		"token_decimals":              DefaultTokenDecimals,
		"commitment":                  DefaultCommitment,
		"flag_policy":                 DefaultFlagPolicy,
		"rpc_timeout":                 DefaultRPCTimeout,
		"http_timeout":                DefaultHTTPTimeout,
		"retry_delay":                 DefaultRetryDelay,
		"retries":                     DefaultRetries,
		"debug_logging":               false,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if cfg.RPCURL == "" {
		return errors.New("rpc_url is empty")
	}
	if err := validateURLWithCache(cfg.RPCURL, "http"); err != nil {
		return errors.New("invalid RPC URL protocol")
	}
	if cfg.QuoteURL == "" {
		return errors.New("quote_url is empty")
	}
	if err := validateURLWithCache(cfg.QuoteURL, "http"); err != nil {
		return errors.New("invalid quote URL protocol")
	}
	for key, value := range map[string]string{
		"program_id":                  cfg.ProgramID,
		"token_program_id":            cfg.TokenProgramID,
		"associated_token_program_id": cfg.AssociatedTokenProgramID,
	} {
		if _, err := solana.PublicKeyFromBase58(value); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}
	if _, err := pumpfun.ParseFlagPolicy(cfg.FlagPolicy); err != nil {
		return err
	}
	switch rpc.CommitmentType(cfg.Commitment) {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
	default:
		return fmt.Errorf("invalid commitment %q", cfg.Commitment)
	}
	return validateNumericParams(cfg)
}

func validateNumericParams(cfg *Config) error {
	if cfg.TotalSupply == 0 {
		return errors.New("invalid total_supply")
	}
	if cfg.TokenDecimals < 0 || cfg.TokenDecimals > maxTokenDecimals {
		return errors.New("invalid token_decimals")
	}
	if cfg.RPCTimeout <= 0 {
		return errors.New("invalid rpc_timeout")
	}
	if cfg.HTTPTimeout <= 0 {
		return errors.New("invalid http_timeout")
	}
	if cfg.RetryDelay <= 0 {
		return errors.New("invalid retry_delay")
	}
	if cfg.Retries < 0 {
		return errors.New("invalid retries count")
	}
	return nil
}

var urlCache sync.Map

func validateURLWithCache(rawURL string, protocol string) error {
	if _, ok := urlCache.Load(rawURL); ok {
		return nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) || parsed.Host == "" {
		return errors.New("invalid URL protocol")
	}
	urlCache.Store(rawURL, parsed)
	return nil
}

// PumpFunConfig converts the validated settings into calculator configuration.
func (c *Config) PumpFunConfig() (*pumpfun.Config, error) {
	policy, err := pumpfun.ParseFlagPolicy(c.FlagPolicy)
	if err != nil {
		return nil, err
	}
	programID, err := solana.PublicKeyFromBase58(c.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("invalid program_id: %w", err)
	}
	tokenProgramID, err := solana.PublicKeyFromBase58(c.TokenProgramID)
	if err != nil {
		return nil, fmt.Errorf("invalid token_program_id: %w", err)
	}
	ataProgramID, err := solana.PublicKeyFromBase58(c.AssociatedTokenProgramID)
	if err != nil {
		return nil, fmt.Errorf("invalid associated_token_program_id: %w", err)
	}

	return &pumpfun.Config{
		ProgramID:                programID,
		TokenProgramID:           tokenProgramID,
		AssociatedTokenProgramID: ataProgramID,
		FlagPolicy:               policy,
	}, nil
}

// MarketCapParams returns the supply and decimals used by the formula.
func (c *Config) MarketCapParams() pumpfun.MarketCapParams {
	return pumpfun.MarketCapParams{
		TotalSupply:   c.TotalSupply,
		TokenDecimals: uint8(c.TokenDecimals),
	}
}

// RPCTimeoutDuration returns the per-request RPC timeout.
func (c *Config) RPCTimeoutDuration() time.Duration {
	return time.Duration(c.RPCTimeout) * time.Millisecond
}

// HTTPTimeoutDuration returns the quote request timeout.
func (c *Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Millisecond
}

// RetryDelayDuration returns the initial backoff interval.
func (c *Config) RetryDelayDuration() time.Duration {
	return time.Duration(c.RetryDelay) * time.Millisecond
}
