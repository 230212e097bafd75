// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/rovshanmuradov/pumpfun-marketcap/internal/dex/pumpfun"
	"github.com/rovshanmuradov/pumpfun-marketcap/internal/price"
)

var validConfigJSON = `{
    "rpc_url": "https://rpc.example.com",
    "quote_url": "https://quotes.example.com/sol",
    "total_supply": 2000000000,
    "token_decimals": 9,
    "commitment": "finalized",
    "flag_policy": "lenient",
    "rpc_timeout": 2000,
    "http_timeout": 3000,
    "retry_delay": 100,
    "retries": 1,
    "debug_logging": true
}`

var invalidConfigJSON = `{
    "rpc_url": "ftp://rpc.example.com",
    "total_supply": 0
}`

func setupTestConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return configPath
}

func validConfig() Config {
	return Config{
		RPCURL:                   "https://rpc.example.com",
		QuoteURL:                 price.DefaultDIAEndpoint,
		ProgramID:                pumpfun.PumpFunProgramID.String(),
		TokenProgramID:           pumpfun.DefaultTokenProgramID.String(),
		AssociatedTokenProgramID: pumpfun.DefaultAssociatedTokenProgramID.String(),
		TotalSupply:              DefaultTotalSupply,
		TokenDecimals:            DefaultTokenDecimals,
		Commitment:               DefaultCommitment,
		FlagPolicy:               DefaultFlagPolicy,
		RPCTimeout:               DefaultRPCTimeout,
		HTTPTimeout:              DefaultHTTPTimeout,
		RetryDelay:               DefaultRetryDelay,
		Retries:                  DefaultRetries,
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		check   func(*Config) bool
	}{
		{
			name:    "Valid config",
			content: validConfigJSON,
			wantErr: false,
			check: func(cfg *Config) bool {
				return cfg.RPCURL == "https://rpc.example.com" &&
					cfg.QuoteURL == "https://quotes.example.com/sol" &&
					cfg.TotalSupply == 2_000_000_000 &&
					cfg.TokenDecimals == 9 &&
					cfg.Commitment == "finalized" &&
					cfg.FlagPolicy == "lenient" &&
					cfg.Retries == 1 &&
					cfg.DebugLogging
			},
		},
		{
			name:    "Invalid config - bad values",
			content: invalidConfigJSON,
			wantErr: true,
		},
		{
			name:    "Invalid JSON syntax",
			content: "{invalid json",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := setupTestConfig(t, tt.content)

			cfg, err := LoadConfig(configPath, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && tt.check != nil {
				if !tt.check(cfg) {
					t.Errorf("LoadConfig() returned invalid configuration: %+v", cfg)
				}
			}
		})
	}
}

func TestLoadConfigWithDefaults(t *testing.T) {
	cfg, err := LoadConfig("", nil)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.RPCURL != DefaultRPCURL {
		t.Errorf("Expected default rpc_url %s, got %s", DefaultRPCURL, cfg.RPCURL)
	}
	if cfg.QuoteURL != price.DefaultDIAEndpoint {
		t.Errorf("Expected default quote_url, got %s", cfg.QuoteURL)
	}
	if cfg.ProgramID != pumpfun.PumpFunProgramID.String() {
		t.Errorf("Expected default program_id, got %s", cfg.ProgramID)
	}
	if cfg.TotalSupply != DefaultTotalSupply {
		t.Errorf("Expected default total_supply %d, got %d", DefaultTotalSupply, cfg.TotalSupply)
	}
	if cfg.TokenDecimals != DefaultTokenDecimals {
		t.Errorf("Expected default token_decimals %d, got %d", DefaultTokenDecimals, cfg.TokenDecimals)
	}
	if cfg.Retries != DefaultRetries {
		t.Errorf("Expected default retries %d, got %d", DefaultRetries, cfg.Retries)
	}
}

func TestLoadConfigEnvironmentVariables(t *testing.T) {
	t.Setenv("PUMP_MC_RPC_URL", "https://env-rpc.example.com")
	t.Setenv("PUMP_MC_TOTAL_SUPPLY", "500")
	t.Setenv("PUMP_MC_FLAG_POLICY", "lenient")

	configPath := setupTestConfig(t, validConfigJSON)

	cfg, err := LoadConfig(configPath, nil)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Проверяем, что значения из переменных окружения имеют приоритет
	if cfg.RPCURL != "https://env-rpc.example.com" {
		t.Errorf("Expected rpc_url from env, got %s", cfg.RPCURL)
	}
	if cfg.TotalSupply != 500 {
		t.Errorf("Expected total_supply 500 from env, got %d", cfg.TotalSupply)
	}

	// Проверяем, что другие поля сохранили свои значения
	if cfg.TokenDecimals != 9 {
		t.Errorf("Expected token_decimals from file to be 9, got %d", cfg.TokenDecimals)
	}
}

func TestLoadConfigFlagsOverrideEverything(t *testing.T) {
	t.Setenv("PUMP_MC_RPC_URL", "https://env-rpc.example.com")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("rpc-url", DefaultRPCURL, "")
	flags.Uint64("supply", DefaultTotalSupply, "")
	flags.Int("decimals", DefaultTokenDecimals, "")
	flags.Bool("debug", false, "")
	if err := flags.Parse([]string{"--rpc-url", "https://flag-rpc.example.com", "--supply", "42", "--debug"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := LoadConfig(setupTestConfig(t, validConfigJSON), flags)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.RPCURL != "https://flag-rpc.example.com" {
		t.Errorf("Expected rpc_url from flag, got %s", cfg.RPCURL)
	}
	if cfg.TotalSupply != 42 {
		t.Errorf("Expected total_supply 42 from flag, got %d", cfg.TotalSupply)
	}
	// unchanged flag keeps the file value
	if cfg.TokenDecimals != 9 {
		t.Errorf("Expected token_decimals from file to be 9, got %d", cfg.TokenDecimals)
	}
	if !cfg.DebugLogging {
		t.Error("Expected debug_logging from flag")
	}
}

func TestConfigValidationDetails(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*Config)
		expectedError string
	}{
		{
			name:          "Invalid RPC URL",
			mutate:        func(c *Config) { c.RPCURL = "invalid-url" },
			expectedError: "invalid RPC URL protocol",
		},
		{
			name:          "Invalid quote URL",
			mutate:        func(c *Config) { c.QuoteURL = "ws://quotes.example.com" },
			expectedError: "invalid quote URL protocol",
		},
		{
			name:          "Zero supply",
			mutate:        func(c *Config) { c.TotalSupply = 0 },
			expectedError: "invalid total_supply",
		},
		{
			name:          "Too many decimals",
			mutate:        func(c *Config) { c.TokenDecimals = 20 },
			expectedError: "invalid token_decimals",
		},
		{
			name:          "Negative retries",
			mutate:        func(c *Config) { c.Retries = -1 },
			expectedError: "invalid retries count",
		},
		{
			name:          "Unknown commitment",
			mutate:        func(c *Config) { c.Commitment = "recent" },
			expectedError: `invalid commitment "recent"`,
		},
		{
			name:          "Unknown flag policy",
			mutate:        func(c *Config) { c.FlagPolicy = "loose" },
			expectedError: `unknown flag policy "loose"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := validateConfig(&cfg)
			if err == nil {
				t.Error("Expected error but got nil")
				return
			}
			if err.Error() != tt.expectedError {
				t.Errorf("Expected error '%s', got '%s'", tt.expectedError, err.Error())
			}
		})
	}
}

func TestConfigValidationBadProgramID(t *testing.T) {
	cfg := validConfig()
	cfg.ProgramID = "not-a-key"
	if err := validateConfig(&cfg); err == nil {
		t.Error("Expected error for invalid program_id")
	}
}

func TestPumpFunConfig(t *testing.T) {
	cfg := validConfig()
	cfg.FlagPolicy = "lenient"

	pcfg, err := cfg.PumpFunConfig()
	if err != nil {
		t.Fatalf("PumpFunConfig() error = %v", err)
	}
	if !pcfg.ProgramID.Equals(pumpfun.PumpFunProgramID) {
		t.Errorf("Expected program id %s, got %s", pumpfun.PumpFunProgramID, pcfg.ProgramID)
	}
	if pcfg.FlagPolicy != pumpfun.FlagLenient {
		t.Errorf("Expected lenient flag policy, got %s", pcfg.FlagPolicy)
	}
	if err := pcfg.Validate(); err != nil {
		t.Errorf("converted config is invalid: %v", err)
	}

	params := cfg.MarketCapParams()
	if params.TotalSupply != DefaultTotalSupply || params.TokenDecimals != DefaultTokenDecimals {
		t.Errorf("unexpected market cap params: %+v", params)
	}
}
