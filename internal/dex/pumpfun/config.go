// =============================
// File: internal/dex/pumpfun/config.go
// =============================
package pumpfun

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// Known protocol addresses. These are defaults only: the calculator reads
// every address from Config so tests can substitute fixtures.
var (
	// Program ID for Pump.fun protocol
	PumpFunProgramID = solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")

	// SPL programs used for the associated bonding curve account
	DefaultTokenProgramID           = solana.TokenProgramID
	DefaultAssociatedTokenProgramID = solana.SPLAssociatedTokenAccountProgramID
)

// FlagPolicy decides how the "complete" byte of a bonding curve record is read.
type FlagPolicy int

const (
	// FlagStrict accepts only 0 and 1; anything else is a decode error.
	FlagStrict FlagPolicy = iota
	// FlagLenient treats any non-zero byte as true.
	FlagLenient
)

func (p FlagPolicy) String() string {
	switch p {
	case FlagStrict:
		return "strict"
	case FlagLenient:
		return "lenient"
	default:
		return fmt.Sprintf("FlagPolicy(%d)", int(p))
	}
}

// ParseFlagPolicy converts a config value ("strict" or "lenient") to a FlagPolicy.
func ParseFlagPolicy(s string) (FlagPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return FlagStrict, nil
	case "lenient":
		return FlagLenient, nil
	default:
		return FlagStrict, fmt.Errorf("unknown flag policy %q", s)
	}
}

// Config holds the immutable configuration of the market cap calculator.
type Config struct {
	// Protocol addresses
	ProgramID                solana.PublicKey
	TokenProgramID           solana.PublicKey
	AssociatedTokenProgramID solana.PublicKey

	FlagPolicy FlagPolicy
}

// GetDefaultConfig creates a configuration matching the live Pump.fun deployment.
func GetDefaultConfig() *Config {
	return &Config{
		ProgramID:                PumpFunProgramID,
		TokenProgramID:           DefaultTokenProgramID,
		AssociatedTokenProgramID: DefaultAssociatedTokenProgramID,
		FlagPolicy:               FlagStrict,
	}
}

// Validate checks that every address is set and the flag policy is known.
func (cfg *Config) Validate() error {
	if cfg.ProgramID.IsZero() {
		return fmt.Errorf("program id is required")
	}
	if cfg.TokenProgramID.IsZero() {
		return fmt.Errorf("token program id is required")
	}
	if cfg.AssociatedTokenProgramID.IsZero() {
		return fmt.Errorf("associated token program id is required")
	}
	if cfg.FlagPolicy != FlagStrict && cfg.FlagPolicy != FlagLenient {
		return fmt.Errorf("invalid flag policy: %s", cfg.FlagPolicy)
	}
	return nil
}

// ParseMint validates a base58 token mint address.
func ParseMint(tokenMint string, logger *zap.Logger) (solana.PublicKey, error) {
	tokenMint = strings.TrimSpace(tokenMint)
	if tokenMint == "" {
		return solana.PublicKey{}, fmt.Errorf("token mint address is required")
	}

	mint, err := solana.PublicKeyFromBase58(tokenMint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid token mint address: %w", err)
	}

	logger.Debug("Token mint parsed", zap.String("token_mint", mint.String()))
	return mint, nil
}
