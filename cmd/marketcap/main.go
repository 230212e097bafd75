// ====================================
// File: cmd/marketcap/main.go
// ====================================
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpfun-marketcap/internal/app"
	"github.com/rovshanmuradov/pumpfun-marketcap/internal/config"
	"github.com/rovshanmuradov/pumpfun-marketcap/internal/logger"
)

func main() {
	// .env is optional; variables already set in the environment win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	flags := pflag.NewFlagSet("marketcap", pflag.ExitOnError)
	configPath := flags.String("config", "", "path to config file (json, yaml or toml)")
	mint := flags.String("mint", "", "token mint address (base58)")
	jsonLogs := flags.Bool("json-logs", false, "write logs as JSON")
	plain := flags.Bool("plain", false, "print only the result lines")
	flags.String("rpc-url", config.DefaultRPCURL, "Solana RPC endpoint")
	flags.String("quote-url", "", "SOL/USD quote endpoint")
	flags.Uint64("supply", config.DefaultTotalSupply, "token total supply")
	flags.Int("decimals", config.DefaultTokenDecimals, "token decimals")
	flags.String("commitment", config.DefaultCommitment, "RPC commitment: processed, confirmed or finalized")
	flags.String("flag-policy", config.DefaultFlagPolicy, "completion flag policy: strict or lenient")
	flags.Int("retries", config.DefaultRetries, "retries for RPC and quote requests")
	flags.Bool("debug", false, "enable debug logging")
	_ = flags.Parse(os.Args[1:])

	if *mint == "" && flags.NArg() > 0 {
		*mint = flags.Arg(0)
	}

	cfg, err := config.LoadConfig(*configPath, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var log *zap.Logger
	if *jsonLogs {
		log = logger.CreateJSONLogger(cfg.DebugLogging, os.Stderr)
	} else {
		log = logger.CreatePrettyLogger(cfg.DebugLogging, os.Stderr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := app.NewRunner(cfg, log, os.Stdout, !*plain)
	defer runner.Shutdown()

	if _, err := runner.Run(ctx, *mint); err != nil {
		runner.Shutdown()
		stop()
		os.Exit(1)
	}
}
