// internal/app/runner.go
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpfun-marketcap/internal/blockchain/solbc"
	"github.com/rovshanmuradov/pumpfun-marketcap/internal/config"
	"github.com/rovshanmuradov/pumpfun-marketcap/internal/dex/pumpfun"
	"github.com/rovshanmuradov/pumpfun-marketcap/internal/price"
	"github.com/rovshanmuradov/pumpfun-marketcap/internal/report"
)

// Runner wires the RPC client, the quote client and the calculator for a
// single market cap query.
type Runner struct {
	logger *zap.Logger
	config *config.Config
	out    io.Writer
	styled bool
}

// NewRunner NewRunner: принимает cfg, logger и writer для отчета
func NewRunner(cfg *config.Config, logger *zap.Logger, out io.Writer, styled bool) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if out == nil {
		out = os.Stdout
	}
	return &Runner{
		logger: logger,
		config: cfg,
		out:    out,
		styled: styled,
	}
}

// newCalculator собирает калькулятор из конфигурации
func (r *Runner) newCalculator() (*pumpfun.Calculator, error) {
	pumpCfg, err := r.config.PumpFunConfig()
	if err != nil {
		return nil, err
	}

	solClient := solbc.NewClient(r.config.RPCURL, r.logger, solbc.ClientOptions{
		Commitment: rpc.CommitmentType(r.config.Commitment),
		MaxRetries: r.config.Retries,
		RetryDelay: r.config.RetryDelayDuration(),
		Timeout:    r.config.RPCTimeoutDuration(),
	})

	quotes := price.NewDIAClient(r.config.QuoteURL, r.logger, price.DIAOptions{
		Timeout:    r.config.HTTPTimeoutDuration(),
		MaxRetries: r.config.Retries,
		RetryDelay: r.config.RetryDelayDuration(),
	})

	return pumpfun.NewCalculator(pumpCfg, solClient, quotes, r.logger)
}

// Run выполняет один запрос капитализации и печатает отчет.
func (r *Runner) Run(ctx context.Context, tokenMint string) (*pumpfun.MarketCapReport, error) {
	mint, err := pumpfun.ParseMint(tokenMint, r.logger)
	if err != nil {
		r.logger.Error("Invalid token mint", zap.String("mint", tokenMint), zap.Error(err))
		return nil, err
	}

	calc, err := r.newCalculator()
	if err != nil {
		r.logger.Error("Failed to build calculator", zap.Error(err))
		return nil, fmt.Errorf("build calculator: %w", err)
	}

	r.logger.Info("Querying market cap",
		zap.String("mint", mint.String()),
		zap.String("rpc", r.config.RPCURL),
		zap.String("flag_policy", r.config.FlagPolicy))

	rep, err := calc.GetMarketCapReport(ctx, mint, r.config.MarketCapParams())
	if err != nil {
		if pumpfun.FailedStage(err) == pumpfun.StageFetch && solbc.IsAccountNotFoundError(err) {
			r.logger.Error("Bonding curve account not found: token is not on a Pump.fun curve",
				zap.String("mint", mint.String()),
				zap.String("stage", string(pumpfun.StageFetch)))
			return nil, err
		}
		fields := []zap.Field{zap.String("mint", mint.String()), zap.Error(err)}
		if stage := pumpfun.FailedStage(err); stage != "" {
			fields = append(fields, zap.String("stage", string(stage)))
		}
		r.logger.Error("Market cap query failed", fields...)
		return nil, err
	}

	if _, err := io.WriteString(r.out, report.Render(rep, report.Options{Styled: r.styled})); err != nil {
		return rep, fmt.Errorf("write report: %w", err)
	}
	return rep, nil
}

// Shutdown flushes the logger.
func (r *Runner) Shutdown() {
	if err := r.logger.Sync(); err != nil {
		if !os.IsNotExist(err) &&
			err.Error() != "sync /dev/stdout: invalid argument" &&
			err.Error() != "sync /dev/stderr: invalid argument" &&
			err.Error() != "sync /dev/stderr: inappropriate ioctl for device" {
			fmt.Fprintf(os.Stderr, "failed to sync logger during shutdown: %v\n", err)
		}
	}
}
