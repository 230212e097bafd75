// =============================
// File: internal/dex/pumpfun/marketcap.go
// =============================
package pumpfun

import (
	"context"
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// Calculator computes the market cap of Pump.fun tokens. The token mint is a
// per-call argument; the calculator only binds configuration and
// collaborators, so one instance can serve concurrent queries.
type Calculator struct {
	config   Config
	deriver  *AddressDeriver
	accounts AccountReader
	quotes   QuoteReader
	logger   *zap.Logger
}

// NewCalculator creates a calculator. cfg is copied.
func NewCalculator(cfg *Config, accounts AccountReader, quotes QuoteReader, logger *zap.Logger) (*Calculator, error) {
	if cfg == nil {
		cfg = GetDefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pumpfun config: %w", err)
	}
	if accounts == nil {
		return nil, fmt.Errorf("account reader is required")
	}
	if quotes == nil {
		return nil, fmt.Errorf("quote reader is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Calculator{
		config:   *cfg,
		deriver:  NewAddressDeriver(cfg),
		accounts: accounts,
		quotes:   quotes,
		logger:   logger.Named("pumpfun-mc"),
	}, nil
}

// GetBondingCurveData derives the curve accounts of mint, fetches the curve
// account and decodes it.
func (c *Calculator) GetBondingCurveData(ctx context.Context, mint solana.PublicKey) (*BondingCurveData, error) {
	logger := c.logger.With(zap.String("token_mint", mint.String()))

	// Шаг 1: вычисление адресов
	bondingCurve, associatedBondingCurve, err := c.deriver.DeriveBondingCurveAccounts(mint)
	if err != nil {
		logger.Warn("Failed to derive bonding curve accounts", zap.Error(err))
		return nil, &LookupError{Stage: StageDerive, Mint: mint, Err: err}
	}
	logger.Debug("Derived bonding curve accounts",
		zap.String("bonding_curve", bondingCurve.String()),
		zap.String("associated_bonding_curve", associatedBondingCurve.String()))

	// Шаг 2: получение данных аккаунта
	if err := ctx.Err(); err != nil {
		return nil, &LookupError{Stage: StageFetch, Mint: mint, Err: err}
	}
	data, err := c.accounts.FetchAccountData(ctx, bondingCurve)
	if err != nil {
		logger.Warn("Failed to fetch bonding curve account",
			zap.String("bonding_curve", bondingCurve.String()),
			zap.Error(err))
		return nil, &LookupError{Stage: StageFetch, Mint: mint, Err: err}
	}

	// Шаг 3: декодирование
	rec, err := DecodeCurveRecord(data, c.config.FlagPolicy)
	if err != nil {
		logger.Warn("Failed to decode bonding curve account",
			zap.Int("data_length", len(data)),
			zap.Error(err))
		return nil, err
	}

	return &BondingCurveData{
		Mint:                   mint,
		BondingCurve:           bondingCurve,
		AssociatedBondingCurve: associatedBondingCurve,
		VirtualTokenReserves:   rec.VirtualTokenReserves,
		VirtualSolReserves:     rec.VirtualSolReserves,
		RealTokenReserves:      rec.RealTokenReserves,
		RealSolReserves:        rec.RealSolReserves,
		TokenTotalSupply:       rec.TokenTotalSupply,
		Complete:               rec.Complete,
		Creator:                rec.Creator,
	}, nil
}

// GetMarketCapReport runs the full query and keeps the intermediate curve
// data and quote alongside the result.
func (c *Calculator) GetMarketCapReport(ctx context.Context, mint solana.PublicKey, params MarketCapParams) (*MarketCapReport, error) {
	curve, err := c.GetBondingCurveData(ctx, mint)
	if err != nil {
		return nil, err
	}

	// Шаг 4: курс SOL в фиате
	if err := ctx.Err(); err != nil {
		return nil, &LookupError{Stage: StageQuote, Mint: mint, Err: err}
	}
	solUSD, err := c.quotes.FetchFiatPrice(ctx)
	if err != nil {
		c.logger.Warn("Failed to fetch fiat quote",
			zap.String("token_mint", mint.String()),
			zap.Error(err))
		return nil, &LookupError{Stage: StageQuote, Mint: mint, Err: err}
	}
	if math.IsNaN(solUSD) || math.IsInf(solUSD, 0) || solUSD <= 0 {
		return nil, &LookupError{
			Stage: StageQuote,
			Mint:  mint,
			Err:   fmt.Errorf("%w: %v", ErrInvalidQuote, solUSD),
		}
	}

	// Шаг 5: расчёт
	result, err := CalculateMarketCap(curveRecord(curve), solUSD, params)
	if err != nil {
		c.logger.Warn("Market cap calculation failed",
			zap.String("token_mint", mint.String()),
			zap.Uint64("virtual_token_reserves", curve.VirtualTokenReserves),
			zap.Uint64("virtual_sol_reserves", curve.VirtualSolReserves),
			zap.Error(err))
		return nil, err
	}

	c.logger.Debug("Calculated market cap",
		zap.String("token_mint", mint.String()),
		zap.Float64("sol_usd", solUSD),
		zap.Float64("token_price_sol", result.TokenPriceSol),
		zap.Float64("token_price_usd", result.TokenPriceUSD),
		zap.Float64("market_cap_usd", result.MarketCapUSD))

	return &MarketCapReport{
		Curve:  *curve,
		SolUSD: solUSD,
		Result: *result,
	}, nil
}

// GetMarketCap returns the price and market cap of mint.
func (c *Calculator) GetMarketCap(ctx context.Context, mint solana.PublicKey, params MarketCapParams) (*MarketCapResult, error) {
	report, err := c.GetMarketCapReport(ctx, mint, params)
	if err != nil {
		return nil, err
	}
	return &report.Result, nil
}

func curveRecord(d *BondingCurveData) *CurveRecord {
	return &CurveRecord{
		VirtualTokenReserves: d.VirtualTokenReserves,
		VirtualSolReserves:   d.VirtualSolReserves,
		RealTokenReserves:    d.RealTokenReserves,
		RealSolReserves:      d.RealSolReserves,
		TokenTotalSupply:     d.TokenTotalSupply,
		Complete:             d.Complete,
		Creator:              d.Creator,
	}
}
