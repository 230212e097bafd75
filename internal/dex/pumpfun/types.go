// =============================
// File: internal/dex/pumpfun/types.go
// =============================
package pumpfun

import (
	"github.com/gagliardetto/solana-go"
)

// CurveRecord is the decoded state of a bonding curve account.
type CurveRecord struct {
	VirtualTokenReserves uint64
	VirtualSolReserves   uint64
	RealTokenReserves    uint64
	RealSolReserves      uint64
	TokenTotalSupply     uint64
	Complete             bool
	Creator              solana.PublicKey
}

// BondingCurveData combines the derived addresses of a token with its curve state.
type BondingCurveData struct {
	Mint                   solana.PublicKey
	BondingCurve           solana.PublicKey
	AssociatedBondingCurve solana.PublicKey
	VirtualTokenReserves   uint64
	VirtualSolReserves     uint64
	RealTokenReserves      uint64
	RealSolReserves        uint64
	TokenTotalSupply       uint64
	Complete               bool
	Creator                solana.PublicKey
}

// MarketCapResult содержит цену токена и рыночную капитализацию
type MarketCapResult struct {
	TokenPriceSol float64 // цена токена в SOL
	TokenPriceUSD float64 // цена токена в фиате
	MarketCapUSD  float64 // капитализация в фиате
}

// MarketCapReport is everything a single market cap query produced.
type MarketCapReport struct {
	Curve  BondingCurveData
	SolUSD float64
	Result MarketCapResult
}

// MarketCapParams are the per-call inputs of the market cap formula.
type MarketCapParams struct {
	TotalSupply   uint64
	TokenDecimals uint8
}

// DefaultMarketCapParams returns the standard Pump.fun supply and decimals.
func DefaultMarketCapParams() MarketCapParams {
	return MarketCapParams{
		TotalSupply:   defaultTotalSupply,
		TokenDecimals: tokenDecimals,
	}
}
