// internal/dex/pumpfun/token_calc.go
package pumpfun

import (
	"math"
)

const (
	// Стандартные десятичные знаки для SOL и токенов Pump.fun
	solDecimals   = 9
	tokenDecimals = 6
	// Стандартный выпуск токена Pump.fun
	defaultTotalSupply = 1_000_000_000
)

// CalculateTokenPrice рассчитывает спотовую цену токена в SOL по виртуальным резервам.
// Формула: Price = (VirtualSolReserves / 10^9) / (VirtualTokenReserves / 10^tokenDecimals)
func CalculateTokenPrice(rec *CurveRecord, decimals uint8) (float64, error) {
	if rec.VirtualTokenReserves == 0 {
		return 0, &ArithmeticError{Reason: ReasonZeroTokenReserve}
	}

	solReserve := float64(rec.VirtualSolReserves) / math.Pow10(solDecimals)
	tokenReserve := float64(rec.VirtualTokenReserves) / math.Pow10(int(decimals))

	price := solReserve / tokenReserve
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, &ArithmeticError{Reason: ReasonNonFinite}
	}
	return price, nil
}

// CalculateMarketCap converts the curve price to fiat and scales it by the total supply.
func CalculateMarketCap(rec *CurveRecord, solUSD float64, params MarketCapParams) (*MarketCapResult, error) {
	priceSol, err := CalculateTokenPrice(rec, params.TokenDecimals)
	if err != nil {
		return nil, err
	}

	priceUSD := priceSol * solUSD
	marketCap := priceUSD * float64(params.TotalSupply)

	for _, v := range []float64{priceUSD, marketCap} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &ArithmeticError{Reason: ReasonNonFinite}
		}
	}

	return &MarketCapResult{
		TokenPriceSol: priceSol,
		TokenPriceUSD: priceUSD,
		MarketCapUSD:  marketCap,
	}, nil
}
