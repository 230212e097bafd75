// Package pumpfun computes the market capitalization of tokens that still
// trade on a Pump.fun bonding curve.
//
// This package provides:
// - Derivation of the bonding curve PDA and its associated token account.
// - Decoding of the bonding curve account layout.
// - Price and market cap arithmetic over the virtual reserves.
//
// Key Types and Functions:
//
// - AddressDeriver: DeriveCurveAddress() and DeriveAssociatedAddress().
// - DecodeCurveRecord() / EncodeCurveRecord(): the 81-byte account layout.
// - Calculator: GetBondingCurveData() and GetMarketCap(), built on an
//   AccountReader and a QuoteReader supplied by the caller.
//
// Detailed information about each function can be found in their respective source files:
//   - accounts.go: PDA and associated account derivation.
//   - bonding_curve.go: account layout decoding.
//   - token_calc.go: price and market cap formulas.
//   - marketcap.go: the query pipeline.
//   - errors.go: DerivationError, DecodeError, LookupError, ArithmeticError.
//
// Usage example:
//
//	cfg := pumpfun.GetDefaultConfig()
//	client := solbc.NewClient(rpcURL, logger)
//	quotes := price.NewDIAClient(price.DefaultDIAEndpoint, logger)
//
//	calc, err := pumpfun.NewCalculator(cfg, client, quotes, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	mint, _ := pumpfun.ParseMint("TOKEN_MINT_ADDRESS", logger)
//	mc, err := calc.GetMarketCap(ctx, mint, pumpfun.DefaultMarketCapParams())
//	if err != nil {
//	    log.Fatal(err)
//	}
package pumpfun
