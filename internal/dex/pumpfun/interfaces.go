// internal/dex/pumpfun/interfaces.go
package pumpfun

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// AccountReader returns the raw data of an on-chain account.
type AccountReader interface {
	FetchAccountData(ctx context.Context, account solana.PublicKey) ([]byte, error)
}

// QuoteReader returns the fiat price of one SOL.
type QuoteReader interface {
	FetchFiatPrice(ctx context.Context) (float64, error)
}
