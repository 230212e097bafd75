// internal/dex/pumpfun/mocks_test.go
package pumpfun

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/mock"
)

// MockAccountReader реализует интерфейс AccountReader
type MockAccountReader struct {
	mock.Mock
}

func (m *MockAccountReader) FetchAccountData(ctx context.Context, account solana.PublicKey) ([]byte, error) {
	args := m.Called(ctx, account)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

// MockQuoteReader реализует интерфейс QuoteReader
type MockQuoteReader struct {
	mock.Mock
}

func (m *MockQuoteReader) FetchFiatPrice(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

// testMint is an arbitrary but fixed mint used across tests.
var testMint = solana.MustPublicKeyFromBase58("8VfUQdY8S5DFnCPXUbP8hTxdEM1wWYbYoU9p1aoPpump")

// testCreator is a fixed creator key.
var testCreator = solana.MustPublicKeyFromBase58("Ce6TQqeHC9p8KetsN6JsjHK7UTZk7nasjjnr7XxXp9F1")

// testDiscriminator is the 8-byte account discriminator used in fixtures.
var testDiscriminator = [8]byte{0x17, 0xb7, 0xf8, 0x37, 0x60, 0xd8, 0xac, 0x60}
