package pumpfun

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveCurveAddress_MatchesRuntimeSearch(t *testing.T) {
	deriver := NewAddressDeriver(GetDefaultConfig())

	for i := 0; i < 8; i++ {
		mint := solana.NewWallet().PublicKey()

		got, bump, err := deriver.DeriveCurveAddress(mint)
		require.NoError(t, err)

		want, wantBump, err := solana.FindProgramAddress(
			[][]byte{[]byte("bonding-curve"), mint.Bytes()},
			PumpFunProgramID,
		)
		require.NoError(t, err)

		assert.Equal(t, want, got, "curve address for %s", mint)
		assert.Equal(t, wantBump, bump, "bump for %s", mint)
		assert.False(t, solana.IsOnCurve(got.Bytes()), "PDA must be off curve")
	}
}

func TestDeriveAssociatedAddress_MatchesATA(t *testing.T) {
	deriver := NewAddressDeriver(GetDefaultConfig())

	for i := 0; i < 8; i++ {
		mint := solana.NewWallet().PublicKey()

		curve, _, err := deriver.DeriveCurveAddress(mint)
		require.NoError(t, err)

		got, err := deriver.DeriveAssociatedAddress(curve, mint)
		require.NoError(t, err)

		want, _, err := solana.FindAssociatedTokenAddress(curve, mint)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDeriveBondingCurveAccounts_Deterministic(t *testing.T) {
	deriver := NewAddressDeriver(GetDefaultConfig())

	curve1, ata1, err := deriver.DeriveBondingCurveAccounts(testMint)
	require.NoError(t, err)
	curve2, ata2, err := deriver.DeriveBondingCurveAccounts(testMint)
	require.NoError(t, err)

	assert.Equal(t, curve1, curve2)
	assert.Equal(t, ata1, ata2)
	assert.NotEqual(t, curve1, ata1)
}

func TestDeriveCurveAddress_SensitiveToEveryMintByte(t *testing.T) {
	deriver := NewAddressDeriver(GetDefaultConfig())
	base, _, err := deriver.DeriveCurveAddress(testMint)
	require.NoError(t, err)
	baseATA, err := deriver.DeriveAssociatedAddress(base, testMint)
	require.NoError(t, err)

	for i := 0; i < solana.PublicKeyLength; i++ {
		mutated := testMint
		mutated[i] ^= 0x01

		addr, _, err := deriver.DeriveCurveAddress(mutated)
		require.NoError(t, err)
		assert.NotEqual(t, base, addr, "flipping byte %d must change the curve address", i)

		ata, err := deriver.DeriveAssociatedAddress(base, mutated)
		require.NoError(t, err)
		assert.NotEqual(t, baseATA, ata, "flipping byte %d must change the associated address", i)
	}
}

func TestDeriveCurveAddress_SensitiveToProgramID(t *testing.T) {
	cfg := GetDefaultConfig()
	other := *cfg
	other.ProgramID = solana.MustPublicKeyFromBase58("pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA")

	a, _, err := NewAddressDeriver(cfg).DeriveCurveAddress(testMint)
	require.NoError(t, err)
	b, _, err := NewAddressDeriver(&other).DeriveCurveAddress(testMint)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestFindProgramAddress_InvalidSeeds(t *testing.T) {
	tests := []struct {
		name  string
		seeds [][]byte
	}{
		{
			name:  "seed longer than 32 bytes",
			seeds: [][]byte{bytes.Repeat([]byte{1}, solana.MaxSeedLength+1)},
		},
		{
			name:  "too many seeds",
			seeds: make([][]byte, solana.MaxSeeds),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := findProgramAddress(tt.seeds, PumpFunProgramID)
			require.Error(t, err)

			var derivErr *DerivationError
			require.True(t, errors.As(err, &derivErr))
			assert.Equal(t, PumpFunProgramID, derivErr.ProgramID)
			assert.NotEmpty(t, derivErr.Reason)
		})
	}
}
