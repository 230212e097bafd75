// =============================
// File: internal/dex/pumpfun/accounts.go
// =============================
package pumpfun

import (
	"github.com/gagliardetto/solana-go"
)

// bondingCurveSeed is the static seed of the bonding curve PDA.
var bondingCurveSeed = []byte("bonding-curve")

// AddressDeriver computes the bonding curve accounts of a token mint.
// It holds only program identifiers and is safe for concurrent use.
type AddressDeriver struct {
	programID                solana.PublicKey
	tokenProgramID           solana.PublicKey
	associatedTokenProgramID solana.PublicKey
}

// NewAddressDeriver creates a deriver bound to the program ids in cfg.
func NewAddressDeriver(cfg *Config) *AddressDeriver {
	return &AddressDeriver{
		programID:                cfg.ProgramID,
		tokenProgramID:           cfg.TokenProgramID,
		associatedTokenProgramID: cfg.AssociatedTokenProgramID,
	}
}

// DeriveCurveAddress вычисляет PDA bonding curve из сидов ["bonding-curve", mint].
func (d *AddressDeriver) DeriveCurveAddress(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return findProgramAddress([][]byte{bondingCurveSeed, mint.Bytes()}, d.programID)
}

// DeriveAssociatedAddress вычисляет ассоциированный токен-аккаунт (ATA) bonding curve.
// Seeds follow the (owner, token program, mint) convention.
func (d *AddressDeriver) DeriveAssociatedAddress(bondingCurve, mint solana.PublicKey) (solana.PublicKey, error) {
	address, _, err := findProgramAddress(
		[][]byte{bondingCurve.Bytes(), d.tokenProgramID.Bytes(), mint.Bytes()},
		d.associatedTokenProgramID,
	)
	return address, err
}

// DeriveBondingCurveAccounts returns both the bonding curve and its associated token account.
func (d *AddressDeriver) DeriveBondingCurveAccounts(mint solana.PublicKey) (bondingCurve, associatedBondingCurve solana.PublicKey, err error) {
	bondingCurve, _, err = d.DeriveCurveAddress(mint)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, err
	}

	associatedBondingCurve, err = d.DeriveAssociatedAddress(bondingCurve, mint)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, err
	}

	return bondingCurve, associatedBondingCurve, nil
}

// findProgramAddress runs the runtime PDA search (bump 255 down to 1) and
// reports failure as a DerivationError.
func findProgramAddress(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	address, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, 0, &DerivationError{
			ProgramID: programID,
			Reason:    err.Error(),
		}
	}
	return address, bump, nil
}
