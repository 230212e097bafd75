// =============================
// File: internal/dex/pumpfun/errors.go
// =============================
package pumpfun

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Stage identifies the step of a market cap query that failed.
type Stage string

const (
	StageDerive Stage = "derive"
	StageFetch  Stage = "fetch"
	StageQuote  Stage = "quote"
)

// Decode error reasons
const (
	ReasonBufferTooShort = "buffer too short"
	ReasonMalformedFlag  = "malformed flag"
)

// Arithmetic error reasons
const (
	ReasonZeroTokenReserve = "zero token reserve"
	ReasonNonFinite        = "non-finite result"
)

// ErrInvalidQuote is returned when the quote reader yields a price that
// cannot be used (NaN, infinite or not positive).
var ErrInvalidQuote = errors.New("invalid fiat quote")

// DerivationError означает, что поиск bump не нашёл адрес вне кривой
type DerivationError struct {
	ProgramID solana.PublicKey
	Reason    string
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("address derivation failed for program %s: %s", e.ProgramID, e.Reason)
}

// DecodeError reports a bonding curve buffer that could not be decoded.
type DecodeError struct {
	Reason string
	Length int  // длина буфера
	Flag   byte // значение флага для ReasonMalformedFlag
}

func (e *DecodeError) Error() string {
	if e.Reason == ReasonMalformedFlag {
		return fmt.Sprintf("decode bonding curve: %s (0x%02x)", e.Reason, e.Flag)
	}
	return fmt.Sprintf("decode bonding curve: %s (%d bytes, need %d)", e.Reason, e.Length, CurveRecordSize)
}

// LookupError wraps a failure of address derivation or of a collaborator call.
type LookupError struct {
	Stage Stage
	Mint  solana.PublicKey
	Err   error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s stage failed for mint %s: %v", e.Stage, e.Mint, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// ArithmeticError reports a price computation that has no finite answer.
type ArithmeticError struct {
	Reason string
}

func (e *ArithmeticError) Error() string {
	return "market cap arithmetic: " + e.Reason
}

// FailedStage returns the stage tag of err, or "" if err is not a LookupError.
func FailedStage(err error) Stage {
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		return lookupErr.Stage
	}
	return ""
}
