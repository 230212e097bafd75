// ==============================================
// File: internal/dex/pumpfun/bonding_curve.go
// ==============================================
package pumpfun

import (
	"bytes"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Layout of the bonding curve account:
//
//	0   [8]  discriminator (skipped)
//	8   u64  virtual token reserves
//	16  u64  virtual sol reserves
//	24  u64  real token reserves
//	32  u64  real sol reserves
//	40  u64  token total supply
//	48  u8   complete
//	49  [32] creator
const (
	discriminatorSize = 8
	CurveRecordSize   = discriminatorSize + 5*8 + 1 + solana.PublicKeyLength
)

// DecodeCurveRecord parses a bonding curve account. Trailing bytes beyond
// CurveRecordSize are ignored. No partial record is returned on error.
func DecodeCurveRecord(data []byte, policy FlagPolicy) (*CurveRecord, error) {
	if len(data) < CurveRecordSize {
		return nil, &DecodeError{Reason: ReasonBufferTooShort, Length: len(data)}
	}

	dec := bin.NewBorshDecoder(data)
	if err := dec.SkipBytes(discriminatorSize); err != nil {
		return nil, &DecodeError{Reason: ReasonBufferTooShort, Length: len(data)}
	}

	var rec CurveRecord
	for _, field := range []*uint64{
		&rec.VirtualTokenReserves,
		&rec.VirtualSolReserves,
		&rec.RealTokenReserves,
		&rec.RealSolReserves,
		&rec.TokenTotalSupply,
	} {
		v, err := dec.ReadUint64(binary.LittleEndian)
		if err != nil {
			return nil, &DecodeError{Reason: ReasonBufferTooShort, Length: len(data)}
		}
		*field = v
	}

	flag, err := dec.ReadByte()
	if err != nil {
		return nil, &DecodeError{Reason: ReasonBufferTooShort, Length: len(data)}
	}
	switch {
	case flag == 0:
		rec.Complete = false
	case flag == 1 || policy == FlagLenient:
		rec.Complete = true
	default:
		return nil, &DecodeError{Reason: ReasonMalformedFlag, Length: len(data), Flag: flag}
	}

	creator, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return nil, &DecodeError{Reason: ReasonBufferTooShort, Length: len(data)}
	}
	rec.Creator = solana.PublicKeyFromBytes(creator)

	return &rec, nil
}

// EncodeCurveRecord writes rec in the on-chain layout behind the given discriminator.
func EncodeCurveRecord(rec *CurveRecord, discriminator [discriminatorSize]byte) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, CurveRecordSize))
	enc := bin.NewBorshEncoder(buf)

	if err := enc.WriteBytes(discriminator[:], false); err != nil {
		return nil, err
	}
	for _, v := range []uint64{
		rec.VirtualTokenReserves,
		rec.VirtualSolReserves,
		rec.RealTokenReserves,
		rec.RealSolReserves,
		rec.TokenTotalSupply,
	} {
		if err := enc.WriteUint64(v, binary.LittleEndian); err != nil {
			return nil, err
		}
	}
	if err := enc.WriteBool(rec.Complete); err != nil {
		return nil, err
	}
	if err := enc.WriteBytes(rec.Creator.Bytes(), false); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
