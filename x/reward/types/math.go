package types

import (
	"cosmossdk.io/math"
)

// math.LegacyDec panics when a result exceeds its 2^256 mantissa bound. The
// checked wrappers below convert that panic into ErrArithmeticOverflow so a
// single oversized operation rejects cleanly instead of aborting the whole
// state transition.

func CheckedAdd(a, b math.LegacyDec) (res math.LegacyDec, err error) {
	defer func() {
		if recover() != nil {
			err = ErrArithmeticOverflow
		}
	}()
	return a.Add(b), nil
}

func CheckedSub(a, b math.LegacyDec) (res math.LegacyDec, err error) {
	defer func() {
		if recover() != nil {
			err = ErrArithmeticOverflow
		}
	}()
	return a.Sub(b), nil
}

func CheckedMul(a, b math.LegacyDec) (res math.LegacyDec, err error) {
	defer func() {
		if recover() != nil {
			err = ErrArithmeticOverflow
		}
	}()
	return a.Mul(b), nil
}

// CheckedQuo divides a by b, truncating the result. A zero denominator is
// rejected with ErrZeroDivision, never a panic.
func CheckedQuo(a, b math.LegacyDec) (res math.LegacyDec, err error) {
	if b.IsZero() {
		return math.LegacyZeroDec(), ErrZeroDivision
	}
	defer func() {
		if recover() != nil {
			err = ErrArithmeticOverflow
		}
	}()
	return a.QuoTruncate(b), nil
}
