package types

// DONTCOVER

import (
	sdkerrors "cosmossdk.io/errors"
)

// x/reward module sentinel errors
var (
	ErrInsufficientStake  = sdkerrors.Register(ModuleName, 1000, "withdrawal exceeds staked balance")
	ErrInvalidAmount      = sdkerrors.Register(ModuleName, 1001, "amount must not be negative")
	ErrArithmeticOverflow = sdkerrors.Register(ModuleName, 1002, "fixed point arithmetic overflow")
	ErrZeroDivision       = sdkerrors.Register(ModuleName, 1003, "division by zero")
)
