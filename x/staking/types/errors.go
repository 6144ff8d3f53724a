package types

// DONTCOVER

import (
	sdkerrors "cosmossdk.io/errors"
)

// x/staking module sentinel errors
var (
	ErrInsufficientStake = sdkerrors.Register(ModuleName, 1000, "withdrawal exceeds nominated balance")
	ErrInvalidAmount     = sdkerrors.Register(ModuleName, 1001, "amount must not be negative")
)
