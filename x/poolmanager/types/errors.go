package types

// DONTCOVER

import (
	sdkerrors "cosmossdk.io/errors"
)

// x/poolmanager module sentinel errors
var (
	ErrPriceUnavailable = sdkerrors.Register(ModuleName, 1000, "oracle price unavailable")
	ErrInvalidThreshold = sdkerrors.Register(ModuleName, 1001, "secure collateral threshold must be positive")
)
