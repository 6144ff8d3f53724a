package types

import (
	"fmt"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// VaultId identifies a vault by its operator account and the currency pair it
// operates: the collateral currency backing the vault and the wrapped currency
// it issues.
type VaultId struct {
	AccountId          string
	CollateralCurrency string
	WrappedCurrency    string
}

func NewVaultId(accountId, collateralCurrency, wrappedCurrency string) VaultId {
	return VaultId{
		AccountId:          accountId,
		CollateralCurrency: collateralCurrency,
		WrappedCurrency:    wrappedCurrency,
	}
}

// String encodes the vault id for use as a store key. Using " " (space) as
// separator is safe because Bech32 forbids its use as part of the address and
// denoms cannot contain it either.
func (v VaultId) String() string {
	return v.AccountId + " " + v.CollateralCurrency + " " + v.WrappedCurrency
}

// VaultIdFromString decodes a store-key encoded vault id.
func VaultIdFromString(s string) (VaultId, error) {
	split := strings.Split(s, " ")
	if len(split) != 3 {
		return VaultId{}, fmt.Errorf("invalid vault id key: %q", s)
	}
	return NewVaultId(split[0], split[1], split[2]), nil
}

// AccAddress returns the vault operator account address.
func (v VaultId) AccAddress() (sdk.AccAddress, error) {
	return sdk.AccAddressFromBech32(v.AccountId)
}
