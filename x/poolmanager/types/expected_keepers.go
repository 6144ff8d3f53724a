package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	commontypes "github.com/bridgex-network/bridgex/common/types"
)

// StakingKeeper is the nominator staking pool the hierarchy distributes into.
type StakingKeeper interface {
	DepositStake(ctx sdk.Context, vault, nominator string, amount math.LegacyDec) error
	DistributeReward(ctx sdk.Context, vault, currencyID string, amount math.LegacyDec) error
	ComputeReward(ctx sdk.Context, vault, nominator, currencyID string) (math.LegacyDec, error)
	WithdrawReward(ctx sdk.Context, vault, nominator, currencyID string) (math.LegacyDec, error)
	ComputeStake(ctx sdk.Context, vault, nominator string) math.LegacyDec
	TotalCurrentStake(ctx sdk.Context, vault string) math.LegacyDec
	CurrentNominators(ctx sdk.Context, vault string) []string
}

// VaultRegistryKeeper exposes the vault registry state the engine consumes.
// GetVaults must return vaults in ascending id order so every executor of the
// same state transition iterates identically.
type VaultRegistryKeeper interface {
	GetVaults(ctx sdk.Context) []commontypes.VaultId
	GetSecureThreshold(ctx sdk.Context, vault commontypes.VaultId) (math.LegacyDec, error)
	GetLiquidatedCollateral(ctx sdk.Context, vault commontypes.VaultId) math.LegacyDec
	GetLiquidationVaultCollateral(ctx sdk.Context, collateralCurrency string) math.LegacyDec
	GetTotalUserVaultCollateral(ctx sdk.Context, collateralCurrency string) math.LegacyDec
}

// OracleKeeper provides exchange rates, used only for cross-currency stake
// conversion.
type OracleKeeper interface {
	GetExchangeRate(ctx sdk.Context, currencyID string) (math.LegacyDec, error)
}

// BankKeeper defines the expected interface needed to transfer settled
// rewards out of the module account.
type BankKeeper interface {
	SendCoinsFromModuleToAccount(ctx sdk.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
}
