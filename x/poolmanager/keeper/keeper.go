package keeper

import (
	"fmt"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bridgex-network/bridgex/x/poolmanager/types"
	rewardkeeper "github.com/bridgex-network/bridgex/x/reward/keeper"
	rewardtypes "github.com/bridgex-network/bridgex/x/reward/types"
)

// Keeper composes the two-level reward hierarchy: a capacity pool staked per
// collateral currency and a vault pool staked per vault, both instances of the
// generic reward pool under their own prefixes. Rewards enter at the capacity
// pool and cascade down to the per-vault nominator staking pool.
type (
	Keeper struct {
		storeKey storetypes.StoreKey

		capacityPool       *rewardtypes.RewardPool
		vaultPool          *rewardtypes.RewardPool
		legacyVaultRewards *rewardtypes.RewardPool

		stakingKeeper types.StakingKeeper
		vaultKeeper   types.VaultRegistryKeeper
		oracleKeeper  types.OracleKeeper
		bankKeeper    types.BankKeeper

		nativeCurrencyID string
	}
)

func NewKeeper(
	storeKey storetypes.StoreKey,
	rewardKeeper *rewardkeeper.Keeper,
	stakingKeeper types.StakingKeeper,
	vaultKeeper types.VaultRegistryKeeper,
	oracleKeeper types.OracleKeeper,
	bankKeeper types.BankKeeper,
	nativeCurrencyID string,
) *Keeper {
	return &Keeper{
		storeKey: storeKey,

		capacityPool:       rewardKeeper.NewRewardPool(storeKey, types.CapacityPoolPrefix),
		vaultPool:          rewardKeeper.NewRewardPool(storeKey, types.VaultPoolPrefix),
		legacyVaultRewards: rewardKeeper.NewRewardPool(storeKey, types.LegacyVaultRewardsPrefix),

		stakingKeeper: stakingKeeper,
		vaultKeeper:   vaultKeeper,
		oracleKeeper:  oracleKeeper,
		bankKeeper:    bankKeeper,

		nativeCurrencyID: nativeCurrencyID,
	}
}

func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// CapacityPool returns the currency-level pool of the hierarchy.
func (k Keeper) CapacityPool() *rewardtypes.RewardPool {
	return k.capacityPool
}

// VaultPool returns the vault-level pool of the hierarchy.
func (k Keeper) VaultPool() *rewardtypes.RewardPool {
	return k.vaultPool
}

// LegacyVaultRewards returns the flat pre-hierarchy pool. It only exists to be
// drained and cleared by the v0 to v1 migration.
func (k Keeper) LegacyVaultRewards() *rewardtypes.RewardPool {
	return k.legacyVaultRewards
}

// GetStorageVersion returns the persisted schema version. 0 means the flat
// reward scheme is still in place and the migration is eligible to run.
func (k Keeper) GetStorageVersion(ctx sdk.Context) uint64 {
	b := ctx.KVStore(k.storeKey).Get([]byte(types.VersionKey))
	if b == nil {
		return 0
	}
	return sdk.BigEndianToUint64(b)
}

func (k Keeper) setStorageVersion(ctx sdk.Context, version uint64) {
	ctx.KVStore(k.storeKey).Set([]byte(types.VersionKey), sdk.Uint64ToBigEndian(version))
}
