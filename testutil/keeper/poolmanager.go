package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	tmproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	poolmanagerkeeper "github.com/bridgex-network/bridgex/x/poolmanager/keeper"
	poolmanagertypes "github.com/bridgex-network/bridgex/x/poolmanager/types"
	rewardkeeper "github.com/bridgex-network/bridgex/x/reward/keeper"
	stakingkeeper "github.com/bridgex-network/bridgex/x/staking/keeper"
	stakingtypes "github.com/bridgex-network/bridgex/x/staking/types"
)

// NativeCurrencyID is the native currency configured for test keepers.
const NativeCurrencyID = "native"

// PoolManagerKeepers bundles the pool manager keeper with its dependencies so
// tests can both drive the hierarchy and inspect or seed the layers below it.
type PoolManagerKeepers struct {
	PoolManager   *poolmanagerkeeper.Keeper
	Staking       *stakingkeeper.Keeper
	VaultRegistry *MockVaultRegistry
	Oracle        *MockOracle
	Bank          *MockBank
}

func PoolManagerKeeper(t testing.TB) (PoolManagerKeepers, sdk.Context) {
	storeKey := storetypes.NewKVStoreKey(poolmanagertypes.StoreKey)
	stakingStoreKey := storetypes.NewKVStoreKey(stakingtypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(stakingStoreKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	vaultRegistry := NewMockVaultRegistry()
	oracle := NewMockOracle()
	bank := NewMockBank()

	staking := stakingkeeper.NewKeeper(stakingStoreKey)
	poolManager := poolmanagerkeeper.NewKeeper(
		storeKey,
		rewardkeeper.NewKeeper(),
		staking,
		vaultRegistry,
		oracle,
		bank,
		NativeCurrencyID,
	)

	ctx := sdk.NewContext(stateStore, tmproto.Header{}, false, log.NewNopLogger())

	keepers := PoolManagerKeepers{
		PoolManager:   poolManager,
		Staking:       staking,
		VaultRegistry: vaultRegistry,
		Oracle:        oracle,
		Bank:          bank,
	}
	return keepers, ctx
}
