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

	rewardkeeper "github.com/bridgex-network/bridgex/x/reward/keeper"
	rewardtypes "github.com/bridgex-network/bridgex/x/reward/types"
)

func RewardKeeper(t testing.TB) (*rewardkeeper.Keeper, storetypes.StoreKey, sdk.Context) {
	storeKey := storetypes.NewKVStoreKey(rewardtypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	k := rewardkeeper.NewKeeper()
	ctx := sdk.NewContext(stateStore, tmproto.Header{}, false, log.NewNopLogger())

	return k, storeKey, ctx
}

// RewardPool returns a reward pool instance backed by a fresh in-memory store.
func RewardPool(t testing.TB, prefix string) (*rewardtypes.RewardPool, sdk.Context) {
	k, storeKey, ctx := RewardKeeper(t)
	return k.NewRewardPool(storeKey, prefix), ctx
}
