package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	testcommon "github.com/bridgex-network/bridgex/testutil/common"
	testkeeper "github.com/bridgex-network/bridgex/testutil/keeper"
	"github.com/bridgex-network/bridgex/x/poolmanager/keeper"
	"github.com/bridgex-network/bridgex/x/poolmanager/types"
)

func TestMigrateVersion0To1(t *testing.T) {
	ts, ctx := testkeeper.PoolManagerKeeper(t)
	seq := testcommon.NewSequencer()

	vault := seq.Vault(collateral, wrapped)
	operator := seq.Account()
	ts.VaultRegistry.AddVault(vault, math.LegacyNewDec(2))
	ts.VaultRegistry.TotalCollateral[collateral] = math.LegacyNewDec(1000)
	ts.Oracle.SetExchangeRate(collateral, math.LegacyMustNewDecFromStr("0.1"))

	legacy := ts.PoolManager.LegacyVaultRewards()
	require.NoError(t, legacy.DepositStake(ctx, types.GlobalPoolID, vault.String(), math.LegacyNewDec(100)))
	require.NoError(t, legacy.DistributeReward(ctx, types.GlobalPoolID, wrapped, math.LegacyNewDec(100)))
	require.NoError(t, ts.Staking.DepositStake(ctx, vault.String(), operator, math.LegacyNewDec(1000)))

	migrator := keeper.NewMigrator(*ts.PoolManager)
	complete, err := migrator.MigrateVersion0To1(ctx)
	require.NoError(t, err)
	require.True(t, complete)
	require.Equal(t, uint64(1), ts.PoolManager.GetStorageVersion(ctx))

	// the legacy reward moved into the vault's nominator pool
	reward, err := ts.Staking.ComputeReward(ctx, vault.String(), operator, wrapped)
	require.NoError(t, err)
	requireDecEqual(t, math.LegacyNewDec(100), reward)

	// the legacy pool is gone
	requireDecEqual(t, math.LegacyZeroDec(), legacy.TotalStake(ctx, types.GlobalPoolID))
	requireDecEqual(t, math.LegacyZeroDec(), legacy.TotalRewards(ctx, wrapped))
	require.Empty(t, legacy.RewardCurrencies(ctx, types.GlobalPoolID))

	// hierarchy stakes derived from collateral, threshold and price
	requireDecEqual(t, math.LegacyNewDec(500), ts.PoolManager.VaultPool().GetStake(ctx, collateral, vault.String()))
	requireDecEqual(t, math.LegacyNewDec(5000), ts.PoolManager.CapacityPool().GetStake(ctx, types.GlobalPoolID, collateral))

	require.NoError(t, migrator.VerifyMigration(ctx))
}

func TestMigrateVersion0To1SpansInvocations(t *testing.T) {
	ts, ctx := testkeeper.PoolManagerKeeper(t)
	seq := testcommon.NewSequencer()

	// three vaults plus a populated legacy pool exceed a budget of 2 work
	// units many times over
	operators := map[string]string{}
	legacy := ts.PoolManager.LegacyVaultRewards()
	for i := 0; i < 3; i++ {
		vault := seq.Vault(collateral, wrapped)
		operator := seq.Account()
		operators[vault.String()] = operator
		ts.VaultRegistry.AddVault(vault, math.LegacyNewDec(2))
		require.NoError(t, legacy.DepositStake(ctx, types.GlobalPoolID, vault.String(), math.LegacyNewDec(100)))
		require.NoError(t, ts.Staking.DepositStake(ctx, vault.String(), operator, math.LegacyNewDec(600)))
	}
	require.NoError(t, legacy.DistributeReward(ctx, types.GlobalPoolID, wrapped, math.LegacyNewDec(300)))
	ts.Oracle.SetExchangeRate(collateral, math.LegacyNewDec(1))
	ts.VaultRegistry.TotalCollateral[collateral] = math.LegacyNewDec(1800)

	migrator := keeper.NewMigratorWithBudget(*ts.PoolManager, 2)

	invocations := 0
	for {
		require.Less(t, invocations, 100, "migration never completed")
		complete, err := migrator.MigrateVersion0To1(ctx)
		require.NoError(t, err)
		invocations++
		if complete {
			break
		}
		// still in flight: the version must not have been bumped yet
		require.Equal(t, uint64(0), ts.PoolManager.GetStorageVersion(ctx))
	}
	require.Greater(t, invocations, 1)
	require.Equal(t, uint64(1), ts.PoolManager.GetStorageVersion(ctx))

	// every vault migrated exactly once despite the many invocations
	for _, vault := range ts.VaultRegistry.GetVaults(ctx) {
		reward, err := ts.Staking.ComputeReward(ctx, vault.String(), operators[vault.String()], wrapped)
		require.NoError(t, err)
		requireDecEqual(t, math.LegacyNewDec(100), reward)
		requireDecEqual(t, math.LegacyNewDec(300), ts.PoolManager.VaultPool().GetStake(ctx, collateral, vault.String()))
	}
	requireDecEqual(t, math.LegacyZeroDec(), legacy.TotalStake(ctx, types.GlobalPoolID))
	require.NoError(t, migrator.VerifyMigration(ctx))
}

func TestMigrateVersion0To1Idempotent(t *testing.T) {
	ts, ctx := testkeeper.PoolManagerKeeper(t)
	seq := testcommon.NewSequencer()

	vault := seq.Vault(collateral, wrapped)
	operator := seq.Account()
	ts.VaultRegistry.AddVault(vault, math.LegacyNewDec(2))
	ts.Oracle.SetExchangeRate(collateral, math.LegacyMustNewDecFromStr("0.1"))

	legacy := ts.PoolManager.LegacyVaultRewards()
	require.NoError(t, legacy.DepositStake(ctx, types.GlobalPoolID, vault.String(), math.LegacyNewDec(100)))
	require.NoError(t, legacy.DistributeReward(ctx, types.GlobalPoolID, wrapped, math.LegacyNewDec(100)))
	require.NoError(t, ts.Staking.DepositStake(ctx, vault.String(), operator, math.LegacyNewDec(1000)))

	migrator := keeper.NewMigrator(*ts.PoolManager)
	complete, err := migrator.MigrateVersion0To1(ctx)
	require.NoError(t, err)
	require.True(t, complete)

	// a second run is a no-op: nothing doubles
	complete, err = migrator.MigrateVersion0To1(ctx)
	require.NoError(t, err)
	require.True(t, complete)
	require.Equal(t, uint64(1), ts.PoolManager.GetStorageVersion(ctx))

	reward, err := ts.Staking.ComputeReward(ctx, vault.String(), operator, wrapped)
	require.NoError(t, err)
	requireDecEqual(t, math.LegacyNewDec(100), reward)
	requireDecEqual(t, math.LegacyNewDec(500), ts.PoolManager.VaultPool().GetStake(ctx, collateral, vault.String()))
}

func TestMigrateVersion0To1WithEmptyVault(t *testing.T) {
	ts, ctx := testkeeper.PoolManagerKeeper(t)
	seq := testcommon.NewSequencer()

	healthy := seq.Vault(collateral, wrapped)
	empty := seq.Vault(collateral, wrapped)
	operator := seq.Account()
	ts.VaultRegistry.AddVault(healthy, math.LegacyNewDec(2))
	ts.VaultRegistry.AddVault(empty, math.LegacyNewDec(2))
	ts.Oracle.SetExchangeRate(collateral, math.LegacyNewDec(1))
	require.NoError(t, ts.Staking.DepositStake(ctx, healthy.String(), operator, math.LegacyNewDec(1000)))

	legacy := ts.PoolManager.LegacyVaultRewards()
	require.NoError(t, legacy.DepositStake(ctx, types.GlobalPoolID, healthy.String(), math.LegacyNewDec(100)))
	require.NoError(t, legacy.DepositStake(ctx, types.GlobalPoolID, empty.String(), math.LegacyNewDec(100)))
	require.NoError(t, legacy.DistributeReward(ctx, types.GlobalPoolID, wrapped, math.LegacyNewDec(100)))

	// the empty vault has no nominators, its share is dropped rather than
	// stalling the migration of the healthy vault
	migrator := keeper.NewMigrator(*ts.PoolManager)
	complete, err := migrator.MigrateVersion0To1(ctx)
	require.NoError(t, err)
	require.True(t, complete)
	require.Equal(t, uint64(1), ts.PoolManager.GetStorageVersion(ctx))

	reward, err := ts.Staking.ComputeReward(ctx, healthy.String(), operator, wrapped)
	require.NoError(t, err)
	requireDecEqual(t, math.LegacyNewDec(50), reward)
	requireDecEqual(t, math.LegacyZeroDec(), ts.Staking.TotalCurrentStake(ctx, empty.String()))
}

func TestMigrateVersion0To1AbortsOnStakeConversionFailure(t *testing.T) {
	ts, ctx := testkeeper.PoolManagerKeeper(t)
	seq := testcommon.NewSequencer()

	vault := seq.Vault(collateral, wrapped)
	ts.VaultRegistry.AddVault(vault, math.LegacyNewDec(2))
	// no oracle price: the stake conversion must fail and the version stay 0

	migrator := keeper.NewMigrator(*ts.PoolManager)
	complete, err := migrator.MigrateVersion0To1(ctx)
	require.Error(t, err)
	require.False(t, complete)
	require.Equal(t, uint64(0), ts.PoolManager.GetStorageVersion(ctx))

	// the failed run can be retried once the price is available
	ts.Oracle.SetExchangeRate(collateral, math.LegacyNewDec(1))
	complete, err = migrator.MigrateVersion0To1(ctx)
	require.NoError(t, err)
	require.True(t, complete)
	require.Equal(t, uint64(1), ts.PoolManager.GetStorageVersion(ctx))
}
