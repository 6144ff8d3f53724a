package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	testkeeper "github.com/bridgex-network/bridgex/testutil/keeper"
	"github.com/bridgex-network/bridgex/x/staking/types"
)

const (
	vault   = "cosmos1vault udot ubtc"
	rewards = "ubtc"
)

func requireDecEqual(t *testing.T, expected, actual math.LegacyDec) {
	t.Helper()
	require.True(t, expected.Equal(actual), "expected %s, got %s", expected, actual)
}

func TestDepositAndComputeStake(t *testing.T) {
	k, ctx := testkeeper.StakingKeeper(t)

	require.NoError(t, k.DepositStake(ctx, vault, "alice", math.LegacyNewDec(100)))
	require.NoError(t, k.DepositStake(ctx, vault, "bob", math.LegacyNewDec(50)))
	require.NoError(t, k.DepositStake(ctx, vault, "alice", math.LegacyNewDec(25)))

	requireDecEqual(t, math.LegacyNewDec(125), k.ComputeStake(ctx, vault, "alice"))
	requireDecEqual(t, math.LegacyNewDec(50), k.ComputeStake(ctx, vault, "bob"))
	requireDecEqual(t, math.LegacyNewDec(175), k.TotalCurrentStake(ctx, vault))
}

func TestDistributeRewardProportionalToStake(t *testing.T) {
	k, ctx := testkeeper.StakingKeeper(t)

	require.NoError(t, k.DepositStake(ctx, vault, "alice", math.LegacyNewDec(600)))
	require.NoError(t, k.DepositStake(ctx, vault, "bob", math.LegacyNewDec(400)))
	require.NoError(t, k.DistributeReward(ctx, vault, rewards, math.LegacyNewDec(100)))

	aliceReward, err := k.ComputeReward(ctx, vault, "alice", rewards)
	require.NoError(t, err)
	requireDecEqual(t, math.LegacyNewDec(60), aliceReward)

	bobReward, err := k.ComputeReward(ctx, vault, "bob", rewards)
	require.NoError(t, err)
	requireDecEqual(t, math.LegacyNewDec(40), bobReward)
}

func TestWithdrawRewardSettles(t *testing.T) {
	k, ctx := testkeeper.StakingKeeper(t)

	require.NoError(t, k.DepositStake(ctx, vault, "alice", math.LegacyNewDec(100)))
	require.NoError(t, k.DistributeReward(ctx, vault, rewards, math.LegacyNewDec(30)))

	reward, err := k.WithdrawReward(ctx, vault, "alice", rewards)
	require.NoError(t, err)
	requireDecEqual(t, math.LegacyNewDec(30), reward)
	requireDecEqual(t, math.LegacyZeroDec(), k.TotalRewards(ctx, vault, rewards))

	reward, err = k.WithdrawReward(ctx, vault, "alice", rewards)
	require.NoError(t, err)
	requireDecEqual(t, math.LegacyZeroDec(), reward)
}

func TestWithdrawStakeInsufficient(t *testing.T) {
	k, ctx := testkeeper.StakingKeeper(t)

	require.NoError(t, k.DepositStake(ctx, vault, "alice", math.LegacyNewDec(10)))
	err := k.WithdrawStake(ctx, vault, "alice", math.LegacyNewDec(11))
	require.ErrorIs(t, err, types.ErrInsufficientStake)
}

func TestDistributeRewardZeroStake(t *testing.T) {
	k, ctx := testkeeper.StakingKeeper(t)

	require.NoError(t, k.DistributeReward(ctx, vault, rewards, math.LegacyNewDec(100)))
	requireDecEqual(t, math.LegacyZeroDec(), k.TotalRewards(ctx, vault, rewards))

	require.NoError(t, k.DepositStake(ctx, vault, "alice", math.LegacyNewDec(10)))
	reward, err := k.ComputeReward(ctx, vault, "alice", rewards)
	require.NoError(t, err)
	requireDecEqual(t, math.LegacyZeroDec(), reward)
}

func TestVaultIsolation(t *testing.T) {
	k, ctx := testkeeper.StakingKeeper(t)
	other := "cosmos1other udot ubtc"

	require.NoError(t, k.DepositStake(ctx, vault, "alice", math.LegacyNewDec(100)))
	require.NoError(t, k.DepositStake(ctx, other, "alice", math.LegacyNewDec(10)))
	require.NoError(t, k.DistributeReward(ctx, vault, rewards, math.LegacyNewDec(50)))

	reward, err := k.ComputeReward(ctx, other, "alice", rewards)
	require.NoError(t, err)
	requireDecEqual(t, math.LegacyZeroDec(), reward)
	requireDecEqual(t, math.LegacyNewDec(10), k.TotalCurrentStake(ctx, other))
}

func TestCurrentNominators(t *testing.T) {
	k, ctx := testkeeper.StakingKeeper(t)

	require.NoError(t, k.DepositStake(ctx, vault, "alice", math.LegacyNewDec(1)))
	require.NoError(t, k.DepositStake(ctx, vault, "bob", math.LegacyNewDec(2)))

	require.ElementsMatch(t, []string{"alice", "bob"}, k.CurrentNominators(ctx, vault))
}
