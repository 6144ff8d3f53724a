package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	testkeeper "github.com/bridgex-network/bridgex/testutil/keeper"
)

func TestForceRefundReturnsStakeAndRewards(t *testing.T) {
	k, ctx := testkeeper.StakingKeeper(t)

	require.NoError(t, k.DepositStake(ctx, vault, "alice", math.LegacyNewDec(600)))
	require.NoError(t, k.DepositStake(ctx, vault, "bob", math.LegacyNewDec(400)))
	require.NoError(t, k.DistributeReward(ctx, vault, rewards, math.LegacyNewDec(100)))

	refunds, err := k.ForceRefund(ctx, vault)
	require.NoError(t, err)
	require.Len(t, refunds, 2)

	byNominator := map[string]math.LegacyDec{}
	for _, refund := range refunds {
		byNominator[refund.Nominator] = refund.Stake
		require.Len(t, refund.Rewards, 1)
		require.Equal(t, rewards, refund.Rewards[0].CurrencyID)
	}
	requireDecEqual(t, math.LegacyNewDec(600), byNominator["alice"])
	requireDecEqual(t, math.LegacyNewDec(400), byNominator["bob"])
}

func TestForceRefundAdvancesNonce(t *testing.T) {
	k, ctx := testkeeper.StakingKeeper(t)

	require.NoError(t, k.DepositStake(ctx, vault, "alice", math.LegacyNewDec(100)))
	require.Equal(t, uint64(0), k.Nonce(ctx, vault))

	_, err := k.ForceRefund(ctx, vault)
	require.NoError(t, err)
	require.Equal(t, uint64(1), k.Nonce(ctx, vault))

	// the refunded epoch is unreachable through the current nonce
	requireDecEqual(t, math.LegacyZeroDec(), k.ComputeStake(ctx, vault, "alice"))
	requireDecEqual(t, math.LegacyZeroDec(), k.TotalCurrentStake(ctx, vault))
	require.Empty(t, k.CurrentNominators(ctx, vault))
}

func TestStakeAfterForceRefundIsIsolated(t *testing.T) {
	k, ctx := testkeeper.StakingKeeper(t)

	require.NoError(t, k.DepositStake(ctx, vault, "alice", math.LegacyNewDec(100)))
	require.NoError(t, k.DistributeReward(ctx, vault, rewards, math.LegacyNewDec(10)))

	_, err := k.ForceRefund(ctx, vault)
	require.NoError(t, err)

	require.NoError(t, k.DepositStake(ctx, vault, "alice", math.LegacyNewDec(50)))
	requireDecEqual(t, math.LegacyNewDec(50), k.ComputeStake(ctx, vault, "alice"))

	// rewards of the refunded epoch do not leak into the new one
	reward, err := k.ComputeReward(ctx, vault, "alice", rewards)
	require.NoError(t, err)
	requireDecEqual(t, math.LegacyZeroDec(), reward)
}

func TestForceRefundEmptyVault(t *testing.T) {
	k, ctx := testkeeper.StakingKeeper(t)

	refunds, err := k.ForceRefund(ctx, vault)
	require.NoError(t, err)
	require.Empty(t, refunds)
	require.Equal(t, uint64(1), k.Nonce(ctx, vault))
}
