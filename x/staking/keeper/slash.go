package keeper

import (
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bridgex-network/bridgex/x/staking/types"
)

// ForceRefund drains the vault's pool at the current nonce and advances the
// nonce. Every nominator's stake and pending rewards are settled and returned
// for the caller to transfer; whatever bookkeeping remains under the old nonce
// is never addressed again. Nominators are processed in ascending key order.
func (k Keeper) ForceRefund(ctx sdk.Context, vault string) ([]types.Refund, error) {
	nonce := k.Nonce(ctx, vault)
	currencies := k.rewardCurrencies(ctx, nonce, vault)

	refunds := []types.Refund{}
	for _, nominator := range k.nominators(ctx, nonce, vault) {
		rewards := []types.RewardAmount{}
		for _, currencyID := range currencies {
			reward, err := k.WithdrawReward(ctx, vault, nominator, currencyID)
			if err != nil {
				return nil, err
			}
			if !reward.IsZero() {
				rewards = append(rewards, types.RewardAmount{CurrencyID: currencyID, Amount: reward})
			}
		}

		stake := k.ComputeStake(ctx, vault, nominator)
		if err := k.WithdrawStake(ctx, vault, nominator, stake); err != nil {
			return nil, err
		}
		refunds = append(refunds, types.Refund{Nominator: nominator, Stake: stake, Rewards: rewards})
	}

	k.setNonce(ctx, vault, nonce+1)
	k.Logger(ctx).Info("force refund",
		"vault", vault,
		"nominators", len(refunds),
		"new_nonce", nonce+1,
	)
	return refunds, nil
}

// CurrentNominators returns the vault's nominators at the current nonce.
func (k Keeper) CurrentNominators(ctx sdk.Context, vault string) []string {
	return k.nominators(ctx, k.Nonce(ctx, vault), vault)
}

// nominators returns the vault's nominators at the given nonce, ascending.
func (k Keeper) nominators(ctx sdk.Context, nonce uint64, vault string) []string {
	store := k.store(ctx, types.StakePrefix)
	iterPrefix := types.StakeIteratorPrefix(nonce, vault)
	iterator := storetypes.KVStorePrefixIterator(store, iterPrefix)
	defer iterator.Close()

	nominators := []string{}
	for ; iterator.Valid(); iterator.Next() {
		nominators = append(nominators, string(iterator.Key())[len(iterPrefix):])
	}
	return nominators
}
