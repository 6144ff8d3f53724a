package keeper

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	commontypes "github.com/bridgex-network/bridgex/common/types"
	"github.com/bridgex-network/bridgex/x/poolmanager/types"
	rewardtypes "github.com/bridgex-network/bridgex/x/reward/types"
)

// UpdateRewardStake recomputes the vault's stake in both hierarchy levels
// from its current collateral and secure threshold:
//
//	vault pool stake    = collateral / secure threshold
//	capacity pool stake = sum of the currency's vault stakes / oracle price
//
// The previous stake is replaced, not added to. Called whenever the vault's
// collateral or threshold changes, and by the migration for every vault.
func (k Keeper) UpdateRewardStake(ctx sdk.Context, vault commontypes.VaultId) error {
	totalCollateral := k.stakingKeeper.TotalCurrentStake(ctx, vault.String())

	threshold, err := k.vaultKeeper.GetSecureThreshold(ctx, vault)
	if err != nil {
		return err
	}
	if !threshold.IsPositive() {
		return sdkerrors.Wrapf(types.ErrInvalidThreshold, "vault %s", vault.String())
	}

	capacityStake, err := rewardtypes.CheckedQuo(totalCollateral, threshold)
	if err != nil {
		return err
	}
	err = k.vaultPool.SetStake(ctx, vault.CollateralCurrency, vault.String(), capacityStake)
	if err != nil {
		return err
	}

	return k.updateCapacityStake(ctx, vault.CollateralCurrency)
}

// updateCapacityStake re-stakes the currency's slot in the capacity pool to
// the currency's total vault-pool stake, converted to the common accounting
// unit via the oracle price.
func (k Keeper) updateCapacityStake(ctx sdk.Context, collateralCurrency string) error {
	price, err := k.oracleKeeper.GetExchangeRate(ctx, collateralCurrency)
	if err != nil {
		return sdkerrors.Wrapf(types.ErrPriceUnavailable, "currency %s: %s", collateralCurrency, err)
	}

	totalStake := k.vaultPool.TotalStake(ctx, collateralCurrency)
	converted, err := rewardtypes.CheckedQuo(totalStake, price)
	if err != nil {
		return sdkerrors.Wrapf(err, "converting capacity stake for %s", collateralCurrency)
	}

	return k.capacityPool.SetStake(ctx, types.GlobalPoolID, collateralCurrency, converted)
}

// DistributeReward credits amount at the top of the hierarchy. It spreads
// across collateral currencies proportional to capacity and becomes claimable
// by nominators once cascaded down.
func (k Keeper) DistributeReward(ctx sdk.Context, currencyID string, amount math.LegacyDec) error {
	return k.capacityPool.DistributeReward(ctx, types.GlobalPoolID, currencyID, amount)
}

// distributeCapacityRewards settles the collateral currency's share of
// capacity-pool rewards and pushes it into the currency's vault pool.
func (k Keeper) distributeCapacityRewards(ctx sdk.Context, collateralCurrency, rewardCurrencyID string) error {
	reward, err := k.capacityPool.WithdrawReward(ctx, types.GlobalPoolID, collateralCurrency, rewardCurrencyID)
	if err != nil {
		return err
	}
	return k.vaultPool.DistributeReward(ctx, collateralCurrency, rewardCurrencyID, reward)
}

// DistributeVaultRewards cascades pending rewards down the hierarchy for one
// vault: from the currency level to the vault level by capacity, then into
// the vault's nominator staking pool by individual stake.
func (k Keeper) DistributeVaultRewards(ctx sdk.Context, vault commontypes.VaultId, rewardCurrencyID string) error {
	err := k.distributeCapacityRewards(ctx, vault.CollateralCurrency, rewardCurrencyID)
	if err != nil {
		return err
	}

	reward, err := k.vaultPool.WithdrawReward(ctx, vault.CollateralCurrency, vault.String(), rewardCurrencyID)
	if err != nil {
		return err
	}
	return k.stakingKeeper.DistributeReward(ctx, vault.String(), rewardCurrencyID, reward)
}

// WithdrawNominatorReward cascades pending rewards for the vault, settles the
// nominator's share and pays it out from the module account. Returns the
// transferred amount.
func (k Keeper) WithdrawNominatorReward(ctx sdk.Context, vault commontypes.VaultId, nominator, rewardCurrencyID string) (math.Int, error) {
	if err := k.DistributeVaultRewards(ctx, vault, rewardCurrencyID); err != nil {
		return math.ZeroInt(), err
	}

	reward, err := k.stakingKeeper.WithdrawReward(ctx, vault.String(), nominator, rewardCurrencyID)
	if err != nil {
		return math.ZeroInt(), err
	}

	amount := reward.TruncateInt()
	if amount.IsPositive() {
		addr, err := sdk.AccAddressFromBech32(nominator)
		if err != nil {
			return math.ZeroInt(), err
		}
		coins := sdk.NewCoins(sdk.NewCoin(rewardCurrencyID, amount))
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, addr, coins); err != nil {
			return math.ZeroInt(), err
		}
	}
	return amount, nil
}
