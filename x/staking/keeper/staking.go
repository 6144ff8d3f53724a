package keeper

import (
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	rewardtypes "github.com/bridgex-network/bridgex/x/reward/types"
	"github.com/bridgex-network/bridgex/x/staking/types"
)

// The accounting below mirrors the generic reward pool: a per-currency
// reward-per-token accumulator advanced on distribution, and a cumulative
// reward tally per nominator adjusted on stake changes. All entries are keyed
// under the vault's current nonce.

// ComputeStake returns a nominator's stake in the vault's pool at the current
// nonce. Prior-epoch balances are unreachable by design.
func (k Keeper) ComputeStake(ctx sdk.Context, vault, nominator string) math.LegacyDec {
	nonce := k.Nonce(ctx, vault)
	return getDec(k.store(ctx, types.StakePrefix), types.StakeKey(nonce, vault, nominator))
}

// TotalCurrentStake returns the sum of all nominator stake in the vault's pool
// at the current nonce.
func (k Keeper) TotalCurrentStake(ctx sdk.Context, vault string) math.LegacyDec {
	nonce := k.Nonce(ctx, vault)
	return getDec(k.store(ctx, types.TotalStakePrefix), types.TotalStakeKey(nonce, vault))
}

// TotalRewards returns the vault pool's not-yet-withdrawn rewards in the given
// currency at the current nonce.
func (k Keeper) TotalRewards(ctx sdk.Context, vault, currencyID string) math.LegacyDec {
	nonce := k.Nonce(ctx, vault)
	return getDec(k.store(ctx, types.TotalRewardsPrefix), types.TotalRewardsKey(nonce, vault, currencyID))
}

func (k Keeper) rewardPerToken(ctx sdk.Context, nonce uint64, vault, currencyID string) math.LegacyDec {
	return getDec(k.store(ctx, types.RewardPerTokenPrefix), types.RewardPerTokenKey(nonce, vault, currencyID))
}

func (k Keeper) rewardTally(ctx sdk.Context, nonce uint64, vault, nominator, currencyID string) math.LegacyDec {
	return getDec(k.store(ctx, types.RewardTallyPrefix), types.RewardTallyKey(nonce, vault, nominator, currencyID))
}

// rewardCurrencies returns every currency ever distributed to the vault's pool
// at the given nonce, in ascending order.
func (k Keeper) rewardCurrencies(ctx sdk.Context, nonce uint64, vault string) []string {
	store := k.store(ctx, types.RewardCurrenciesPrefix)
	iterPrefix := types.RewardCurrenciesIteratorPrefix(nonce, vault)
	iterator := storetypes.KVStorePrefixIterator(store, iterPrefix)
	defer iterator.Close()

	currencies := []string{}
	for ; iterator.Valid(); iterator.Next() {
		currencies = append(currencies, string(iterator.Key())[len(iterPrefix):])
	}
	return currencies
}

type tallyUpdate struct {
	currencyID string
	tally      math.LegacyDec
}

func (k Keeper) settleUpdates(ctx sdk.Context, nonce uint64, vault, nominator string, delta math.LegacyDec) ([]tallyUpdate, error) {
	updates := []tallyUpdate{}
	for _, currencyID := range k.rewardCurrencies(ctx, nonce, vault) {
		adjustment, err := rewardtypes.CheckedMul(k.rewardPerToken(ctx, nonce, vault, currencyID), delta)
		if err != nil {
			return nil, err
		}
		tally, err := rewardtypes.CheckedAdd(k.rewardTally(ctx, nonce, vault, nominator, currencyID), adjustment)
		if err != nil {
			return nil, err
		}
		updates = append(updates, tallyUpdate{currencyID: currencyID, tally: tally})
	}
	return updates, nil
}

func (k Keeper) applyStakeChange(ctx sdk.Context, nonce uint64, vault, nominator string, stake, total math.LegacyDec, updates []tallyUpdate) {
	for _, update := range updates {
		setDec(k.store(ctx, types.RewardTallyPrefix), types.RewardTallyKey(nonce, vault, nominator, update.currencyID), update.tally)
	}
	setDec(k.store(ctx, types.StakePrefix), types.StakeKey(nonce, vault, nominator), stake)
	setDec(k.store(ctx, types.TotalStakePrefix), types.TotalStakeKey(nonce, vault), total)
}

// DepositStake increases a nominator's stake in the vault's pool, settling
// accrued rewards first. Deposits always address the current nonce.
func (k Keeper) DepositStake(ctx sdk.Context, vault, nominator string, amount math.LegacyDec) error {
	if amount.IsNegative() {
		return types.ErrInvalidAmount
	}
	nonce := k.Nonce(ctx, vault)

	stake, err := rewardtypes.CheckedAdd(k.ComputeStake(ctx, vault, nominator), amount)
	if err != nil {
		return err
	}
	total, err := rewardtypes.CheckedAdd(k.TotalCurrentStake(ctx, vault), amount)
	if err != nil {
		return err
	}
	updates, err := k.settleUpdates(ctx, nonce, vault, nominator, amount)
	if err != nil {
		return err
	}

	k.applyStakeChange(ctx, nonce, vault, nominator, stake, total, updates)
	return nil
}

// WithdrawStake decreases a nominator's stake in the vault's pool, settling
// accrued rewards first.
func (k Keeper) WithdrawStake(ctx sdk.Context, vault, nominator string, amount math.LegacyDec) error {
	if amount.IsNegative() {
		return types.ErrInvalidAmount
	}
	nonce := k.Nonce(ctx, vault)

	currentStake := k.ComputeStake(ctx, vault, nominator)
	if amount.GT(currentStake) {
		return types.ErrInsufficientStake
	}

	stake, err := rewardtypes.CheckedSub(currentStake, amount)
	if err != nil {
		return err
	}
	total, err := rewardtypes.CheckedSub(k.TotalCurrentStake(ctx, vault), amount)
	if err != nil {
		return err
	}
	updates, err := k.settleUpdates(ctx, nonce, vault, nominator, amount.Neg())
	if err != nil {
		return err
	}

	k.applyStakeChange(ctx, nonce, vault, nominator, stake, total, updates)
	return nil
}

// DistributeReward credits amount to all of the vault's current nominators,
// proportional to stake. A distribution to a vault with zero nominated stake
// is dropped, not credited.
func (k Keeper) DistributeReward(ctx sdk.Context, vault, currencyID string, amount math.LegacyDec) error {
	if amount.IsNegative() {
		return types.ErrInvalidAmount
	}
	if amount.IsZero() {
		return nil
	}
	nonce := k.Nonce(ctx, vault)

	totalStake := k.TotalCurrentStake(ctx, vault)
	if totalStake.IsZero() {
		k.Logger(ctx).Debug("dropping reward distribution to vault with zero nominated stake",
			"vault", vault,
			"currency_id", currencyID,
			"amount", amount.String(),
		)
		return nil
	}

	increment, err := rewardtypes.CheckedQuo(amount, totalStake)
	if err != nil {
		return err
	}
	rewardPerToken, err := rewardtypes.CheckedAdd(k.rewardPerToken(ctx, nonce, vault, currencyID), increment)
	if err != nil {
		return err
	}
	totalRewards, err := rewardtypes.CheckedAdd(k.TotalRewards(ctx, vault, currencyID), amount)
	if err != nil {
		return err
	}

	setDec(k.store(ctx, types.RewardPerTokenPrefix), types.RewardPerTokenKey(nonce, vault, currencyID), rewardPerToken)
	setDec(k.store(ctx, types.TotalRewardsPrefix), types.TotalRewardsKey(nonce, vault, currencyID), totalRewards)
	k.store(ctx, types.RewardCurrenciesPrefix).Set(types.RewardCurrencyKey(nonce, vault, currencyID), []byte{0x01})
	return nil
}

// ComputeReward returns a nominator's accrued, not-yet-withdrawn reward in the
// given currency. Read-only.
func (k Keeper) ComputeReward(ctx sdk.Context, vault, nominator, currencyID string) (math.LegacyDec, error) {
	nonce := k.Nonce(ctx, vault)

	earned, err := rewardtypes.CheckedMul(k.ComputeStake(ctx, vault, nominator), k.rewardPerToken(ctx, nonce, vault, currencyID))
	if err != nil {
		return math.LegacyZeroDec(), err
	}
	reward, err := rewardtypes.CheckedSub(earned, k.rewardTally(ctx, nonce, vault, nominator, currencyID))
	if err != nil {
		return math.LegacyZeroDec(), err
	}
	if reward.IsNegative() {
		return math.LegacyZeroDec(), nil
	}
	return reward, nil
}

// WithdrawReward settles a nominator's accrued reward in the given currency
// and returns the amount for the caller to transfer.
func (k Keeper) WithdrawReward(ctx sdk.Context, vault, nominator, currencyID string) (math.LegacyDec, error) {
	reward, err := k.ComputeReward(ctx, vault, nominator, currencyID)
	if err != nil {
		return math.LegacyZeroDec(), err
	}
	nonce := k.Nonce(ctx, vault)

	tally, err := rewardtypes.CheckedMul(k.ComputeStake(ctx, vault, nominator), k.rewardPerToken(ctx, nonce, vault, currencyID))
	if err != nil {
		return math.LegacyZeroDec(), err
	}
	totalRewards, err := rewardtypes.CheckedSub(k.TotalRewards(ctx, vault, currencyID), reward)
	if err != nil {
		return math.LegacyZeroDec(), err
	}
	if totalRewards.IsNegative() {
		totalRewards = math.LegacyZeroDec()
	}

	setDec(k.store(ctx, types.RewardTallyPrefix), types.RewardTallyKey(nonce, vault, nominator, currencyID), tally)
	setDec(k.store(ctx, types.TotalRewardsPrefix), types.TotalRewardsKey(nonce, vault, currencyID), totalRewards)
	return reward, nil
}
