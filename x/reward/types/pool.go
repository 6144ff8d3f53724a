package types

import (
	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bridgex-network/bridgex/utils"
)

// RewardPool tracks stake per participant and distributes value proportionally
// using a lazily updated accumulator.
//
// Once instantiated, a RewardPool offers these methods:
//   - DepositStake(poolID, stakeID, amount): increase a participant's stake.
//   - WithdrawStake(poolID, stakeID, amount): decrease a participant's stake.
//   - SetStake(poolID, stakeID, amount): replace a participant's stake.
//   - DistributeReward(poolID, currencyID, amount): credit reward to all
//     current holders, proportional to stake, in O(1).
//   - ComputeReward(poolID, stakeID, currencyID): read a participant's
//     accrued reward.
//   - WithdrawReward(poolID, stakeID, currencyID): settle a participant's
//     accrued reward and return the amount for the caller to transfer.
//
// How does it work? Each distribution advances a per-currency accumulator by
// amount/totalStake ("reward per token"). A participant's accrued reward is
// stake*rewardPerToken minus a reward tally. The tally records the cumulative
// product already accounted for: it grows by rewardPerToken*delta whenever
// stake changes, so past distributions stay settled without touching any other
// participant's records. That keeps every operation O(1) in the number of
// participants.
//
// Instances are distinguished only by their store prefix. For instance, a
// "vault-rp" instance with a pool per collateral currency will hold:
//
//	prefix: vault-rp/total-stake/       key: uatom                 data: Dec
//	prefix: vault-rp/stake/             key: uatom <vault>         data: Dec
//	prefix: vault-rp/reward-per-token/  key: uatom ubtc            data: Dec
//	prefix: vault-rp/reward-tally/      key: uatom <vault> ubtc    data: Dec
//
// All amounts are fixed point (math.LegacyDec). Arithmetic is checked: an
// overflowing operation is rejected with no state mutated.
type RewardPool struct {
	storeKey storetypes.StoreKey
	prefix   string
}

func NewRewardPool(storeKey storetypes.StoreKey, prefix string) *RewardPool {
	return &RewardPool{
		storeKey: storeKey,
		prefix:   prefix,
	}
}

func (rp *RewardPool) Prefix() string {
	return rp.prefix
}

func (rp *RewardPool) store(ctx sdk.Context, item string) prefix.Store {
	return prefix.NewStore(ctx.KVStore(rp.storeKey), KeyPrefix(rp.prefix+item))
}

func getDec(store prefix.Store, key []byte) math.LegacyDec {
	b := store.Get(key)
	if b == nil {
		return math.LegacyZeroDec()
	}
	var dec math.LegacyDec
	if err := dec.Unmarshal(b); err != nil {
		panic(err)
	}
	return dec
}

func setDec(store prefix.Store, key []byte, dec math.LegacyDec) {
	b, err := dec.Marshal()
	if err != nil {
		panic(err)
	}
	store.Set(key, b)
}

// TotalStake returns the sum of all stake in the given pool.
func (rp *RewardPool) TotalStake(ctx sdk.Context, poolID string) math.LegacyDec {
	return getDec(rp.store(ctx, TotalStakePrefix), []byte(poolID))
}

// GetStake returns a participant's stake in the given pool.
func (rp *RewardPool) GetStake(ctx sdk.Context, poolID, stakeID string) math.LegacyDec {
	return getDec(rp.store(ctx, StakePrefix), StakeKey(poolID, stakeID))
}

// TotalRewards returns the not-yet-withdrawn rewards in the given currency,
// across all pools of this instance.
func (rp *RewardPool) TotalRewards(ctx sdk.Context, currencyID string) math.LegacyDec {
	return getDec(rp.store(ctx, TotalRewardsPrefix), []byte(currencyID))
}

// RewardPerToken returns the cumulative reward per unit of stake ever
// distributed to the given pool in the given currency. Monotonically
// non-decreasing.
func (rp *RewardPool) RewardPerToken(ctx sdk.Context, poolID, currencyID string) math.LegacyDec {
	return getDec(rp.store(ctx, RewardPerTokenPrefix), RewardPerTokenKey(poolID, currencyID))
}

func (rp *RewardPool) rewardTally(ctx sdk.Context, poolID, stakeID, currencyID string) math.LegacyDec {
	return getDec(rp.store(ctx, RewardTallyPrefix), RewardTallyKey(poolID, stakeID, currencyID))
}

// RewardCurrencies returns every currency the given pool has ever distributed,
// in ascending order.
func (rp *RewardPool) RewardCurrencies(ctx sdk.Context, poolID string) []string {
	store := rp.store(ctx, RewardCurrenciesPrefix)
	iterator := storetypes.KVStorePrefixIterator(store, RewardCurrenciesKey(poolID))
	defer iterator.Close()

	currencies := []string{}
	for ; iterator.Valid(); iterator.Next() {
		key := string(iterator.Key())
		currencies = append(currencies, key[len(RewardCurrenciesKey(poolID)):])
	}
	return currencies
}

type tallyUpdate struct {
	currencyID string
	tally      math.LegacyDec
}

// settleUpdates computes the reward tally adjustments needed before changing a
// participant's stake by delta (negative for withdrawals). Adjusting the tally
// by rewardPerToken*delta keeps the participant's accrued reward unchanged
// across the stake change. Nothing is written; the caller applies the updates
// only once every arithmetic check passed.
func (rp *RewardPool) settleUpdates(ctx sdk.Context, poolID, stakeID string, delta math.LegacyDec) ([]tallyUpdate, error) {
	updates := []tallyUpdate{}
	for _, currencyID := range rp.RewardCurrencies(ctx, poolID) {
		rewardPerToken := rp.RewardPerToken(ctx, poolID, currencyID)
		adjustment, err := CheckedMul(rewardPerToken, delta)
		if err != nil {
			return nil, err
		}
		tally, err := CheckedAdd(rp.rewardTally(ctx, poolID, stakeID, currencyID), adjustment)
		if err != nil {
			return nil, err
		}
		updates = append(updates, tallyUpdate{currencyID: currencyID, tally: tally})
	}
	return updates, nil
}

func (rp *RewardPool) applyStakeChange(ctx sdk.Context, poolID, stakeID string, stake, total math.LegacyDec, updates []tallyUpdate) {
	for _, update := range updates {
		setDec(rp.store(ctx, RewardTallyPrefix), RewardTallyKey(poolID, stakeID, update.currencyID), update.tally)
	}
	setDec(rp.store(ctx, StakePrefix), StakeKey(poolID, stakeID), stake)
	setDec(rp.store(ctx, TotalStakePrefix), []byte(poolID), total)
}

// DepositStake increases a participant's stake. Rewards accrued so far are
// settled first, so the deposit only weighs in future distributions.
func (rp *RewardPool) DepositStake(ctx sdk.Context, poolID, stakeID string, amount math.LegacyDec) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	stake, err := CheckedAdd(rp.GetStake(ctx, poolID, stakeID), amount)
	if err != nil {
		return err
	}
	total, err := CheckedAdd(rp.TotalStake(ctx, poolID), amount)
	if err != nil {
		return err
	}
	updates, err := rp.settleUpdates(ctx, poolID, stakeID, amount)
	if err != nil {
		return err
	}

	rp.applyStakeChange(ctx, poolID, stakeID, stake, total, updates)
	return nil
}

// WithdrawStake decreases a participant's stake, settling accrued rewards
// first. Fails with ErrInsufficientStake if amount exceeds the staked balance.
func (rp *RewardPool) WithdrawStake(ctx sdk.Context, poolID, stakeID string, amount math.LegacyDec) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	currentStake := rp.GetStake(ctx, poolID, stakeID)
	if amount.GT(currentStake) {
		return ErrInsufficientStake
	}

	stake, err := CheckedSub(currentStake, amount)
	if err != nil {
		return err
	}
	total, err := CheckedSub(rp.TotalStake(ctx, poolID), amount)
	if err != nil {
		return err
	}
	updates, err := rp.settleUpdates(ctx, poolID, stakeID, amount.Neg())
	if err != nil {
		return err
	}

	rp.applyStakeChange(ctx, poolID, stakeID, stake, total, updates)
	return nil
}

// SetStake replaces a participant's stake: withdraw the old amount, deposit
// the new one.
func (rp *RewardPool) SetStake(ctx sdk.Context, poolID, stakeID string, amount math.LegacyDec) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	currentStake := rp.GetStake(ctx, poolID, stakeID)
	if amount.GTE(currentStake) {
		return rp.DepositStake(ctx, poolID, stakeID, amount.Sub(currentStake))
	}
	return rp.WithdrawStake(ctx, poolID, stakeID, currentStake.Sub(amount))
}

// DistributeReward makes amount available to every current stake holder of the
// pool, proportional to stake, by advancing the reward-per-token accumulator.
// A distribution to a pool with zero total stake is dropped, not credited:
// there is nobody to give it to, and crediting the accumulator would assign it
// to future depositors retroactively.
func (rp *RewardPool) DistributeReward(ctx sdk.Context, poolID, currencyID string, amount math.LegacyDec) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	if amount.IsZero() {
		return nil
	}

	totalStake := rp.TotalStake(ctx, poolID)
	if totalStake.IsZero() {
		utils.FormatDebug("dropping reward distribution to pool with zero total stake",
			utils.LogAttr("prefix", rp.prefix),
			utils.LogAttr("pool_id", poolID),
			utils.LogAttr("currency_id", currencyID),
			utils.LogAttr("amount", amount),
		)
		return nil
	}

	increment, err := CheckedQuo(amount, totalStake)
	if err != nil {
		return err
	}
	rewardPerToken, err := CheckedAdd(rp.RewardPerToken(ctx, poolID, currencyID), increment)
	if err != nil {
		return err
	}
	totalRewards, err := CheckedAdd(rp.TotalRewards(ctx, currencyID), amount)
	if err != nil {
		return err
	}

	setDec(rp.store(ctx, RewardPerTokenPrefix), RewardPerTokenKey(poolID, currencyID), rewardPerToken)
	setDec(rp.store(ctx, TotalRewardsPrefix), []byte(currencyID), totalRewards)
	rp.store(ctx, RewardCurrenciesPrefix).Set(RewardCurrencyKey(poolID, currencyID), []byte{0x01})
	return nil
}

// ComputeReward returns a participant's accrued, not-yet-withdrawn reward in
// the given currency. Read-only.
func (rp *RewardPool) ComputeReward(ctx sdk.Context, poolID, stakeID, currencyID string) (math.LegacyDec, error) {
	earned, err := CheckedMul(rp.GetStake(ctx, poolID, stakeID), rp.RewardPerToken(ctx, poolID, currencyID))
	if err != nil {
		return math.LegacyZeroDec(), err
	}
	reward, err := CheckedSub(earned, rp.rewardTally(ctx, poolID, stakeID, currencyID))
	if err != nil {
		return math.LegacyZeroDec(), err
	}
	// rounding of tally adjustments can leave a negative dust remainder
	if reward.IsNegative() {
		return math.LegacyZeroDec(), nil
	}
	return reward, nil
}

// WithdrawReward settles a participant's accrued reward in the given currency
// and returns the amount. Transferring the funds is the caller's concern.
func (rp *RewardPool) WithdrawReward(ctx sdk.Context, poolID, stakeID, currencyID string) (math.LegacyDec, error) {
	reward, err := rp.ComputeReward(ctx, poolID, stakeID, currencyID)
	if err != nil {
		return math.LegacyZeroDec(), err
	}

	tally, err := CheckedMul(rp.GetStake(ctx, poolID, stakeID), rp.RewardPerToken(ctx, poolID, currencyID))
	if err != nil {
		return math.LegacyZeroDec(), err
	}
	totalRewards, err := CheckedSub(rp.TotalRewards(ctx, currencyID), reward)
	if err != nil {
		return math.LegacyZeroDec(), err
	}
	if totalRewards.IsNegative() {
		totalRewards = math.LegacyZeroDec()
	}

	setDec(rp.store(ctx, RewardTallyPrefix), RewardTallyKey(poolID, stakeID, currencyID), tally)
	setDec(rp.store(ctx, TotalRewardsPrefix), []byte(currencyID), totalRewards)
	return reward, nil
}

// ClearPoolStorage deletes up to limit entries across all storage items of
// this instance and reports how many were removed. A false complete return
// means the budget ran out; since deleted keys never reappear, calling again
// continues where the previous pass stopped. Callers must loop until complete.
func (rp *RewardPool) ClearPoolStorage(ctx sdk.Context, limit uint64) (deleted uint64, complete bool) {
	items := []string{
		TotalStakePrefix,
		TotalRewardsPrefix,
		RewardPerTokenPrefix,
		StakePrefix,
		RewardTallyPrefix,
		RewardCurrenciesPrefix,
	}

	for _, item := range items {
		store := rp.store(ctx, item)
		keys, truncated := collectKeys(store, limit-deleted)
		for _, key := range keys {
			store.Delete(key)
		}
		deleted += uint64(len(keys))
		if truncated {
			return deleted, false
		}
	}
	return deleted, true
}

func collectKeys(store prefix.Store, limit uint64) (keys [][]byte, truncated bool) {
	iterator := storetypes.KVStorePrefixIterator(store, []byte{})
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		if uint64(len(keys)) >= limit {
			return keys, true
		}
		keys = append(keys, iterator.Key())
	}
	return keys, false
}
