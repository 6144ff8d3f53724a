package types

const (
	// ModuleName defines the module name
	ModuleName = "reward"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

// Storage items of a reward pool instance. Every instance namespaces these
// under its own prefix, so several structurally identical pools can share one
// store key.
const (
	TotalStakePrefix       = "total-stake/"
	TotalRewardsPrefix     = "total-rewards/"
	RewardPerTokenPrefix   = "reward-per-token/"
	StakePrefix            = "stake/"
	RewardTallyPrefix      = "reward-tally/"
	RewardCurrenciesPrefix = "reward-currencies/"
)

func KeyPrefix(p string) []byte {
	return []byte(p)
}

// Key builders join identifiers with " " (space). This is safe because Bech32
// forbids spaces inside addresses and denoms cannot contain them either.

func StakeKey(poolID, stakeID string) []byte {
	return []byte(poolID + " " + stakeID)
}

func RewardPerTokenKey(poolID, currencyID string) []byte {
	return []byte(poolID + " " + currencyID)
}

func RewardTallyKey(poolID, stakeID, currencyID string) []byte {
	return []byte(poolID + " " + stakeID + " " + currencyID)
}

func RewardCurrenciesKey(poolID string) []byte {
	return []byte(poolID + " ")
}

func RewardCurrencyKey(poolID, currencyID string) []byte {
	return []byte(poolID + " " + currencyID)
}
