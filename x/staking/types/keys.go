package types

import (
	"strconv"
)

const (
	// ModuleName defines the module name
	ModuleName = "staking"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

const (
	NoncePrefix            = "nonce/"
	TotalStakePrefix       = "total-stake/"
	StakePrefix            = "stake/"
	RewardPerTokenPrefix   = "reward-per-token/"
	RewardTallyPrefix      = "reward-tally/"
	TotalRewardsPrefix     = "total-rewards/"
	RewardCurrenciesPrefix = "reward-currencies/"
)

func KeyPrefix(p string) []byte {
	return []byte(p)
}

// Keys are joined with " " (space), which cannot appear inside Bech32
// addresses or denoms. The slashing nonce leads every key, so entries of a
// slashed epoch become unreachable the moment the nonce advances.

func NonceKey(vault string) []byte {
	return []byte(vault)
}

// PoolKey is the (nonce, vault) prefix shared by all of a vault's entries.
func PoolKey(nonce uint64, vault string) string {
	return strconv.FormatUint(nonce, 10) + " " + vault
}

func StakeKey(nonce uint64, vault, nominator string) []byte {
	return []byte(PoolKey(nonce, vault) + " " + nominator)
}

func StakeIteratorPrefix(nonce uint64, vault string) []byte {
	return []byte(PoolKey(nonce, vault) + " ")
}

func TotalStakeKey(nonce uint64, vault string) []byte {
	return []byte(PoolKey(nonce, vault))
}

func RewardPerTokenKey(nonce uint64, vault, currencyID string) []byte {
	return []byte(PoolKey(nonce, vault) + " " + currencyID)
}

func RewardTallyKey(nonce uint64, vault, nominator, currencyID string) []byte {
	return []byte(PoolKey(nonce, vault) + " " + nominator + " " + currencyID)
}

func TotalRewardsKey(nonce uint64, vault, currencyID string) []byte {
	return []byte(PoolKey(nonce, vault) + " " + currencyID)
}

func RewardCurrenciesIteratorPrefix(nonce uint64, vault string) []byte {
	return []byte(PoolKey(nonce, vault) + " ")
}

func RewardCurrencyKey(nonce uint64, vault, currencyID string) []byte {
	return []byte(PoolKey(nonce, vault) + " " + currencyID)
}
