package types

import (
	"cosmossdk.io/math"
)

// RewardAmount is a settled reward in a single currency.
type RewardAmount struct {
	CurrencyID string
	Amount     math.LegacyDec
}

// Refund is the settled balance owed to one nominator after a forced refund:
// the full nominated stake plus any rewards not yet withdrawn. The engine only
// computes the amounts; transferring them is the caller's concern.
type Refund struct {
	Nominator string
	Stake     math.LegacyDec
	Rewards   []RewardAmount
}
