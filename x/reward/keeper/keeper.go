package keeper

import (
	storetypes "cosmossdk.io/store/types"

	"github.com/bridgex-network/bridgex/x/reward/types"
)

// Keeper is the reward keeper. The keeper retains all the reward pools used by
// modules, it also manages their lifecycle: modules obtain an instance with
// NewRewardPool and a unique prefix.
type Keeper struct {
	rewardPools []*types.RewardPool
}

func NewKeeper() *Keeper {
	return &Keeper{}
}

func (k *Keeper) NewRewardPool(storeKey storetypes.StoreKey, prefix string) *types.RewardPool {
	for _, pool := range k.rewardPools {
		if pool.Prefix() == prefix {
			panic("duplicate reward pool prefix: " + prefix)
		}
	}
	rp := types.NewRewardPool(storeKey, prefix)
	k.rewardPools = append(k.rewardPools, rp)
	return rp
}
