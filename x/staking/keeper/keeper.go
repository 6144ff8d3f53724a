package keeper

import (
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/bridgex-network/bridgex/x/staking/types"
)

// Keeper implements the per-vault nominator staking pool. Each vault has its
// own reward pool whose entries are keyed under a slashing nonce: a forced
// refund advances the nonce, so the pre-slash records become unreachable
// without being rewritten.
type (
	Keeper struct {
		storeKey storetypes.StoreKey
	}
)

func NewKeeper(storeKey storetypes.StoreKey) *Keeper {
	return &Keeper{
		storeKey: storeKey,
	}
}

func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

func (k Keeper) store(ctx sdk.Context, item string) prefix.Store {
	return prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPrefix(item))
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

// Nonce returns the current slashing epoch of the given vault.
func (k Keeper) Nonce(ctx sdk.Context, vault string) uint64 {
	b := k.store(ctx, types.NoncePrefix).Get(types.NonceKey(vault))
	if b == nil {
		return 0
	}
	return sdk.BigEndianToUint64(b)
}

func (k Keeper) setNonce(ctx sdk.Context, vault string, nonce uint64) {
	k.store(ctx, types.NoncePrefix).Set(types.NonceKey(vault), sdk.Uint64ToBigEndian(nonce))
}
