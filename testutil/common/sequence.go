package common

import (
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"

	commontypes "github.com/bridgex-network/bridgex/common/types"
)

// Sequencer deterministically generates test accounts and vault ids. Each test
// creates its own instance and passes it by reference, so fixtures never leak
// between tests and a test's addresses are stable across runs.
type Sequencer struct {
	next uint64
}

func NewSequencer() *Sequencer {
	return &Sequencer{}
}

func (s *Sequencer) Next() uint64 {
	s.next++
	return s.next
}

// Account returns a fresh bech32 account address.
func (s *Sequencer) Account() string {
	bytes := make([]byte, 20)
	binary.BigEndian.PutUint64(bytes[12:], s.Next())
	return sdk.AccAddress(bytes).String()
}

// Vault returns a fresh vault id over the given currency pair.
func (s *Sequencer) Vault(collateralCurrency, wrappedCurrency string) commontypes.VaultId {
	return commontypes.VaultId{
		AccountId:          s.Account(),
		CollateralCurrency: collateralCurrency,
		WrappedCurrency:    wrappedCurrency,
	}
}
