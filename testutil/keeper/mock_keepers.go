package keeper

import (
	"fmt"
	"sort"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	commontypes "github.com/bridgex-network/bridgex/common/types"
)

// mock vault registry keeper
type MockVaultRegistry struct {
	Vaults           []commontypes.VaultId
	Thresholds       map[string]math.LegacyDec // keyed by vault id string
	Liquidated       map[string]math.LegacyDec // keyed by vault id string
	LiquidationVault map[string]math.LegacyDec // keyed by collateral currency
	TotalCollateral  map[string]math.LegacyDec // keyed by collateral currency
}

func NewMockVaultRegistry() *MockVaultRegistry {
	return &MockVaultRegistry{
		Thresholds:       map[string]math.LegacyDec{},
		Liquidated:       map[string]math.LegacyDec{},
		LiquidationVault: map[string]math.LegacyDec{},
		TotalCollateral:  map[string]math.LegacyDec{},
	}
}

func (k *MockVaultRegistry) AddVault(vault commontypes.VaultId, secureThreshold math.LegacyDec) {
	k.Vaults = append(k.Vaults, vault)
	k.Thresholds[vault.String()] = secureThreshold
}

// GetVaults returns the registered vaults in ascending id order, matching the
// iteration-order contract of the interface.
func (k *MockVaultRegistry) GetVaults(ctx sdk.Context) []commontypes.VaultId {
	vaults := make([]commontypes.VaultId, len(k.Vaults))
	copy(vaults, k.Vaults)
	sort.Slice(vaults, func(i, j int) bool {
		return vaults[i].String() < vaults[j].String()
	})
	return vaults
}

func (k *MockVaultRegistry) GetSecureThreshold(ctx sdk.Context, vault commontypes.VaultId) (math.LegacyDec, error) {
	threshold, found := k.Thresholds[vault.String()]
	if !found {
		return math.LegacyDec{}, fmt.Errorf("vault not registered: %s", vault.String())
	}
	return threshold, nil
}

func (k *MockVaultRegistry) GetLiquidatedCollateral(ctx sdk.Context, vault commontypes.VaultId) math.LegacyDec {
	if amount, found := k.Liquidated[vault.String()]; found {
		return amount
	}
	return math.LegacyZeroDec()
}

func (k *MockVaultRegistry) GetLiquidationVaultCollateral(ctx sdk.Context, collateralCurrency string) math.LegacyDec {
	if amount, found := k.LiquidationVault[collateralCurrency]; found {
		return amount
	}
	return math.LegacyZeroDec()
}

func (k *MockVaultRegistry) GetTotalUserVaultCollateral(ctx sdk.Context, collateralCurrency string) math.LegacyDec {
	if amount, found := k.TotalCollateral[collateralCurrency]; found {
		return amount
	}
	return math.LegacyZeroDec()
}

// mock oracle keeper
type MockOracle struct {
	Rates map[string]math.LegacyDec
}

func NewMockOracle() *MockOracle {
	return &MockOracle{Rates: map[string]math.LegacyDec{}}
}

func (k *MockOracle) SetExchangeRate(currencyID string, rate math.LegacyDec) {
	k.Rates[currencyID] = rate
}

func (k *MockOracle) GetExchangeRate(ctx sdk.Context, currencyID string) (math.LegacyDec, error) {
	rate, found := k.Rates[currencyID]
	if !found {
		return math.LegacyDec{}, fmt.Errorf("no exchange rate for %s", currencyID)
	}
	return rate, nil
}

// mock bank keeper recording outgoing module transfers
type MockBank struct {
	Transfers []BankTransfer
}

type BankTransfer struct {
	Module    string
	Recipient string
	Amount    sdk.Coins
}

func NewMockBank() *MockBank {
	return &MockBank{}
}

func (k *MockBank) SendCoinsFromModuleToAccount(ctx sdk.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	k.Transfers = append(k.Transfers, BankTransfer{
		Module:    senderModule,
		Recipient: recipientAddr.String(),
		Amount:    amt,
	})
	return nil
}

// Sent sums the amount transferred to recipient in the given denom.
func (k *MockBank) Sent(recipient, denom string) math.Int {
	total := math.ZeroInt()
	for _, transfer := range k.Transfers {
		if transfer.Recipient == recipient {
			total = total.Add(transfer.Amount.AmountOf(denom))
		}
	}
	return total
}
