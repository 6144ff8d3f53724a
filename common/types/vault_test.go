package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bridgex-network/bridgex/common/types"
)

func TestVaultIdRoundTrip(t *testing.T) {
	vault := types.NewVaultId("cosmos1abc", "udot", "ubtc")
	require.Equal(t, "cosmos1abc udot ubtc", vault.String())

	decoded, err := types.VaultIdFromString(vault.String())
	require.NoError(t, err)
	require.Equal(t, vault, decoded)
}

func TestVaultIdFromStringInvalid(t *testing.T) {
	_, err := types.VaultIdFromString("cosmos1abc udot")
	require.Error(t, err)

	_, err = types.VaultIdFromString("")
	require.Error(t, err)
}
