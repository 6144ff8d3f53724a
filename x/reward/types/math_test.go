package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/bridgex-network/bridgex/x/reward/types"
)

func TestCheckedArithmetic(t *testing.T) {
	sum, err := types.CheckedAdd(math.LegacyNewDec(2), math.LegacyNewDec(3))
	require.NoError(t, err)
	require.True(t, math.LegacyNewDec(5).Equal(sum))

	diff, err := types.CheckedSub(math.LegacyNewDec(2), math.LegacyNewDec(3))
	require.NoError(t, err)
	require.True(t, math.LegacyNewDec(-1).Equal(diff))

	product, err := types.CheckedMul(math.LegacyNewDec(4), math.LegacyNewDec(25))
	require.NoError(t, err)
	require.True(t, math.LegacyNewDec(100).Equal(product))

	quotient, err := types.CheckedQuo(math.LegacyNewDec(1), math.LegacyNewDec(3))
	require.NoError(t, err)
	require.True(t, math.LegacyMustNewDecFromStr("0.333333333333333333").Equal(quotient))
}

func TestCheckedMulOverflow(t *testing.T) {
	huge := math.LegacyNewDec(10).Power(40)

	_, err := types.CheckedMul(huge, huge)
	require.ErrorIs(t, err, types.ErrArithmeticOverflow)
}

func TestCheckedAddOverflow(t *testing.T) {
	huge := math.LegacyNewDec(10).Power(77)

	_, err := types.CheckedAdd(huge, huge)
	require.ErrorIs(t, err, types.ErrArithmeticOverflow)
}

func TestCheckedQuoZeroDivision(t *testing.T) {
	_, err := types.CheckedQuo(math.LegacyNewDec(1), math.LegacyZeroDec())
	require.ErrorIs(t, err, types.ErrZeroDivision)
}
