package types

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestAmountOutConstantProduct(t *testing.T) {
	rIn := math.NewUint(1_000_000)
	rOut := math.NewUint(1_000_000)
	out, err := AmountOut(math.NewUint(1000), rIn, rOut, 0)
	require.NoError(t, err)
	// no fee: out = in*rOut/(rIn+in) = 1000*1000000/1001000 = 999.000...
	require.Equal(t, uint64(999), out.Uint64())
}

func TestAmountOutWithFeeIsLessThanFeeless(t *testing.T) {
	rIn := math.NewUint(1_000_000)
	rOut := math.NewUint(1_000_000)
	feeless, err := AmountOut(math.NewUint(1000), rIn, rOut, 0)
	require.NoError(t, err)
	withFee, err := AmountOut(math.NewUint(1000), rIn, rOut, 30) // 3%
	require.NoError(t, err)
	require.True(t, withFee.LT(feeless), "fee should strictly reduce output")
}

func TestAmountInRoundTripsAboveAmountOut(t *testing.T) {
	rIn := math.NewUint(1_000_000)
	rOut := math.NewUint(1_000_000)
	out, err := AmountOut(math.NewUint(1000), rIn, rOut, 3)
	require.NoError(t, err)

	in, err := AmountIn(out, rIn, rOut, 3)
	require.NoError(t, err)
	// AmountIn rounds up, so recomputing the input for AmountOut's own
	// output must not come back more than one unit below the original input.
	require.True(t, in.GTE(math.NewUint(1000).Sub(math.NewUint(1))), "round-trip input %s should approximate 1000", in.String())
}

func TestAmountInRejectsOutputAtOrAboveReserve(t *testing.T) {
	rIn := math.NewUint(1_000_000)
	rOut := math.NewUint(1_000)
	_, err := AmountIn(math.NewUint(1_000), rIn, rOut, 0)
	require.ErrorIs(t, err, ErrAmountOutTooHigh)
}

func TestQuoteRejectsZeroReserve(t *testing.T) {
	_, err := Quote(math.NewUint(1), math.NewUint(0), math.NewUint(100))
	require.ErrorIs(t, err, ErrZeroLiquidity)
}

func TestNormalizeAndDenomRoundTrip(t *testing.T) {
	adj := uint8(6)
	normalized := Normalize(5, &adj)
	require.Equal(t, uint64(5_000_000), normalized.Uint64())
	require.Equal(t, uint64(5), Denom(normalized, adj))
}

func TestNormalizeNilAdjustmentIsIdentity(t *testing.T) {
	normalized := Normalize(42, nil)
	require.Equal(t, uint64(42), normalized.Uint64())
}

func TestPoolConfigDecimalAdjustmentPicksLowerSide(t *testing.T) {
	cfg := PoolConfig{PoolDecimals: 6, BaseDecimals: 6, QuoteDecimals: 8}
	pAdj, bAdj, qAdj := cfg.DecimalAdjustment()
	require.NotNil(t, pAdj)
	require.Equal(t, uint8(6), *pAdj)
	require.Nil(t, qAdj)
	require.NotNil(t, bAdj)
	require.Equal(t, uint8(2), *bAdj)
}

func TestPoolConfigSpotPrice(t *testing.T) {
	cfg := PoolConfig{TickSize: 1, LotSize: 1, PoolDecimals: 6, BaseDecimals: 6, QuoteDecimals: 6}
	price, err := cfg.SpotPrice(1_000_000, 2_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(2_000_000), price) // 2.0 expressed at 6 decimals
}

func TestPoolConfigValidity(t *testing.T) {
	cfg := PoolConfig{TickSize: 100, LotSize: 10}
	require.True(t, cfg.IsValidPrice(200))
	require.False(t, cfg.IsValidPrice(150))
	require.False(t, cfg.IsValidPrice(0))
	require.True(t, cfg.IsValidQuantity(20))
	require.False(t, cfg.IsValidQuantity(15))
}
