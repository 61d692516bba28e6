package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/require"

	"github.com/openalpha/hybridbook/x/hybridpool/types"
)

const (
	testBase  = "base"
	testQuote = "quote"
	testLP    = "lp/base-quote"
)

func newTestKeeper(t *testing.T) (*Keeper, *MemCustody) {
	t.Helper()
	custody := NewMemCustody()
	custody.SetMinimumBalance(testBase, 1)
	custody.SetMinimumBalance(testQuote, 1)
	k := NewKeeper(custody, NewMemLPToken(), types.BaseQuoteLocator{}, log.NewNopLogger(), nil)
	return k, custody
}

func seedPool(t *testing.T, k *Keeper, custody *MemCustody, cfg types.PoolConfig) string {
	t.Helper()
	creator := "creator"
	custody.Mint(testBase, creator, 1_000_000_000)
	custody.Mint(testQuote, creator, 1_000_000_000)
	poolID, _, err := k.CreatePool(creator, testBase, testQuote, testLP, cfg)
	require.NoError(t, err)
	_, _, err = k.AddLiquidity(poolID, creator, 100_000, 1_000_000)
	require.NoError(t, err)
	return poolID
}

func defaultConfig() types.PoolConfig {
	return types.PoolConfig{
		TakerFeeRate:  3,
		TickSize:      1,
		LotSize:       1,
		PoolDecimals:  6,
		BaseDecimals:  6,
		QuoteDecimals: 6,
	}
}

func TestCreatePoolRejectsDuplicateAndBadPair(t *testing.T) {
	k, custody := newTestKeeper(t)
	custody.Mint(testBase, "creator", 1)
	custody.Mint(testQuote, "creator", 1)

	_, _, err := k.CreatePool("creator", testBase, testQuote, testLP, defaultConfig())
	require.NoError(t, err)

	_, _, err = k.CreatePool("creator", testBase, testQuote, "lp/other", defaultConfig())
	require.ErrorIs(t, err, types.ErrPoolExists)

	_, _, err = k.CreatePool("creator", testBase, testBase, "lp/x", defaultConfig())
	require.ErrorIs(t, err, types.ErrInvalidAssetPair)
}

func TestAddLiquidityFirstDepositMintsSqrtProduct(t *testing.T) {
	k, custody := newTestKeeper(t)
	custody.Mint(testBase, "creator", 1_000_000)
	custody.Mint(testQuote, "creator", 1_000_000)
	poolID, _, err := k.CreatePool("creator", testBase, testQuote, testLP, defaultConfig())
	require.NoError(t, err)

	lpUnits, _, err := k.AddLiquidity(poolID, "creator", 10_000, 10_000)
	require.NoError(t, err)
	require.Equal(t, uint64(10_000), lpUnits) // sqrt(10000*10000) = 10000
}

func TestRemoveLiquidityReturnsProRataShare(t *testing.T) {
	k, custody := newTestKeeper(t)
	poolID := seedPool(t, k, custody, defaultConfig())

	baseOut, quoteOut, _, err := k.RemoveLiquidity(poolID, "creator", 50_000)
	require.NoError(t, err)
	// creator holds all 100% of supply (sqrt(100000*1000000)=~316227); withdrawing
	// part of it should return a proportional, non-zero share of both reserves.
	require.Greater(t, baseOut, uint64(0))
	require.Greater(t, quoteOut, uint64(0))
}

func TestLimitOrderRestsWhenNonCrossing(t *testing.T) {
	k, custody := newTestKeeper(t)
	poolID := seedPool(t, k, custody, defaultConfig())
	custody.Mint(testBase, "bob", 1_000_000)

	// pool spot is 10^6 * 1000000/100000 = 10_000_000 (6 pool decimals); an
	// ask above spot must rest.
	id, events, err := k.LimitOrder(poolID, types.SideAsk, "bob", 20_000_000, 100)
	require.NoError(t, err)
	require.NotNil(t, id)
	require.True(t, id.IsAsk())
	require.NotEmpty(t, events)

	query, err := k.GetPoolQuery(poolID)
	require.NoError(t, err)
	require.Len(t, query.Asks, 1)
	require.Equal(t, uint64(20_000_000), query.Asks[0].Price)
	require.Equal(t, uint64(100), query.Asks[0].Quantity)
}

func TestLimitOrderCrossingRoutesToMatcher(t *testing.T) {
	k, custody := newTestKeeper(t)
	poolID := seedPool(t, k, custody, defaultConfig())
	custody.Mint(testQuote, "carol", 1_000_000)

	// pool spot is 10_000_000; a bid at or above spot must cross immediately, never resting.
	id, events, err := k.LimitOrder(poolID, types.SideBid, "carol", 20_000_000, 100)
	require.NoError(t, err)
	require.Nil(t, id)
	require.NotEmpty(t, events)

	query, err := k.GetPoolQuery(poolID)
	require.NoError(t, err)
	require.Empty(t, query.Bids)
}

func TestMarketOrderSweepsRestingAskThenAMM(t *testing.T) {
	k, custody := newTestKeeper(t)
	poolID := seedPool(t, k, custody, defaultConfig())
	custody.Mint(testBase, "bob", 1_000_000)
	custody.Mint(testQuote, "carol", 10_000_000)

	// just above the 10_000_000 spot, so the ask rests and the first AMM unit
	// would already push the AMM price past it.
	_, _, err := k.LimitOrder(poolID, types.SideAsk, "bob", 10_000_100, 500)
	require.NoError(t, err)

	filled, events, err := k.MarketOrder(poolID, types.SideBid, "carol", 700)
	require.NoError(t, err)
	require.Equal(t, uint64(700), filled)
	require.NotEmpty(t, events)

	query, err := k.GetPoolQuery(poolID)
	require.NoError(t, err)
	require.Empty(t, query.Asks, "bob's resting ask should be fully swept")
	require.Greater(t, custody.Balance("bob", testQuote), uint64(0), "bob should have received quote for his fill")
}

func TestCancelOrderReleasesFrozenCollateral(t *testing.T) {
	k, custody := newTestKeeper(t)
	poolID := seedPool(t, k, custody, defaultConfig())
	custody.Mint(testBase, "bob", 1_000_000)

	before := custody.Balance("bob", testBase)
	id, _, err := k.LimitOrder(poolID, types.SideAsk, "bob", 20_000_000, 100)
	require.NoError(t, err)
	require.Equal(t, before-100, custody.Balance("bob", testBase))

	_, err = k.CancelOrder(poolID, "bob", 20_000_000, *id, 100)
	require.NoError(t, err)
	require.Equal(t, before, custody.Balance("bob", testBase), "cancelling in full should release the frozen base back to bob")

	query, err := k.GetPoolQuery(poolID)
	require.NoError(t, err)
	require.Empty(t, query.Asks)
}

func TestCancelOrderRejectsWrongOwner(t *testing.T) {
	k, custody := newTestKeeper(t)
	poolID := seedPool(t, k, custody, defaultConfig())
	custody.Mint(testBase, "bob", 1_000_000)

	id, _, err := k.LimitOrder(poolID, types.SideAsk, "bob", 20_000_000, 100)
	require.NoError(t, err)

	_, err = k.CancelOrder(poolID, "mallory", 20_000_000, *id, 100)
	require.ErrorIs(t, err, types.ErrNoPermission)
}

func TestQuoteExactInAndOutAgree(t *testing.T) {
	k, custody := newTestKeeper(t)
	poolID := seedPool(t, k, custody, defaultConfig())

	out, err := k.QuoteExactIn(poolID, testBase, 1000)
	require.NoError(t, err)
	require.Greater(t, out, uint64(0))

	in, err := k.QuoteExactOut(poolID, testBase, out)
	require.NoError(t, err)
	require.Greater(t, in, uint64(0))
	// 1000 base buys 9871 quote; asking for 9871 quote back costs exactly 1000 base.
	require.Equal(t, uint64(1000), in)
}
