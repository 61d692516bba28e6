package cmd

import (
	"fmt"
	"io"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/openalpha/hybridbook/metrics"
	"github.com/openalpha/hybridbook/x/hybridpool/keeper"
	"github.com/openalpha/hybridbook/x/hybridpool/types"
)

// addPoolFlags registers the pool-shaping flags shared by every subcommand
// that seeds its own in-memory pool, since this binary has no persistent store
// to carry a pool between invocations (see NewRootCmd).
func addPoolFlags(cmd *cobra.Command) {
	cmd.Flags().String("base", "uatom", "base asset denom")
	cmd.Flags().String("quote", "uusdc", "quote asset denom")
	cmd.Flags().String("lp-token", "lp/uatom-uusdc", "lp token id minted by the pool")
	cmd.Flags().Uint32("fee-rate", 3, "taker fee rate, in tenths of a percent (3 = 0.3%)")
	cmd.Flags().Uint64("tick-size", 100, "minimum price increment")
	cmd.Flags().Uint64("lot-size", 10, "minimum quantity increment")
	cmd.Flags().Uint8("pool-decimals", 6, "pool price decimals")
	cmd.Flags().Uint8("base-decimals", 6, "base asset decimals")
	cmd.Flags().Uint8("quote-decimals", 6, "quote asset decimals")
	cmd.Flags().Uint64("seed-base", 100_000, "base liquidity seeded by the pool creator")
	cmd.Flags().Uint64("seed-quote", 1_000_000, "quote liquidity seeded by the pool creator")
}

func poolConfigFromFlags(cmd *cobra.Command) (types.PoolConfig, error) {
	feeBps, err := cmd.Flags().GetUint32("fee-rate")
	if err != nil {
		return types.PoolConfig{}, err
	}
	tickSize, err := cmd.Flags().GetUint64("tick-size")
	if err != nil {
		return types.PoolConfig{}, err
	}
	lotSize, err := cmd.Flags().GetUint64("lot-size")
	if err != nil {
		return types.PoolConfig{}, err
	}
	poolDec, err := cmd.Flags().GetUint8("pool-decimals")
	if err != nil {
		return types.PoolConfig{}, err
	}
	baseDec, err := cmd.Flags().GetUint8("base-decimals")
	if err != nil {
		return types.PoolConfig{}, err
	}
	quoteDec, err := cmd.Flags().GetUint8("quote-decimals")
	if err != nil {
		return types.PoolConfig{}, err
	}
	return types.PoolConfig{
		TakerFeeRate:  types.LPFee(feeBps),
		TickSize:      tickSize,
		LotSize:       lotSize,
		PoolDecimals:  poolDec,
		BaseDecimals:  baseDec,
		QuoteDecimals: quoteDec,
	}, nil
}

// seededKeeper builds a fresh in-memory keeper, custody ledger, and pool
// from the command's pool flags, minting the creator enough of both assets
// to cover the seed liquidity. It is the common setup every discrete
// subcommand runs before exercising the one operation it's named for.
func seededKeeper(cmd *cobra.Command, logger log.Logger) (*keeper.Keeper, *keeper.MemCustody, string, error) {
	base, err := cmd.Flags().GetString("base")
	if err != nil {
		return nil, nil, "", err
	}
	quote, err := cmd.Flags().GetString("quote")
	if err != nil {
		return nil, nil, "", err
	}
	lpToken, err := cmd.Flags().GetString("lp-token")
	if err != nil {
		return nil, nil, "", err
	}
	seedBase, err := cmd.Flags().GetUint64("seed-base")
	if err != nil {
		return nil, nil, "", err
	}
	seedQuote, err := cmd.Flags().GetUint64("seed-quote")
	if err != nil {
		return nil, nil, "", err
	}
	cfg, err := poolConfigFromFlags(cmd)
	if err != nil {
		return nil, nil, "", err
	}

	custody := keeper.NewMemCustody()
	custody.SetMinimumBalance(base, 1)
	custody.SetMinimumBalance(quote, 1)
	custody.Mint(base, "creator", seedBase)
	custody.Mint(quote, "creator", seedQuote)

	k := keeper.NewKeeper(custody, keeper.NewMemLPToken(), types.BaseQuoteLocator{}, logger, metrics.GetCollector())
	poolID, events, err := k.CreatePool("creator", base, quote, lpToken, cfg)
	if err != nil {
		return nil, nil, "", err
	}
	printEvents(cmd.OutOrStdout(), "create-pool", events)

	if seedBase > 0 && seedQuote > 0 {
		lpUnits, events, err := k.AddLiquidity(poolID, "creator", seedBase, seedQuote)
		if err != nil {
			return nil, nil, "", err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d %s / %d %s, minted %d lp units\n", seedBase, base, seedQuote, quote, lpUnits)
		printEvents(cmd.OutOrStdout(), "add-liquidity", events)
	}

	return k, custody, poolID, nil
}

func parseSide(s string) (types.Side, error) {
	switch s {
	case "bid", "buy":
		return types.SideBid, nil
	case "ask", "sell":
		return types.SideAsk, nil
	default:
		return 0, fmt.Errorf("invalid side %q: want bid|ask", s)
	}
}

func printPoolQuery(out io.Writer, q *keeper.PoolQuery) {
	fmt.Fprintf(out, "base=%d quote=%d spot=%d\n", q.BaseReserve, q.QuoteReserve, q.SpotPrice)
	fmt.Fprintf(out, "bids: %v\n", q.Bids)
	fmt.Fprintf(out, "asks: %v\n", q.Asks)
}
