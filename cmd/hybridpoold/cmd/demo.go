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

const (
	demoBase   = "uatom"
	demoQuote  = "uusdc"
	demoLPUnit = "lp/uatom-uusdc"
)

func newDemoCmd(logger log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "run a scripted pool lifecycle against an in-memory keeper",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, logger)
		},
	}
}

func runDemo(cmd *cobra.Command, logger log.Logger) error {
	out := cmd.OutOrStdout()
	custody := keeper.NewMemCustody()
	custody.SetMinimumBalance(demoBase, 1)
	custody.SetMinimumBalance(demoQuote, 1)

	alice, bob, carol := "alice", "bob", "carol"
	for _, acct := range []string{alice, bob, carol} {
		custody.Mint(demoBase, acct, 1_000_000)
		custody.Mint(demoQuote, acct, 1_000_000_000)
	}

	k := keeper.NewKeeper(custody, keeper.NewMemLPToken(), types.BaseQuoteLocator{}, logger, metrics.GetCollector())

	cfg := types.PoolConfig{
		TakerFeeRate:  3, // 0.3%
		TickSize:      100,
		LotSize:       10,
		PoolDecimals:  6,
		BaseDecimals:  6,
		QuoteDecimals: 6,
	}
	poolID, events, err := k.CreatePool(alice, demoBase, demoQuote, demoLPUnit, cfg)
	if err != nil {
		return err
	}
	printEvents(out, "create-pool", events)

	lpUnits, events, err := k.AddLiquidity(poolID, alice, 100_000, 1_000_000)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "alice seeded the pool with 100000 %s / 1000000 %s, minted %d lp units\n", demoBase, demoQuote, lpUnits)
	printEvents(out, "add-liquidity", events)

	// spot is 10_000_000 (1000000/100000 at 6 pool decimals); this ask rests
	// just above it.
	orderID, events, err := k.LimitOrder(poolID, types.SideAsk, bob, 10_000_100, 500)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "bob placed a resting ask: %v\n", orderID)
	printEvents(out, "limit-order(ask)", events)

	filled, events, err := k.MarketOrder(poolID, types.SideBid, carol, 700)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "carol's market buy filled %d base units across the AMM and bob's resting ask\n", filled)
	printEvents(out, "market-order(bid)", events)

	query, err := k.GetPoolQuery(poolID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "pool state: base=%d quote=%d spot=%d bids=%v asks=%v\n",
		query.BaseReserve, query.QuoteReserve, query.SpotPrice, query.Bids, query.Asks)

	return nil
}

func printEvents(out io.Writer, op string, events []keeper.Event) {
	for _, ev := range events {
		fmt.Fprintf(out, "  [%s] %s\n", op, ev.Type)
		for _, attr := range ev.Attributes {
			fmt.Fprintf(out, "      %s = %s\n", attr.Key, attr.Value)
		}
	}
}
