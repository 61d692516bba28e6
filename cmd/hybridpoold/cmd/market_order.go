package cmd

import (
	"fmt"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
)

func newMarketOrderCmd(logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market-order",
		Short: "seed a pool, then sweep it with a single market order",
		RunE: func(cmd *cobra.Command, args []string) error {
			taker, err := cmd.Flags().GetString("taker")
			if err != nil {
				return err
			}
			sideStr, err := cmd.Flags().GetString("side")
			if err != nil {
				return err
			}
			qty, err := cmd.Flags().GetUint64("qty")
			if err != nil {
				return err
			}
			side, err := parseSide(sideStr)
			if err != nil {
				return err
			}

			k, custody, poolID, err := seededKeeper(cmd, logger)
			if err != nil {
				return err
			}
			base, _ := cmd.Flags().GetString("base")
			quote, _ := cmd.Flags().GetString("quote")
			custody.Mint(base, taker, qty*10)
			custody.Mint(quote, taker, qty*1_000_000)

			filled, events, err := k.MarketOrder(poolID, side, taker, qty)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "filled %d of %d requested\n", filled, qty)
			printEvents(cmd.OutOrStdout(), "market-order", events)

			query, err := k.GetPoolQuery(poolID)
			if err != nil {
				return err
			}
			printPoolQuery(cmd.OutOrStdout(), query)
			return nil
		},
	}
	addPoolFlags(cmd)
	cmd.Flags().String("taker", "taker", "account submitting the market order")
	cmd.Flags().String("side", "bid", "bid|ask")
	cmd.Flags().Uint64("qty", 500, "quantity to fill")
	return cmd
}
