package cmd

import (
	"fmt"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
)

func newPlaceLimitCmd(logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "place-limit",
		Short: "seed a pool, then place a single limit order against it",
		RunE: func(cmd *cobra.Command, args []string) error {
			maker, err := cmd.Flags().GetString("maker")
			if err != nil {
				return err
			}
			sideStr, err := cmd.Flags().GetString("side")
			if err != nil {
				return err
			}
			price, err := cmd.Flags().GetUint64("price")
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
			custody.Mint(base, maker, qty*2)
			custody.Mint(quote, maker, price*qty*2)

			orderID, events, err := k.LimitOrder(poolID, side, maker, price, qty)
			if err != nil {
				return err
			}
			if orderID != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "order id: %d\n", *orderID)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "order crossed the spot and was routed to the matcher instead of resting")
			}
			printEvents(cmd.OutOrStdout(), "place-limit", events)
			return nil
		},
	}
	addPoolFlags(cmd)
	cmd.Flags().String("maker", "maker", "account placing the order")
	cmd.Flags().String("side", "bid", "bid|ask")
	cmd.Flags().Uint64("price", 10100, "limit price")
	cmd.Flags().Uint64("qty", 100, "order quantity")
	return cmd
}
