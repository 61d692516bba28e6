package cmd

import (
	"fmt"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
)

// newCancelCmd seeds a pool, places one resting limit order for itself, and
// immediately cancels it, since this binary carries no state between
// invocations for a real order id to be handed back in for cancellation.
func newCancelCmd(logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "place a resting limit order and then cancel it, to exercise cancellation in isolation",
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := cmd.Flags().GetString("owner")
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
			cancelQty, err := cmd.Flags().GetUint64("cancel-qty")
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
			custody.Mint(base, owner, qty*2)
			custody.Mint(quote, owner, price*qty*2)

			orderID, events, err := k.LimitOrder(poolID, side, owner, price, qty)
			if err != nil {
				return err
			}
			if orderID == nil {
				return fmt.Errorf("order crossed the spot at price %d and was matched immediately; nothing to cancel", price)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "placed order id: %d\n", *orderID)
			printEvents(cmd.OutOrStdout(), "place-limit", events)

			if cancelQty == 0 {
				cancelQty = qty
			}
			cancelEvents, err := k.CancelOrder(poolID, owner, price, *orderID, cancelQty)
			if err != nil {
				return err
			}
			printEvents(cmd.OutOrStdout(), "cancel", cancelEvents)
			return nil
		},
	}
	addPoolFlags(cmd)
	cmd.Flags().String("owner", "owner", "account placing and cancelling the order")
	cmd.Flags().String("side", "bid", "bid|ask")
	cmd.Flags().Uint64("price", 10000, "limit price, chosen to rest rather than cross")
	cmd.Flags().Uint64("qty", 100, "order quantity")
	cmd.Flags().Uint64("cancel-qty", 0, "quantity to cancel (0 = cancel it all)")
	return cmd
}
