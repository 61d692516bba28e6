package cmd

import (
	"fmt"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
)

func newQueryCmd(logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "seed a pool and print its reserves, spot price, and book depth",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, _, poolID, err := seededKeeper(cmd, logger)
			if err != nil {
				return err
			}
			query, err := k.GetPoolQuery(poolID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pool id: %s\n", poolID)
			printPoolQuery(cmd.OutOrStdout(), query)

			meta, err := k.GetPoolMetadata(poolID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "fee_rate=%d (tenths of a percent) tick_size=%d lot_size=%d\n", meta.TakerFeeRate, meta.TickSize, meta.LotSize)
			return nil
		},
	}
	addPoolFlags(cmd)
	return cmd
}
