package cmd

import (
	"fmt"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
)

func newCreatePoolCmd(logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-pool",
		Short: "create a pool and seed it with initial liquidity, then print its id and state",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, _, poolID, err := seededKeeper(cmd, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pool id: %s\n", poolID)
			query, err := k.GetPoolQuery(poolID)
			if err != nil {
				return err
			}
			printPoolQuery(cmd.OutOrStdout(), query)
			return nil
		},
	}
	addPoolFlags(cmd)
	return cmd
}
