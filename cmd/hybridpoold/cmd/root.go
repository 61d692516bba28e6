package cmd

import (
	"fmt"
	"os"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the hybridpoold command tree. Unlike a chain daemon,
// this binary has no persistent store to attach to: every subcommand seeds
// its own in-memory keeper and prints what happened, making it a scripted
// demonstration of the matching engine rather than a long-running node.
func NewRootCmd() *cobra.Command {
	logger := log.NewLogger(os.Stdout)

	root := &cobra.Command{
		Use:   "hybridpoold",
		Short: "hybridpoold drives a hybrid AMM + limit orderbook matching engine",
		Long: `hybridpoold is a demonstration CLI for the hybrid AMM/orderbook matching
engine: it seeds a single in-memory pool, drives it through liquidity
provision, limit and market orders, and cancellation, and prints the
resulting events and book depth at each step.`,
	}

	root.AddCommand(
		newDemoCmd(logger),
		newCreatePoolCmd(logger),
		newPlaceLimitCmd(logger),
		newMarketOrderCmd(logger),
		newCancelCmd(logger),
		newQueryCmd(logger),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the hybridpoold version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "hybridpoold (dev)")
			return err
		},
	}
}
