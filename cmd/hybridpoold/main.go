package main

import (
	"fmt"
	"os"

	"cosmossdk.io/log"

	"github.com/openalpha/hybridbook/cmd/hybridpoold/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		log.NewLogger(os.Stderr).Error("hybridpoold exited with an error", "err", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
