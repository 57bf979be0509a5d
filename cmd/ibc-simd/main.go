package main

import (
	"os"

	tmcli "github.com/tendermint/tendermint/libs/cli"

	"github.com/ibcprotocol/ibc-core/cmd/ibc-simd/cmd"
)

func main() {
	executor := tmcli.PrepareBaseCmd(cmd.NewRootCmd(), cmd.EnvPrefix, os.ExpandEnv("$HOME/.ibc-simd"))
	if err := executor.Execute(); err != nil {
		os.Exit(1)
	}
}
