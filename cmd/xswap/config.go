package main

import (
	"github.com/urfave/cli/v2"
	"github.com/xswap-network/xswap/internal/config"
)

var configCmd = cli.Command{
	Name:   "config",
	Usage:  "print the effective configuration",
	Action: configAction,
}

func configAction(ctx *cli.Context) error {
	printJSON(config.AllSettings())
	return nil
}
