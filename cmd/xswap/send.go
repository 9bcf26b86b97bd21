package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"github.com/xswap-network/xswap/internal/core/application"
)

var send = cli.Command{
	Name:  "send",
	Usage: "send a quantity of asset to an address",
	Flags: []cli.Flag{
		walletNameFlag,
		passwordFlag,
		quantityFlag,
		&cli.StringFlag{
			Name:    "address",
			Aliases: []string{"a"},
			Usage:   "the address of the receiver",
		},
		&cli.StringFlag{
			Name:    assetFlag.Name,
			Aliases: assetFlag.Aliases,
			Usage:   "the asset id to send",
			Value:   application.FeeAssetAlias,
		},
	},
	Action: sendAction,
}

var burn = cli.Command{
	Name:   "burn",
	Usage:  "burn a quantity of asset",
	Flags:  []cli.Flag{walletNameFlag, passwordFlag, quantityFlag, assetFlag},
	Action: burnAction,
}

func sendAction(ctx *cli.Context) error {
	name, err := walletName(ctx)
	if err != nil {
		return err
	}
	quantity, err := requireString(ctx, quantityFlag.Name, missingQuantityMsg)
	if err != nil {
		return err
	}
	address, err := requireString(ctx, "address", missingAddressMsg)
	if err != nil {
		return err
	}

	svc, err := getServices()
	if err != nil {
		return err
	}
	reply, err := svc.walletSvc.Send(ctx.Context, application.SendRequest{
		Wallet:   name,
		Password: ctx.String(passwordFlag.Name),
		Asset:    ctx.String(assetFlag.Name),
		Quantity: quantity,
		Address:  address,
	})
	if err != nil {
		return err
	}

	printTxReply(reply)
	return nil
}

func burnAction(ctx *cli.Context) error {
	name, err := walletName(ctx)
	if err != nil {
		return err
	}
	quantity, err := requireString(ctx, quantityFlag.Name, missingQuantityMsg)
	if err != nil {
		return err
	}
	asset, err := requireString(ctx, assetFlag.Name, missingAssetMsg)
	if err != nil {
		return err
	}

	svc, err := getServices()
	if err != nil {
		return err
	}
	reply, err := svc.walletSvc.Burn(ctx.Context, application.BurnRequest{
		Wallet:   name,
		Password: ctx.String(passwordFlag.Name),
		Asset:    asset,
		Quantity: quantity,
	})
	if err != nil {
		return err
	}

	printTxReply(reply)
	return nil
}

func printTxReply(reply *application.TxReply) {
	if jsonOutput {
		printJSON(map[string]string{"txid": reply.TxID})
		return
	}
	fmt.Printf("Transaction %s issued\n", reply.TxID)
}
