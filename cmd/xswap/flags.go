package main

import (
	"errors"

	"github.com/asaskevich/govalidator"
	"github.com/urfave/cli/v2"
	"github.com/xswap-network/xswap/internal/core/application"
)

var (
	walletNameFlag = &cli.StringFlag{
		Name:    "name",
		Aliases: []string{"n"},
		Usage:   "the name of the wallet",
	}
	passwordFlag = &cli.StringFlag{
		Name:    "password",
		Aliases: []string{"p"},
		Usage:   "the password of an encrypted wallet",
		EnvVars: []string{"XSWAP_PASSWORD"},
	}
	quantityFlag = &cli.StringFlag{
		Name:    "quantity",
		Aliases: []string{"q"},
		Usage:   "the quantity of asset, ie. 1.5",
	}
	assetFlag = &cli.StringFlag{
		Name:    "asset",
		Aliases: []string{"t"},
		Usage:   "the asset id, or AVAX",
	}
	txHexFlag = &cli.StringFlag{
		Name:    "hex",
		Aliases: []string{"h"},
		Usage:   "the hex of the swap transaction",
	}
	referencesFlag = &cli.StringFlag{
		Name:    "refs",
		Aliases: []string{"r"},
		Usage:   "the JSON map of the address references of the swap transaction",
	}
)

const (
	missingWalletMsg     = "You must specify a wallet with the -n flag."
	missingQuantityMsg   = "You must specify an asset quantity with the -q flag."
	missingAvaxMsg       = "You must specify an avax quantity with the -a flag."
	missingAssetMsg      = "You must specify an asset id with the -t flag."
	missingTxHexMsg      = "You must specify a transaction hex with the -h flag."
	missingReferencesMsg = "You must specify an address reference with the -r flag."
	missingAddressMsg    = "You must specify a send-to address with the -a flag."
)

func validationError(msg string) error {
	return &application.Error{Kind: application.ErrValidation, Err: errors.New(msg)}
}

// requireString returns the value of the named flag, or a validation error
// with the given message if it's empty.
func requireString(ctx *cli.Context, name, msg string) (string, error) {
	value := ctx.String(name)
	if len(value) <= 0 {
		return "", validationError(msg)
	}
	return value, nil
}

func walletName(ctx *cli.Context) (string, error) {
	return requireString(ctx, walletNameFlag.Name, missingWalletMsg)
}

// swapMessageFlags returns the transaction hex and address references of a
// swap message.
func swapMessageFlags(ctx *cli.Context) (string, string, error) {
	txHex, err := requireString(ctx, txHexFlag.Name, missingTxHexMsg)
	if err != nil {
		return "", "", err
	}
	if !govalidator.IsHexadecimal(txHex) {
		return "", "", validationError("transaction must be in hex format")
	}
	refs, err := requireString(ctx, referencesFlag.Name, missingReferencesMsg)
	if err != nil {
		return "", "", err
	}
	if !govalidator.IsJSON(refs) {
		return "", "", validationError("address references must be a JSON object")
	}
	return txHex, refs, nil
}
