package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
	"github.com/xswap-network/xswap/internal/config"
	"github.com/xswap-network/xswap/internal/core/application"
	"github.com/xswap-network/xswap/pkg/avm"
	"github.com/xswap-network/xswap/pkg/mathutil"
)

var walletCreate = cli.Command{
	Name:  "wallet-create",
	Usage: "create a new wallet, or import one from its private key",
	Flags: []cli.Flag{
		walletNameFlag,
		&cli.StringFlag{
			Name:    "key",
			Aliases: []string{"k"},
			Usage:   "private key to import, in the PrivateKey-<cb58> format",
		},
		&cli.StringFlag{
			Name:    "description",
			Aliases: []string{"d"},
			Usage:   "a description of the wallet",
		},
		&cli.StringFlag{
			Name:    "network",
			Aliases: []string{"t"},
			Usage:   "the network of the wallet: mainnet, fuji or testnet",
		},
		passwordFlag,
	},
	Action: walletCreateAction,
}

var walletBalances = cli.Command{
	Name:  "wallet-balances",
	Usage: "show the balances of a wallet",
	Flags: []cli.Flag{
		walletNameFlag,
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "print also the list of utxos",
		},
	},
	Action: walletBalancesAction,
}

var walletAddrs = cli.Command{
	Name:   "wallet-addrs",
	Usage:  "show the address of a wallet",
	Flags:  []cli.Flag{walletNameFlag},
	Action: walletAddrsAction,
}

var walletList = cli.Command{
	Name:   "wallet-list",
	Usage:  "list the names of the stored wallets",
	Action: walletListAction,
}

func walletCreateAction(ctx *cli.Context) error {
	name, err := walletName(ctx)
	if err != nil {
		return err
	}
	network, err := networkFromFlag(ctx.String("network"))
	if err != nil {
		return err
	}

	svc, err := getServices()
	if err != nil {
		return err
	}
	info, err := svc.walletSvc.CreateWallet(ctx.Context, application.CreateWalletRequest{
		Name:        name,
		PrivateKey:  ctx.String("key"),
		Description: ctx.String("description"),
		Network:     network,
		Password:    ctx.String(passwordFlag.Name),
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(info)
		return nil
	}
	fmt.Printf("Wallet %s created\n", info.Name)
	fmt.Printf("XChain Address: %s\n", info.Address)
	return nil
}

func walletBalancesAction(ctx *cli.Context) error {
	name, err := walletName(ctx)
	if err != nil {
		return err
	}

	svc, err := getServices()
	if err != nil {
		return err
	}
	balances, err := svc.walletSvc.GetBalances(ctx.Context, name)
	if err != nil {
		return err
	}

	utxos := make([]utxoView, 0, len(balances.Utxos))
	for _, u := range balances.Utxos {
		utxos = append(utxos, utxoView{
			ID:      u.ID(),
			TxID:    u.Hash(),
			Index:   u.Index(),
			AssetID: u.Asset(),
			Amount:  u.Value(),
			Address: u.Address(),
		})
	}

	if jsonOutput {
		resp := map[string]interface{}{
			"address": balances.Address,
			"assets":  balances.Assets,
		}
		if ctx.Bool("verbose") {
			resp["utxos"] = utxos
		}
		printJSON(resp)
		return nil
	}

	fmt.Printf("XChain Address: %s\n\n", balances.Address)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tQuantity\tDenomination")
	for _, a := range balances.Assets {
		fmt.Fprintf(
			w, "%s\t%s\t%s\t%d\n",
			a.AssetID, a.Name, mathutil.FormatBaseUnits(a.Amount, a.Denomination),
			a.Denomination,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if ctx.Bool("verbose") {
		fmt.Println()
		printJSON(utxos)
	}
	return nil
}

func walletAddrsAction(ctx *cli.Context) error {
	name, err := walletName(ctx)
	if err != nil {
		return err
	}

	svc, err := getServices()
	if err != nil {
		return err
	}
	info, err := svc.walletSvc.GetWalletInfo(ctx.Context, name)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(info)
		return nil
	}
	fmt.Printf("XChain Address: %s\n", info.Address)
	return nil
}

func walletListAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	names, err := svc.walletSvc.ListWallets(ctx.Context)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(names)
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

type utxoView struct {
	ID      string `json:"id"`
	TxID    string `json:"txID"`
	Index   uint32 `json:"outputIndex"`
	AssetID string `json:"assetID"`
	Amount  uint64 `json:"amount"`
	Address string `json:"address"`
}

// networkFromFlag returns the configured network if name is empty. testnet
// is an alias for fuji.
func networkFromFlag(name string) (avm.Network, error) {
	if len(name) <= 0 {
		return config.GetNetwork(), nil
	}
	if strings.EqualFold(name, "testnet") {
		return avm.Fuji, nil
	}
	network, err := avm.NetworkByName(strings.ToLower(name))
	if err != nil {
		return avm.Network{}, &application.Error{Kind: application.ErrValidation, Err: err}
	}
	return network, nil
}
