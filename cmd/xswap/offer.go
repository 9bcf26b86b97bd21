package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/xswap-network/xswap/internal/core/application"
	"github.com/xswap-network/xswap/pkg/avm"
	"github.com/xswap-network/xswap/pkg/mathutil"
)

var offerMake = cli.Command{
	Name:  "offer-make",
	Usage: "make an offer selling a quantity of asset for avax",
	Flags: []cli.Flag{
		walletNameFlag,
		passwordFlag,
		assetFlag,
		quantityFlag,
		&cli.StringFlag{
			Name:    "avax",
			Aliases: []string{"a"},
			Usage:   "the quantity of avax asked in exchange",
		},
	},
	Action: offerMakeAction,
}

var offerTake = cli.Command{
	Name:   "offer-take",
	Usage:  "take an offer, paying its price in avax",
	Flags:  []cli.Flag{walletNameFlag, passwordFlag, txHexFlag, referencesFlag},
	Action: offerTakeAction,
}

var offerAccept = cli.Command{
	Name:  "offer-accept",
	Usage: "accept a taken offer and broadcast the swap transaction",
	Flags: []cli.Flag{
		walletNameFlag,
		passwordFlag,
		txHexFlag,
		referencesFlag,
		&cli.BoolFlag{
			Name:  "no-broadcast",
			Usage: "only print the signed transaction",
		},
		&cli.StringFlag{
			Name:    assetFlag.Name,
			Aliases: assetFlag.Aliases,
			Usage:   "the expected asset sold, required if the offer was made elsewhere",
		},
		&cli.StringFlag{
			Name:    quantityFlag.Name,
			Aliases: quantityFlag.Aliases,
			Usage:   "the expected quantity of asset sold",
		},
		&cli.StringFlag{
			Name:    "avax",
			Aliases: []string{"a"},
			Usage:   "the expected quantity of avax received",
		},
	},
	Action: offerAcceptAction,
}

var offerList = cli.Command{
	Name:  "offer-list",
	Usage: "list the offers recorded in the local journal",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    walletNameFlag.Name,
			Aliases: walletNameFlag.Aliases,
			Usage:   "show only the offers of the given wallet",
		},
	},
	Action: offerListAction,
}

func offerMakeAction(ctx *cli.Context) error {
	name, err := walletName(ctx)
	if err != nil {
		return err
	}
	asset, err := requireString(ctx, assetFlag.Name, missingAssetMsg)
	if err != nil {
		return err
	}
	quantity, err := requireString(ctx, quantityFlag.Name, missingQuantityMsg)
	if err != nil {
		return err
	}
	avax, err := requireString(ctx, "avax", missingAvaxMsg)
	if err != nil {
		return err
	}

	svc, err := getServices()
	if err != nil {
		return err
	}
	reply, err := svc.offerSvc.MakeOffer(ctx.Context, application.MakeOfferRequest{
		Wallet:           name,
		Password:         ctx.String(passwordFlag.Name),
		Asset:            asset,
		Quantity:         quantity,
		FeeAssetQuantity: avax,
	})
	if err != nil {
		return err
	}

	printOfferReply(reply)
	return nil
}

func offerTakeAction(ctx *cli.Context) error {
	name, err := walletName(ctx)
	if err != nil {
		return err
	}
	txHex, refs, err := swapMessageFlags(ctx)
	if err != nil {
		return err
	}

	svc, err := getServices()
	if err != nil {
		return err
	}
	reply, err := svc.offerSvc.TakeOffer(ctx.Context, application.TakeOfferRequest{
		Wallet:         name,
		Password:       ctx.String(passwordFlag.Name),
		TxHex:          txHex,
		AddrReferences: refs,
	})
	if err != nil {
		return err
	}

	printOfferReply(reply)
	return nil
}

func offerAcceptAction(ctx *cli.Context) error {
	name, err := walletName(ctx)
	if err != nil {
		return err
	}
	txHex, refs, err := swapMessageFlags(ctx)
	if err != nil {
		return err
	}

	svc, err := getServices()
	if err != nil {
		return err
	}
	reply, err := svc.offerSvc.AcceptOffer(ctx.Context, application.AcceptOfferRequest{
		Wallet:           name,
		Password:         ctx.String(passwordFlag.Name),
		TxHex:            txHex,
		AddrReferences:   refs,
		NoBroadcast:      ctx.Bool("no-broadcast"),
		Asset:            ctx.String(assetFlag.Name),
		Quantity:         ctx.String(quantityFlag.Name),
		FeeAssetQuantity: ctx.String("avax"),
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(reply)
		return nil
	}
	if reply.Broadcasted {
		fmt.Printf("Swap transaction %s issued\n", reply.TxID)
		return nil
	}
	fmt.Printf("Swap transaction %s signed\n%s\n", reply.TxID, reply.TxHex)
	return nil
}

func offerListAction(ctx *cli.Context) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	offers, err := svc.offerSvc.ListOffers(ctx.Context, ctx.String(walletNameFlag.Name))
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(offers)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWallet\tRole\tStatus\tAsset\tAmount\tAvax\tTxID\tCreated")
	for _, o := range offers {
		fmt.Fprintf(
			w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			o.ID, o.Wallet, o.Role, o.Status, o.Asset, o.Amount,
			mathutil.FormatBaseUnits(o.Price, avm.FeeAssetDenomination), o.TxID,
			time.Unix(o.CreatedAt, 0).Format(time.RFC3339),
		)
	}
	return w.Flush()
}

func printOfferReply(reply *application.OfferReply) {
	if jsonOutput {
		printJSON(reply)
		return
	}
	printJSON(reply.Message)
}
