package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/xswap-network/xswap/internal/config"
	"github.com/xswap-network/xswap/internal/core/application"
	"github.com/xswap-network/xswap/internal/core/ports"
	dbbadger "github.com/xswap-network/xswap/internal/infrastructure/storage/db/badger"
	"github.com/xswap-network/xswap/internal/infrastructure/storage/db/inmemory"
	filestore "github.com/xswap-network/xswap/internal/infrastructure/storage/file"
	"github.com/xswap-network/xswap/pkg/avm"
	"github.com/xswap-network/xswap/pkg/explorer"
	"github.com/xswap-network/xswap/pkg/explorer/avalanche"
)

var (
	version = "dev"

	datadirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "data directory where wallets and the offer journal are stored",
	}
	explorerFlag = &cli.StringFlag{
		Name:  "explorer-url",
		Usage: "base url of the node API",
	}
	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "print results and errors in JSON format",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "enable debug logs and dump explorer metrics on exit",
	}

	jsonOutput bool
	registry   = prometheus.NewRegistry()
	services   *appServices
)

type appServices struct {
	walletSvc   application.WalletService
	offerSvc    application.OfferService
	repoManager ports.RepoManager
}

func main() {
	// -h is used by the commands for the transaction hex.
	cli.HelpFlag = &cli.BoolFlag{Name: "help", Usage: "show help"}

	app := cli.NewApp()
	app.Version = version
	app.Name = "xswap"
	app.Usage = "UTXO wallet for the Avalanche X-chain with atomic swap offers"
	app.Flags = []cli.Flag{datadirFlag, explorerFlag, jsonFlag, debugFlag}
	app.Before = before
	app.After = after
	app.Commands = append(
		app.Commands,
		&walletCreate,
		&walletBalances,
		&walletAddrs,
		&walletList,
		&send,
		&burn,
		&offerMake,
		&offerTake,
		&offerAccept,
		&offerList,
		&configCmd,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func before(ctx *cli.Context) error {
	jsonOutput = ctx.Bool(jsonFlag.Name)

	// Flags take precedence over environment and .env values.
	if ctx.IsSet(datadirFlag.Name) {
		os.Setenv("XSWAP_"+config.DatadirKey, ctx.String(datadirFlag.Name))
	}
	if ctx.IsSet(explorerFlag.Name) {
		os.Setenv("XSWAP_"+config.ExplorerURLKey, ctx.String(explorerFlag.Name))
	}

	if err := config.InitConfig(); err != nil {
		return &application.Error{Kind: application.ErrValidation, Err: err}
	}

	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
	if ctx.Bool(debugFlag.Name) {
		log.SetLevel(log.DebugLevel)
	}
	return nil
}

func after(ctx *cli.Context) error {
	if services != nil {
		services.repoManager.Close()
	}
	if ctx.Bool(debugFlag.Name) {
		dumpMetrics()
	}
	return nil
}

// getServices wires the application services the first time a command needs
// them.
func getServices() (*appServices, error) {
	if services != nil {
		return services, nil
	}

	walletStore, err := filestore.NewWalletStore(config.GetWalletsDir())
	if err != nil {
		return nil, &application.Error{Kind: application.ErrStorage, Err: err}
	}

	var repoManager ports.RepoManager
	switch config.GetString(config.DBTypeKey) {
	case config.DBTypeInmemory:
		repoManager = inmemory.NewRepoManager()
	default:
		repoManager, err = dbbadger.NewRepoManager(config.GetDbDir(), nil)
		if err != nil {
			return nil, &application.Error{
				Kind: application.ErrStorage,
				Err:  fmt.Errorf("failed to open offer journal: %w", err),
			}
		}
	}

	factory := newExplorerFactory()
	services = &appServices{
		walletSvc:   application.NewWalletService(walletStore, factory),
		offerSvc:    application.NewOfferService(walletStore, factory, repoManager),
		repoManager: repoManager,
	}
	return services, nil
}

func newExplorerFactory() application.ExplorerFactory {
	lock := &sync.Mutex{}
	cache := make(map[string]explorer.Service)

	return func(network avm.Network) (explorer.Service, error) {
		lock.Lock()
		defer lock.Unlock()

		if svc, ok := cache[network.Name]; ok {
			return svc, nil
		}
		svc, err := avalanche.NewService(avalanche.Opts{
			URL:               config.GetExplorerURL(network),
			Network:           network,
			RequestsPerSecond: config.GetInt(config.ExplorerRequestsPerSecondKey),
			Timeout:           config.GetExplorerTimeout(),
			Registerer:        registry,
		})
		if err != nil {
			return nil, err
		}
		cache[network.Name] = svc
		return svc, nil
	}
}

func dumpMetrics() {
	families, err := registry.Gather()
	if err != nil {
		log.WithError(err).Warn("failed to gather metrics")
		return
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(os.Stderr, mf); err != nil {
			log.WithError(err).Warn("failed to dump metrics")
			return
		}
	}
}

// printJSON prints resp with indentation.
func printJSON(resp interface{}) {
	buf, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to encode response: ", err)
		return
	}
	fmt.Println(string(buf))
}

func fatal(err error) {
	log.WithError(err).Debug("command failed")

	if jsonOutput {
		printJSON(map[string]string{
			"error": err.Error(),
			"kind":  application.KindName(err),
		})
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[xswap] %v\n", err)
	}
	os.Exit(application.ExitCode(err))
}
