package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/xswap-network/xswap/pkg/avm"
)

const (
	// DatadirKey is the local data directory where wallets and the offer
	// journal are stored
	DatadirKey = "DATADIR"
	// NetworkKey is the network of newly created wallets, either mainnet or
	// fuji
	NetworkKey = "NETWORK"
	// ExplorerURLKey is the base url of the node API. If not set, the public
	// endpoint of the wallet's network is used
	ExplorerURLKey = "EXPLORER_URL"
	// ExplorerRequestsPerSecondKey limits the rate of requests to the node
	ExplorerRequestsPerSecondKey = "EXPLORER_REQUESTS_PER_SECOND"
	// ExplorerTimeoutKey is the timeout in seconds of every node request
	ExplorerTimeoutKey = "EXPLORER_TIMEOUT"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch the offer journal between badger and
	// inmemory
	DBTypeKey = "DB_TYPE"

	WalletsLocation = "wallets"
	DbLocation      = "db"

	DBTypeBadger   = "badger"
	DBTypeInmemory = "inmemory"

	envFile = ".env"
)

var (
	vip            *viper.Viper
	defaultDatadir = btcutil.AppDataDir("xswap", false)

	explorerURLByNetwork = map[string]string{
		avm.Mainnet.Name: "https://api.avax.network",
		avm.Fuji.Name:    "https://api.avax-test.network",
	}
)

func InitConfig() error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error while loading %s file: %s", envFile, err)
	}

	vip = viper.New()
	vip.SetEnvPrefix("XSWAP")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(NetworkKey, avm.Mainnet.Name)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(ExplorerRequestsPerSecondKey, 10)
	vip.SetDefault(ExplorerTimeoutKey, 30)
	vip.SetDefault(DBTypeKey, DBTypeBadger)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

func GetWalletsDir() string {
	return filepath.Join(GetDatadir(), WalletsLocation)
}

func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

// GetNetwork returns the params of the configured network.
func GetNetwork() avm.Network {
	network, _ := avm.NetworkByName(GetString(NetworkKey))
	return network
}

// GetExplorerURL returns the configured node url, or the public one of the
// given network.
func GetExplorerURL(network avm.Network) string {
	if url := GetString(ExplorerURLKey); len(url) > 0 {
		return url
	}
	return explorerURLByNetwork[network.Name]
}

// GetExplorerTimeout returns the timeout of node requests.
func GetExplorerTimeout() time.Duration {
	return time.Duration(GetInt(ExplorerTimeoutKey)) * time.Second
}

// AllSettings returns the effective configuration.
func AllSettings() map[string]interface{} {
	return map[string]interface{}{
		DatadirKey:                   GetDatadir(),
		NetworkKey:                   GetString(NetworkKey),
		ExplorerURLKey:               GetExplorerURL(GetNetwork()),
		ExplorerRequestsPerSecondKey: GetInt(ExplorerRequestsPerSecondKey),
		ExplorerTimeoutKey:           GetInt(ExplorerTimeoutKey),
		LogLevelKey:                  GetInt(LogLevelKey),
		DBTypeKey:                    GetString(DBTypeKey),
	}
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if _, err := avm.NetworkByName(GetString(NetworkKey)); err != nil {
		return err
	}

	if GetInt(ExplorerRequestsPerSecondKey) <= 0 {
		return fmt.Errorf("%s must be a positive number", ExplorerRequestsPerSecondKey)
	}
	if GetInt(ExplorerTimeoutKey) <= 0 {
		return fmt.Errorf("%s must be a positive number", ExplorerTimeoutKey)
	}

	dbType := GetString(DBTypeKey)
	if dbType != DBTypeBadger && dbType != DBTypeInmemory {
		return fmt.Errorf("%s must be either %s or %s", DBTypeKey, DBTypeBadger, DBTypeInmemory)
	}

	return nil
}

func initDatadir() error {
	if err := makeDirectoryIfNotExists(GetWalletsDir()); err != nil {
		return err
	}
	if GetString(DBTypeKey) == DBTypeBadger {
		if err := makeDirectoryIfNotExists(GetDbDir()); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
