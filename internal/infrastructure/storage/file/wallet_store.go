package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/xswap-network/xswap/internal/core/ports"
)

const (
	walletExt     = ".json"
	walletPattern = `^[a-zA-Z0-9_.-]+$`
)

type walletFile struct {
	Wallet *ports.WalletRecord `json:"wallet"`
}

type walletStore struct {
	dir string
}

// NewWalletStore returns a WalletStore keeping one JSON file per wallet in
// the given directory, that is created if missing.
func NewWalletStore(dir string) (ports.WalletStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &walletStore{dir}, nil
}

func (s *walletStore) CreateWallet(
	_ context.Context, name string, record ports.WalletRecord,
) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	buf, err := json.MarshalIndent(walletFile{&record}, "", "  ")
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ports.ErrWalletAlreadyExists, name)
		}
		return err
	}
	if _, err := f.Write(buf); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func (s *walletStore) GetWallet(
	_ context.Context, name string,
) (*ports.WalletRecord, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ports.ErrWalletNotFound, name)
		}
		return nil, err
	}

	file := walletFile{}
	if err := json.Unmarshal(buf, &file); err != nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrInvalidWalletFile, err)
	}
	if file.Wallet == nil || len(file.Wallet.Address) <= 0 {
		return nil, fmt.Errorf("%w: missing wallet data", ports.ErrInvalidWalletFile)
	}
	return file.Wallet, nil
}

func (s *walletStore) ListWallets(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != walletExt {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), walletExt))
	}
	sort.Strings(names)
	return names, nil
}

func (s *walletStore) path(name string) (string, error) {
	if !govalidator.Matches(name, walletPattern) || name == "." || name == ".." {
		return "", ports.ErrInvalidWalletName
	}
	return filepath.Join(s.dir, name+walletExt), nil
}
