package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"anti-theft-gps-tracker/internal/config"
	"anti-theft-gps-tracker/internal/movecall"
	"anti-theft-gps-tracker/internal/network"
	"anti-theft-gps-tracker/internal/wallet"
)

var (
	ErrNetwork  = errors.New("network configuration invalid")
	ErrContract = errors.New("contract configuration invalid")
	ErrWallet   = errors.New("wallet configuration invalid")
)

// Providers is the process-wide context handed to every form handler and the
// relay. It is built once by New and never mutated afterwards.
type Providers struct {
	networks    network.Config
	networkName string
	rpcURL      string
	encoder     *movecall.Encoder
	wallet      wallet.Wallet
	closers     []func()
}

type Config struct {
	Networks    network.Config
	NetworkName string
	Encoder     *movecall.Encoder
	Wallet      wallet.Wallet
}

// New composes already built parts. Use FromConfig to build them from loaded
// configuration.
func New(cfg Config) (*Providers, error) {
	const fn = "provider:New"
	url, err := cfg.Networks.Resolve(cfg.NetworkName)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrNetwork, err)
	}
	if cfg.Encoder == nil {
		return nil, fmt.Errorf("%s:%w", fn, ErrContract)
	}
	w := cfg.Wallet
	if w == nil {
		w = wallet.Disconnected{}
	}
	return &Providers{
		networks:    cfg.Networks,
		networkName: cfg.NetworkName,
		rpcURL:      url,
		encoder:     cfg.Encoder,
		wallet:      w,
	}, nil
}

func FromConfig(ctx context.Context, cfg *config.Config) (*Providers, error) {
	const fn = "provider:FromConfig"
	networks, err := network.NewConfig(cfg.Network.URLs)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrNetwork, err)
	}
	url, err := networks.Resolve(cfg.Network.Name)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrNetwork, err)
	}
	enc, err := movecall.NewEncoder(movecall.Contract{
		PackageID:  cfg.Contract.PackageID,
		Module:     cfg.Contract.Module,
		RegistryID: cfg.Contract.RegistryID,
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrContract, err)
	}

	key, err := LoadKey(cfg.Wallet)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrWallet, err)
	}

	var w wallet.Wallet = wallet.Disconnected{}
	var closers []func()
	if key != nil {
		rw, err := wallet.Dial(ctx, wallet.Config{URL: url, Key: key, GasBudget: cfg.Wallet.GasBudget})
		if err != nil {
			return nil, fmt.Errorf("%s:%w:%w", fn, ErrWallet, err)
		}
		w = rw
		closers = append(closers, rw.Close)
		slog.InfoContext(ctx, "Wallet connected", "address", key.Address(), "network", cfg.Network.Name)
	} else {
		slog.WarnContext(ctx, "No signing key configured, submissions will be refused")
	}

	p, err := New(Config{
		Networks:    networks,
		NetworkName: cfg.Network.Name,
		Encoder:     enc,
		Wallet:      w,
	})
	if err != nil {
		return nil, err
	}
	p.closers = closers
	return p, nil
}

// LoadKey returns the configured signing key, or nil when none is set.
func LoadKey(cfg config.Wallet) (*wallet.Keypair, error) {
	switch {
	case cfg.PrivateKey != "":
		return wallet.ParseKeystoreEntry(cfg.PrivateKey)
	case cfg.Keystore != "":
		return wallet.LoadKeystore(cfg.Keystore, cfg.KeyIndex)
	default:
		return nil, nil
	}
}

func (p *Providers) Network() string {
	return p.networkName
}

func (p *Providers) RPCURL() string {
	return p.rpcURL
}

func (p *Providers) Networks() network.Config {
	return p.networks
}

func (p *Providers) Encoder() *movecall.Encoder {
	return p.encoder
}

func (p *Providers) Wallet() wallet.Wallet {
	return p.wallet
}

func (p *Providers) Close() {
	for _, c := range p.closers {
		c()
	}
}
