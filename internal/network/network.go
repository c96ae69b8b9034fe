package network

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const DefaultNetwork = "testnet"

var (
	ErrUnknownNetwork = errors.New("unknown network")
	ErrEmptyURL       = errors.New("network url cannot be empty")
)

var fullnodeURLs = map[string]string{
	"mainnet":  "https://api.mainnet.iota.cafe",
	"testnet":  "https://api.testnet.iota.cafe",
	"devnet":   "https://api.devnet.iota.cafe",
	"localnet": "http://127.0.0.1:9000",
}

// FullnodeURL returns the public fullnode endpoint of a well-known network.
func FullnodeURL(name string) (string, error) {
	url, ok := fullnodeURLs[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownNetwork, name)
	}
	return url, nil
}

// Config maps logical network names to RPC endpoints. It is built once and
// only read afterwards.
type Config struct {
	urls map[string]string
}

// NewConfig starts from the well-known networks and applies overrides on top.
func NewConfig(overrides map[string]string) (Config, error) {
	const fn = "network:NewConfig"
	urls := make(map[string]string, len(fullnodeURLs)+len(overrides))
	for name, url := range fullnodeURLs {
		urls[name] = url
	}
	for name, url := range overrides {
		url = strings.TrimSpace(url)
		if url == "" {
			return Config{}, fmt.Errorf("%s:%w: %s", fn, ErrEmptyURL, name)
		}
		urls[strings.ToLower(name)] = url
	}
	return Config{urls: urls}, nil
}

func (c Config) Resolve(name string) (string, error) {
	url, ok := c.urls[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownNetwork, name)
	}
	return url, nil
}

// Names returns the configured network names in sorted order.
func (c Config) Names() []string {
	names := make([]string, 0, len(c.urls))
	for name := range c.urls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c Config) All() map[string]string {
	out := make(map[string]string, len(c.urls))
	for name, url := range c.urls {
		out[name] = url
	}
	return out
}
