package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"testing"

	"anti-theft-gps-tracker/internal/config"
	"anti-theft-gps-tracker/internal/movecall"
	"anti-theft-gps-tracker/internal/network"
	"anti-theft-gps-tracker/internal/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *config.Config {
	return &config.Config{
		Network:  config.Network{Name: "localnet"},
		Contract: config.Contract{PackageID: "0xpkg", RegistryID: "0xreg"},
	}
}

func Test_New(t *testing.T) {
	networks, err := network.NewConfig(nil)
	require.NoError(t, err)
	enc, err := movecall.NewEncoder(movecall.Contract{PackageID: "0xpkg", RegistryID: "0xreg"})
	require.NoError(t, err)

	p, err := New(Config{Networks: networks, NetworkName: "devnet", Encoder: enc})
	require.NoError(t, err)
	assert.Equal(t, "devnet", p.Network())
	assert.Equal(t, "https://api.devnet.iota.cafe", p.RPCURL())
	assert.Same(t, enc, p.Encoder())
	assert.IsType(t, wallet.Disconnected{}, p.Wallet())

	_, err = New(Config{Networks: networks, NetworkName: "moonnet", Encoder: enc})
	assert.ErrorIs(t, err, ErrNetwork)

	_, err = New(Config{Networks: networks, NetworkName: "devnet"})
	assert.ErrorIs(t, err, ErrContract)
}

func Test_FromConfig(t *testing.T) {
	entry := base64.StdEncoding.EncodeToString(append([]byte{0x00}, bytes.Repeat([]byte{0x01}, 32)...))

	cases := []struct {
		name          string
		mutate        func(*config.Config)
		expectedErr   error
		expectedOwner bool
	}{
		{
			name:   "no key configured",
			mutate: func(*config.Config) {},
		},
		{
			name: "inline key",
			mutate: func(c *config.Config) {
				c.Wallet.PrivateKey = entry
			},
			expectedOwner: true,
		},
		{
			name: "invalid key",
			mutate: func(c *config.Config) {
				c.Wallet.PrivateKey = "not-a-key"
			},
			expectedErr: ErrWallet,
		},
		{
			name: "unknown network",
			mutate: func(c *config.Config) {
				c.Network.Name = "moonnet"
			},
			expectedErr: ErrNetwork,
		},
		{
			name: "missing registry",
			mutate: func(c *config.Config) {
				c.Contract.RegistryID = ""
			},
			expectedErr: ErrContract,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(cfg)

			p, err := FromConfig(context.Background(), cfg)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			defer p.Close()

			_, ok := p.Wallet().Account()
			assert.Equal(t, tt.expectedOwner, ok)
			assert.Equal(t, "http://127.0.0.1:9000", p.RPCURL())
		})
	}
}

func Test_LoadKey(t *testing.T) {
	key, err := LoadKey(config.Wallet{})
	require.NoError(t, err)
	assert.Nil(t, key)

	entry := base64.StdEncoding.EncodeToString(append([]byte{0x00}, bytes.Repeat([]byte{0x02}, 32)...))
	key, err = LoadKey(config.Wallet{PrivateKey: entry})
	require.NoError(t, err)
	assert.Regexp(t, "^0x[0-9a-f]{64}$", key.Address())

	_, err = LoadKey(config.Wallet{PrivateKey: "not-base64!"})
	assert.ErrorIs(t, err, wallet.ErrInvalidKey)
}
