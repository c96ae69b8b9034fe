package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"anti-theft-gps-tracker/internal/config"
	"anti-theft-gps-tracker/internal/logging"
	"anti-theft-gps-tracker/internal/movecall"
	"anti-theft-gps-tracker/internal/network"
	"anti-theft-gps-tracker/internal/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEncoder(t *testing.T) *movecall.Encoder {
	enc, err := movecall.NewEncoder(movecall.Contract{
		PackageID:  "0xpkg",
		Module:     movecall.DefaultModule,
		RegistryID: "0xreg",
	})
	require.NoError(t, err)
	return enc
}

func Test_EncodeOperation(t *testing.T) {
	enc := newTestEncoder(t)

	cases := []struct {
		name             string
		operation        string
		input            encodeInput
		expectedFunction string
		expectedErr      error
	}{
		{
			name:             "create device",
			operation:        "create-device",
			input:            encodeInput{Name: "Honda Bike", Threshold: "1000"},
			expectedFunction: movecall.FnCreateDevice,
		},
		{
			name:             "update threshold",
			operation:        "update-threshold",
			input:            encodeInput{DeviceID: "0xdevice", Threshold: "500"},
			expectedFunction: movecall.FnUpdateThreshold,
		},
		{
			name:             "gps event",
			operation:        "gps-event",
			input:            encodeInput{DeviceID: "0xdevice", Latitude: "48.85", Longitude: "2.35"},
			expectedFunction: movecall.FnRegisterGPSEvent,
		},
		{
			name:        "malformed threshold",
			operation:   "create-device",
			input:       encodeInput{Name: "Bike", Threshold: "-1"},
			expectedErr: movecall.ErrMalformedNumber,
		},
		{
			name:        "empty device id",
			operation:   "update-threshold",
			input:       encodeInput{Threshold: "5"},
			expectedErr: movecall.ErrEmptyObjectID,
		},
		{
			name:        "malformed latitude",
			operation:   "gps-event",
			input:       encodeInput{DeviceID: "0xdevice", Latitude: "north", Longitude: "0"},
			expectedErr: movecall.ErrMalformedNumber,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			d, err := encodeOperation(enc, tt.operation, tt.input)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedFunction, d.Target.Function)
		})
	}
}

func Test_WriteDescriptor(t *testing.T) {
	d, err := newTestEncoder(t).UpdateThreshold("0xdevice", 500)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeDescriptor(&buf, d, "json"))
	assert.Contains(t, buf.String(), `"target": "0xpkg::anti_theft_gps_tracker::update_threshold"`)
	assert.Contains(t, buf.String(), `"ObjectId": "0xdevice"`)

	buf.Reset()
	require.NoError(t, writeDescriptor(&buf, d, "yaml"))
	assert.Contains(t, buf.String(), "0xpkg::anti_theft_gps_tracker::update_threshold")
	assert.Contains(t, buf.String(), "ObjectId: 0xdevice")
	assert.Contains(t, buf.String(), "type: u64")

	err = writeDescriptor(&buf, d, "xml")
	assert.ErrorIs(t, err, errUnknownOutput)
}

func Test_PrintNetworks(t *testing.T) {
	networks, err := network.NewConfig(map[string]string{"custom": "http://node:9000"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printNetworks(&buf, networks, "Testnet"))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "  custom"))
	for _, line := range lines {
		if strings.Contains(line, "testnet") {
			assert.True(t, strings.HasPrefix(line, "* "))
		} else {
			assert.True(t, strings.HasPrefix(line, "  "))
		}
	}
}

func Test_NewLogger(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, config.Log{Level: "warn", Format: "json"}).Info("hidden")
	assert.Empty(t, buf.String())

	newLogger(&buf, config.Log{Level: "debug", Format: "text"}).Debug("shown", "device_id", "0xdevice")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "device_id=0xdevice")

	buf.Reset()
	newLogger(&buf, config.Log{Level: "nonsense"}).Info("fallback")
	assert.Contains(t, buf.String(), `"msg":"fallback"`)

	buf.Reset()
	ctx := logging.WithSubmission(context.Background(), "sub-9")
	newLogger(&buf, config.Log{Level: "info"}).InfoContext(ctx, "Transaction executed")
	assert.Contains(t, buf.String(), `"submission_id":"sub-9"`)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("stdout closed")
}

func Test_PrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, map[string]string{"name": "gpstracker"}))
	assert.JSONEq(t, `{"name":"gpstracker"}`, buf.String())

	assert.Error(t, printJSON(&buf, map[string]any{"bad": make(chan int)}))
	assert.EqualError(t, printJSON(failingWriter{}, map[string]string{}), "stdout closed")
}

func Test_VersionCmd(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	require.NoError(t, versionCmd.RunE(versionCmd, nil))
	assert.Contains(t, buf.String(), `"version": "0.1.0"`)

	versionCmd.SetOut(failingWriter{})
	assert.Error(t, versionCmd.RunE(versionCmd, nil))
}

func Test_AccountCmd(t *testing.T) {
	prev := cfg
	t.Cleanup(func() { cfg = prev })

	cfg = &config.Config{Network: config.Network{Name: "testnet"}}
	assert.ErrorIs(t, accountCmd.RunE(accountCmd, nil), wallet.ErrNotConnected)

	cfg.Wallet.PrivateKey = "AAEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEB"
	accountCmd.SetOut(failingWriter{})
	t.Cleanup(func() { accountCmd.SetOut(nil) })
	assert.EqualError(t, accountCmd.RunE(accountCmd, nil), "stdout closed")
}
