package wallet

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

func testSeed() []byte {
	return bytes.Repeat([]byte{0x07}, ed25519.SeedSize)
}

func keystoreEntry(flag byte, seed []byte) string {
	return base64.StdEncoding.EncodeToString(append([]byte{flag}, seed...))
}

func Test_ParseKeystoreEntry(t *testing.T) {
	cases := []struct {
		name        string
		entry       string
		expectedErr error
	}{
		{
			name:  "ed25519 entry",
			entry: keystoreEntry(flagEd25519, testSeed()),
		},
		{
			name:        "secp256k1 entry",
			entry:       keystoreEntry(0x01, testSeed()),
			expectedErr: ErrUnsupportedKey,
		},
		{
			name:        "short entry",
			entry:       keystoreEntry(flagEd25519, testSeed()[:16]),
			expectedErr: ErrInvalidKey,
		},
		{
			name:        "not base64",
			entry:       "%%%",
			expectedErr: ErrInvalidKey,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			k, err := ParseKeystoreEntry(tt.entry)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, k)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ed25519.NewKeyFromSeed(testSeed()).Public(), k.PublicKey())
		})
	}
}

func Test_Keypair_Address(t *testing.T) {
	k, err := NewKeypair(testSeed())
	require.NoError(t, err)

	h := blake2b.Sum256(append([]byte{0x00}, k.PublicKey()...))
	assert.Equal(t, "0x"+hex.EncodeToString(h[:]), k.Address())
	assert.Len(t, k.Address(), 66)

	acct := k.Account()
	assert.Equal(t, k.Address(), acct.Address)
	assert.Equal(t, base64.StdEncoding.EncodeToString(k.PublicKey()), acct.PublicKey)
}

func Test_Keypair_SignTransaction(t *testing.T) {
	k, err := NewKeypair(testSeed())
	require.NoError(t, err)
	txBytes := []byte("transaction-data")

	serialized, err := base64.StdEncoding.DecodeString(k.SignTransaction(txBytes))
	require.NoError(t, err)
	require.Len(t, serialized, 1+ed25519.SignatureSize+ed25519.PublicKeySize)

	assert.Equal(t, flagEd25519, serialized[0])
	sig := serialized[1 : 1+ed25519.SignatureSize]
	pub := ed25519.PublicKey(serialized[1+ed25519.SignatureSize:])
	assert.Equal(t, k.PublicKey(), pub)

	digest := TransactionDigest(txBytes)
	assert.True(t, ed25519.Verify(pub, digest[:], sig))

	unprefixed := blake2b.Sum256(txBytes)
	assert.False(t, ed25519.Verify(pub, unprefixed[:], sig))
}

func Test_LoadKeystore(t *testing.T) {
	other := bytes.Repeat([]byte{0x09}, ed25519.SeedSize)
	data, err := json.Marshal([]string{
		keystoreEntry(flagEd25519, other),
		keystoreEntry(flagEd25519, testSeed()),
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "iota.keystore")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	k, err := LoadKeystore(path, 1)
	require.NoError(t, err)
	assert.Equal(t, ed25519.NewKeyFromSeed(testSeed()).Public(), k.PublicKey())

	_, err = LoadKeystore(path, 2)
	assert.ErrorIs(t, err, ErrKeystore)

	_, err = LoadKeystore(filepath.Join(t.TempDir(), "missing"), 0)
	assert.ErrorIs(t, err, ErrKeystore)
}
