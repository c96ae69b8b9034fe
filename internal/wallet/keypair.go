package wallet

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const flagEd25519 byte = 0x00

// intent scope TransactionData, version V0, app id IOTA
var transactionIntent = []byte{0, 0, 0}

type Keypair struct {
	priv ed25519.PrivateKey
}

func NewKeypair(seed []byte) (*Keypair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: seed must be %d bytes", ErrInvalidKey, ed25519.SeedSize)
	}
	return &Keypair{priv: ed25519.NewKeyFromSeed(seed)}, nil
}

// ParseKeystoreEntry decodes one entry of an IOTA keystore: base64 of the
// scheme flag followed by the 32-byte private key.
func ParseKeystoreEntry(entry string) (*Keypair, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(entry))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	if len(raw) != 1+ed25519.SeedSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKey, 1+ed25519.SeedSize, len(raw))
	}
	if raw[0] != flagEd25519 {
		return nil, fmt.Errorf("%w: flag 0x%02x", ErrUnsupportedKey, raw[0])
	}
	return NewKeypair(raw[1:])
}

// LoadKeystore reads a keystore file (JSON array of entries) and returns the
// key at index.
func LoadKeystore(path string, index int) (*Keypair, error) {
	const fn = "wallet:LoadKeystore"
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrKeystore, err)
	}
	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrKeystore, err)
	}
	if index < 0 || index >= len(entries) {
		return nil, fmt.Errorf("%s:%w: key index %d out of range (%d keys)", fn, ErrKeystore, index, len(entries))
	}
	return ParseKeystoreEntry(entries[index])
}

func (k *Keypair) PublicKey() ed25519.PublicKey {
	return k.priv.Public().(ed25519.PublicKey)
}

func (k *Keypair) Address() string {
	h := blake2b.Sum256(append([]byte{flagEd25519}, k.PublicKey()...))
	return "0x" + hex.EncodeToString(h[:])
}

func (k *Keypair) Account() Account {
	return Account{
		Address:   k.Address(),
		PublicKey: base64.StdEncoding.EncodeToString(k.PublicKey()),
	}
}

// SignTransaction signs BCS transaction bytes under the transaction intent and
// returns the serialized signature: flag || signature || public key, base64.
func (k *Keypair) SignTransaction(txBytes []byte) string {
	digest := TransactionDigest(txBytes)
	sig := ed25519.Sign(k.priv, digest[:])

	out := make([]byte, 0, 1+ed25519.SignatureSize+ed25519.PublicKeySize)
	out = append(out, flagEd25519)
	out = append(out, sig...)
	out = append(out, k.PublicKey()...)
	return base64.StdEncoding.EncodeToString(out)
}

// TransactionDigest is the message an account signs for a transaction.
func TransactionDigest(txBytes []byte) [32]byte {
	msg := make([]byte, 0, len(transactionIntent)+len(txBytes))
	msg = append(msg, transactionIntent...)
	msg = append(msg, txBytes...)
	return blake2b.Sum256(msg)
}
