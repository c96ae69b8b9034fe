package wallet

import (
	"context"
	"errors"

	"anti-theft-gps-tracker/internal/movecall"
)

var (
	ErrNotConnected     = errors.New("wallet not connected")
	ErrRPC              = errors.New("rpc call failed")
	ErrExecutionFailed  = errors.New("transaction execution failed")
	ErrInvalidKey       = errors.New("invalid private key")
	ErrUnsupportedKey   = errors.New("unsupported key scheme")
	ErrKeystore         = errors.New("keystore read failed")
	ErrInvalidArguments = errors.New("invalid call arguments")
)

type Account struct {
	Address   string `json:"address"`
	PublicKey string `json:"public_key"`
}

// Result is what the network hands back once a transaction is accepted.
type Result struct {
	Digest string `json:"digest"`
}

// Wallet is the account capability shared by every form and the relay.
type Wallet interface {
	Account() (Account, bool)
	SignAndExecute(ctx context.Context, d movecall.Descriptor) (Result, error)
}

// Error keeps the message reported by the node or signer unchanged so it can
// be shown to the user as is.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Disconnected is used when no signing key is configured.
type Disconnected struct{}

func (Disconnected) Account() (Account, bool) {
	return Account{}, false
}

func (Disconnected) SignAndExecute(context.Context, movecall.Descriptor) (Result, error) {
	return Result{}, ErrNotConnected
}
