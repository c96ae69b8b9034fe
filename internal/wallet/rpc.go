package wallet

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strconv"

	"anti-theft-gps-tracker/internal/movecall"

	"github.com/ethereum/go-ethereum/rpc"
)

const (
	DefaultGasBudget = 10_000_000

	methodMoveCall = "unsafe_moveCall"
	methodExecute  = "iota_executeTransactionBlock"

	waitForLocalExecution = "WaitForLocalExecution"
	statusSuccess         = "success"
)

type rpcClient interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
	Close()
}

type Config struct {
	URL       string
	Key       *Keypair
	GasBudget uint64
}

// RPCWallet signs with a local key and talks to a fullnode over JSON-RPC.
// The node assembles the transaction bytes from the call descriptor and picks
// the gas coin.
type RPCWallet struct {
	client    rpcClient
	key       *Keypair
	gasBudget uint64
}

func Dial(ctx context.Context, cfg Config) (*RPCWallet, error) {
	const fn = "wallet:Dial"
	if cfg.Key == nil {
		return nil, fmt.Errorf("%s:%w", fn, ErrInvalidKey)
	}
	client, err := rpc.DialContext(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrRPC, err)
	}
	return newRPCWallet(client, cfg.Key, cfg.GasBudget), nil
}

func newRPCWallet(client rpcClient, key *Keypair, gasBudget uint64) *RPCWallet {
	if gasBudget == 0 {
		gasBudget = DefaultGasBudget
	}
	return &RPCWallet{client: client, key: key, gasBudget: gasBudget}
}

func (w *RPCWallet) Account() (Account, bool) {
	return w.key.Account(), true
}

func (w *RPCWallet) Close() {
	w.client.Close()
}

type transactionBlockBytes struct {
	TxBytes string `json:"txBytes"`
}

type executeOptions struct {
	ShowEffects bool `json:"showEffects"`
}

type executionStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type transactionEffects struct {
	Status executionStatus `json:"status"`
}

type transactionResponse struct {
	Digest  string              `json:"digest"`
	Effects *transactionEffects `json:"effects,omitempty"`
}

func (w *RPCWallet) SignAndExecute(ctx context.Context, d movecall.Descriptor) (Result, error) {
	args, err := callArguments(d.Arguments)
	if err != nil {
		return Result{}, err
	}

	var block transactionBlockBytes
	err = w.client.CallContext(ctx, &block, methodMoveCall,
		w.key.Address(),
		d.Target.Package,
		d.Target.Module,
		d.Target.Function,
		[]string{},
		args,
		nil,
		strconv.FormatUint(w.gasBudget, 10),
	)
	if err != nil {
		return Result{}, &Error{Kind: ErrRPC, Message: err.Error()}
	}

	txBytes, err := base64.StdEncoding.DecodeString(block.TxBytes)
	if err != nil {
		return Result{}, &Error{Kind: ErrRPC, Message: "node returned malformed transaction bytes: " + err.Error()}
	}
	signature := w.key.SignTransaction(txBytes)

	var resp transactionResponse
	err = w.client.CallContext(ctx, &resp, methodExecute,
		block.TxBytes,
		[]string{signature},
		executeOptions{ShowEffects: true},
		waitForLocalExecution,
	)
	if err != nil {
		return Result{}, &Error{Kind: ErrRPC, Message: err.Error()}
	}
	if resp.Effects != nil && resp.Effects.Status.Status != statusSuccess {
		slog.WarnContext(ctx, "Transaction failed on chain",
			"digest", resp.Digest,
			"target", d.Target.String(),
			"error", resp.Effects.Status.Error,
		)
		return Result{Digest: resp.Digest}, &Error{Kind: ErrExecutionFailed, Message: failureMessage(resp)}
	}

	slog.InfoContext(ctx, "Transaction executed", "digest", resp.Digest, "target", d.Target.String())
	return Result{Digest: resp.Digest}, nil
}

// failureMessage is the node's error text, or a description built from the
// status when the node sent none.
func failureMessage(resp transactionResponse) string {
	if msg := resp.Effects.Status.Error; msg != "" {
		return msg
	}
	return fmt.Sprintf("transaction %s finished with status %q", resp.Digest, resp.Effects.Status.Status)
}

// callArguments maps descriptor arguments onto the JSON values the node's
// transaction builder accepts. u64 travels as a decimal string.
func callArguments(in []movecall.Argument) ([]any, error) {
	out := make([]any, 0, len(in))
	for i, a := range in {
		if a.IsObject() {
			out = append(out, a.ObjectID)
			continue
		}
		switch a.Pure.Type {
		case movecall.TypeU64:
			v, ok := a.Pure.Value.(uint64)
			if !ok {
				return nil, fmt.Errorf("%w: argument %d: u64 holds %T", ErrInvalidArguments, i, a.Pure.Value)
			}
			out = append(out, strconv.FormatUint(v, 10))
		case movecall.TypeString, movecall.TypeF64:
			out = append(out, a.Pure.Value)
		default:
			return nil, fmt.Errorf("%w: argument %d: unknown type %q", ErrInvalidArguments, i, a.Pure.Type)
		}
	}
	return out, nil
}
