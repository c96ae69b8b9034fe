package forms

import (
	"context"
	"errors"

	"anti-theft-gps-tracker/internal/movecall"
	"anti-theft-gps-tracker/internal/wallet"
)

const (
	MsgEmptyDeviceID    = "Device ID cannot be empty."
	MsgInvalidThreshold = "Threshold must be a non-negative whole number."
	MsgInvalidLatitude  = "Latitude must be a number."
	MsgInvalidLongitude = "Longitude must be a number."
)

// ErrInvalidInput marks a submission stopped before anything was signed.
var ErrInvalidInput = errors.New("invalid form input")

type submitter interface {
	SignAndExecute(ctx context.Context, d movecall.Descriptor) (wallet.Result, error)
}

type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusSuccess
	StatusError
)

// Status is the line shown under a form after its last submission.
type Status struct {
	Kind    StatusKind
	Message string
}

func (s Status) IsError() bool {
	return s.Kind == StatusError
}

func (s Status) IsSuccess() bool {
	return s.Kind == StatusSuccess
}

type inputError struct {
	message string
}

func (e *inputError) Error() string {
	return e.message
}

func (e *inputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(message string) error {
	return &inputError{message: message}
}

// submit runs one encode + sign-and-submit round and reports the outcome.
// Input errors are shown as is; anything from the wallet is prefixed.
func submit(ctx context.Context, s submitter, build func() (movecall.Descriptor, error), success func(digest string) string) (Status, wallet.Result, error) {
	d, err := build()
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return Status{Kind: StatusError, Message: err.Error()}, wallet.Result{}, err
		}
		return Status{Kind: StatusError, Message: "Error: " + err.Error()}, wallet.Result{}, err
	}
	res, err := s.SignAndExecute(ctx, d)
	if err != nil {
		return Status{Kind: StatusError, Message: "Error: " + err.Error()}, res, err
	}
	return Status{Kind: StatusSuccess, Message: success(res.Digest)}, res, nil
}
