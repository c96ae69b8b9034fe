package forms

import (
	"context"

	"anti-theft-gps-tracker/internal/movecall"
	"anti-theft-gps-tracker/internal/wallet"
)

const DefaultCreateThreshold = "1000"

type CreateDeviceForm struct {
	Name      string
	Threshold string
	Status    Status
}

func NewCreateDeviceForm() CreateDeviceForm {
	return CreateDeviceForm{Threshold: DefaultCreateThreshold}
}

func (f *CreateDeviceForm) Submit(ctx context.Context, enc *movecall.Encoder, s submitter) (wallet.Result, error) {
	status, res, err := submit(ctx, s, func() (movecall.Descriptor, error) {
		threshold, err := movecall.ParseU64(f.Threshold)
		if err != nil {
			return movecall.Descriptor{}, invalid(MsgInvalidThreshold)
		}
		return enc.CreateDevice(f.Name, threshold)
	}, func(digest string) string {
		return "Device created! Digest: " + digest
	})
	f.Status = status
	return res, err
}
