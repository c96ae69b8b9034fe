package forms

import (
	"context"
	"strings"

	"anti-theft-gps-tracker/internal/movecall"
	"anti-theft-gps-tracker/internal/wallet"
)

const DefaultUpdateThreshold = "500"

type UpdateThresholdForm struct {
	DeviceID  string
	Threshold string
	Status    Status
}

func NewUpdateThresholdForm() UpdateThresholdForm {
	return UpdateThresholdForm{Threshold: DefaultUpdateThreshold}
}

func (f *UpdateThresholdForm) Submit(ctx context.Context, enc *movecall.Encoder, s submitter) (wallet.Result, error) {
	status, res, err := submit(ctx, s, func() (movecall.Descriptor, error) {
		if strings.TrimSpace(f.DeviceID) == "" {
			return movecall.Descriptor{}, invalid(MsgEmptyDeviceID)
		}
		threshold, err := movecall.ParseU64(f.Threshold)
		if err != nil {
			return movecall.Descriptor{}, invalid(MsgInvalidThreshold)
		}
		return enc.UpdateThreshold(f.DeviceID, threshold)
	}, func(digest string) string {
		return "Threshold updated. Tx digest: " + digest
	})
	f.Status = status
	return res, err
}
