package forms

import (
	"context"
	"strings"

	"anti-theft-gps-tracker/internal/movecall"
	"anti-theft-gps-tracker/internal/wallet"
)

type GPSEventForm struct {
	DeviceID  string
	Latitude  string
	Longitude string
	Status    Status
}

func NewGPSEventForm() GPSEventForm {
	return GPSEventForm{Latitude: "0", Longitude: "0"}
}

func (f *GPSEventForm) Submit(ctx context.Context, enc *movecall.Encoder, s submitter) (wallet.Result, error) {
	status, res, err := submit(ctx, s, func() (movecall.Descriptor, error) {
		if strings.TrimSpace(f.DeviceID) == "" {
			return movecall.Descriptor{}, invalid(MsgEmptyDeviceID)
		}
		lat, err := movecall.ParseF64(f.Latitude)
		if err != nil {
			return movecall.Descriptor{}, invalid(MsgInvalidLatitude)
		}
		lng, err := movecall.ParseF64(f.Longitude)
		if err != nil {
			return movecall.Descriptor{}, invalid(MsgInvalidLongitude)
		}
		return enc.RegisterGPSEvent(f.DeviceID, lat, lng)
	}, func(digest string) string {
		return "GPS event sent! Tx digest: " + digest
	})
	f.Status = status
	return res, err
}
