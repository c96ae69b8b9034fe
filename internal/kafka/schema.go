package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// GPSFix is one position report published by a tracker.
type GPSFix struct {
	DeviceID  string  `json:"device_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"`
}

// Receipt records the outcome of relaying one fix on chain. Error is set when
// the submission failed; the fix is not retried.
type Receipt struct {
	DeviceID  string `json:"device_id"`
	Timestamp int64  `json:"timestamp"`
	Digest    string `json:"digest,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Lag() int64
	Close() error
}

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
