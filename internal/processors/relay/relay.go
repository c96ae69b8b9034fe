package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"anti-theft-gps-tracker/internal/cache"
	"anti-theft-gps-tracker/internal/movecall"
	"anti-theft-gps-tracker/internal/wallet"
	"anti-theft-gps-tracker/internal/worker"

	k "anti-theft-gps-tracker/internal/kafka" // alias to avoid name conflict

	"github.com/segmentio/kafka-go"
)

var (
	ErrReadMessage    = errors.New("error reading message")
	ErrParseMessage   = errors.New("error parsing message")
	ErrWriteMessage   = errors.New("error writing receipt")
	ErrUnorderedEvent = errors.New("out of order event")
	ErrDuplicateEvent = errors.New("duplicate event")
	ErrInvalidEvent   = errors.New("invalid event")
	ErrSubmit         = errors.New("submission failed")
)

type deviceCache interface {
	Get(deviceID string) (cache.DeviceState, bool)
	Set(deviceID string, state cache.DeviceState)
}

type Config struct {
	Brokers         string
	ConsumerGroupID string
	ConsumerTopic   string
	PublisherTopic  string
	Encoder         *movecall.Encoder
	Wallet          wallet.Wallet
	Cache           deviceCache
}

// Relay forwards GPS fixes from Kafka to register_gps_event and publishes a
// receipt for each one it submits.
type Relay struct {
	worker  *worker.Worker
	reader  k.Reader
	writer  k.Writer
	cache   deviceCache
	encoder *movecall.Encoder
	wallet  wallet.Wallet
}

func New(cfg Config) *Relay {
	relay := &Relay{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: []string{cfg.Brokers},
			GroupID: cfg.ConsumerGroupID,
			Topic:   cfg.ConsumerTopic,
		}),
		writer: &kafka.Writer{
			Addr:     kafka.TCP(cfg.Brokers),
			Topic:    cfg.PublisherTopic,
			Balancer: &kafka.Hash{},
		},
		cache:   cfg.Cache,
		encoder: cfg.Encoder,
		wallet:  cfg.Wallet,
	}

	relay.worker = worker.New(worker.Config{
		Name:      "relay-worker",
		Processor: relay,
		Backoff:   time.Second,
	})
	return relay
}

func (r *Relay) Run(ctx context.Context) {
	r.worker.Run(ctx)
}

func (r *Relay) Close(ctx context.Context) {
	slog.InfoContext(ctx, "Closing relay resources...")
	r.reader.Close()
	r.writer.Close()
}

// ProcessMessage handles one fix. Auto-commit is active, so a fix that fails
// on chain is reported in its receipt and never retried.
func (r *Relay) ProcessMessage(ctx context.Context) error {
	const fn = "Relay:ProcessMessage"
	m, err := r.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%s:%w:%w", fn, ErrReadMessage, err)
	}
	var fix k.GPSFix
	if err := json.Unmarshal(m.Value, &fix); err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrParseMessage, err)
	}
	fix.DeviceID = strings.TrimSpace(fix.DeviceID)

	if err := r.validateFix(fix); err != nil {
		slog.InfoContext(ctx, "Invalid fix, skipping",
			"error", err,
			"device_id", fix.DeviceID,
			"timestamp", fix.Timestamp,
		)
		return nil
	}

	desc, err := r.encoder.RegisterGPSEvent(fix.DeviceID, fix.Latitude, fix.Longitude)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrInvalidEvent, err)
	}

	res, submitErr := r.wallet.SignAndExecute(ctx, desc)
	receipt := k.Receipt{DeviceID: fix.DeviceID, Timestamp: fix.Timestamp, Digest: res.Digest}
	if submitErr != nil {
		receipt.Error = submitErr.Error()
	}

	out, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrWriteMessage, err)
	}
	err = r.writer.WriteMessages(ctx, kafka.Message{Key: []byte(fix.DeviceID), Value: out})
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrWriteMessage, err)
	}

	// Set cache only after successful write
	r.cache.Set(fix.DeviceID, cache.DeviceState{
		LastTimestamp: fix.Timestamp,
		LastDigest:    receipt.Digest,
	})

	if submitErr != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrSubmit, submitErr)
	}
	slog.InfoContext(ctx, "Relayed fix", "device_id", fix.DeviceID, "digest", res.Digest)
	return nil
}

func (r *Relay) validateFix(fix k.GPSFix) error {
	if fix.DeviceID == "" {
		return ErrInvalidEvent
	}
	if math.IsNaN(fix.Latitude) || math.IsInf(fix.Latitude, 0) ||
		math.IsNaN(fix.Longitude) || math.IsInf(fix.Longitude, 0) {
		return ErrInvalidEvent
	}
	state, exists := r.cache.Get(fix.DeviceID)
	if exists {
		if fix.Timestamp < state.LastTimestamp {
			return ErrUnorderedEvent
		}
		if fix.Timestamp == state.LastTimestamp {
			return ErrDuplicateEvent
		}
	}
	return nil
}
