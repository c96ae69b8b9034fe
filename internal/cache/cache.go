package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	k "anti-theft-gps-tracker/internal/kafka"

	"github.com/segmentio/kafka-go"
)

var (
	ErrReadMessage  = errors.New("error reading message")
	ErrParseMessage = errors.New("error parsing message")
	ErrBroker       = errors.New("broker not reachable")
)

// DeviceState is the last fix relayed for a device.
type DeviceState struct {
	LastTimestamp int64
	LastDigest    string
}

type Config struct {
	Brokers       string
	ConsumerTopic string
}

type StateCache struct {
	brokers string
	reader  k.Reader

	mu    sync.RWMutex
	store map[string]DeviceState
}

func New(cfg Config) *StateCache {
	return &StateCache{
		store: make(map[string]DeviceState),
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     []string{cfg.Brokers},
			Topic:       cfg.ConsumerTopic,
			StartOffset: kafka.FirstOffset,
			// No consumer group for one-time read
		}),
		brokers: cfg.Brokers,
	}
}

func (c *StateCache) Get(deviceID string) (DeviceState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	state, exists := c.store[deviceID]
	return state, exists
}

func (c *StateCache) Set(deviceID string, state DeviceState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[deviceID] = state
}

func (c *StateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

func (c *StateCache) waitForBroker(ctx context.Context, maxWait time.Duration, interval time.Duration) error {
	deadline := time.Now().Add(maxWait)
	for time.Now().Before(deadline) {
		dialCtx, cancel := context.WithTimeout(ctx, interval)
		conn, err := kafka.DialContext(dialCtx, "tcp", c.brokers)
		cancel()
		if err == nil {
			conn.Close()
			slog.InfoContext(ctx, "Broker is ready", "broker", c.brokers)
			return nil
		}
		slog.InfoContext(ctx, "Broker not ready", "broker", c.brokers, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return fmt.Errorf("%w after %s", ErrBroker, maxWait)
}

// Hydrate replays the receipts topic so fixes relayed before a restart are
// not submitted again. Blocking operation; cancellation is a clean stop.
func (c *StateCache) Hydrate(ctx context.Context) error {
	const fn = "StateCache:Hydrate"
	defer c.reader.Close()

	slog.InfoContext(ctx, "Pinging broker to ensure connectivity...")
	if err := c.waitForBroker(ctx, time.Second*30, time.Second*5); err != nil {
		if errors.Is(err, context.Canceled) {
			slog.InfoContext(ctx, "Cache hydrate stopped...")
			return nil
		}
		return fmt.Errorf("%s:%w", fn, err)
	}

	slog.InfoContext(ctx, "Starting cache hydration...")
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Cache hydrate stopped...")
			return nil
		default:
			done, err := c.ReadMessage(ctx)
			if errors.Is(err, ErrParseMessage) {
				slog.ErrorContext(ctx, "Skipping unreadable receipt", "error", err)
				continue
			}
			if errors.Is(err, context.Canceled) {
				slog.InfoContext(ctx, "Cache hydrate stopped...")
				return nil
			}
			if err != nil {
				return fmt.Errorf("%s:%w", fn, err)
			}
			if done {
				slog.InfoContext(ctx, "Cache hydration complete", "devices", c.Len())
				return nil
			}
		}
	}
}

// ReadMessage applies one receipt. done reports that the topic has been read
// to its end.
func (c *StateCache) ReadMessage(ctx context.Context) (bool, error) {
	const fn = "StateCache:ReadMessage"
	readCtx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	m, err := c.reader.ReadMessage(readCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return true, nil
		}
		return false, fmt.Errorf("%s:%w:%w", fn, ErrReadMessage, err)
	}

	var receipt k.Receipt
	if err := json.Unmarshal(m.Value, &receipt); err != nil {
		return false, fmt.Errorf("%s:%w:%w", fn, ErrParseMessage, err)
	}

	state, exists := c.Get(receipt.DeviceID)
	if !exists || receipt.Timestamp > state.LastTimestamp {
		c.Set(receipt.DeviceID, DeviceState{
			LastTimestamp: receipt.Timestamp,
			LastDigest:    receipt.Digest,
		})
	}

	return c.reader.Lag() == 0, nil
}
