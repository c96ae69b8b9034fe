package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Steps:
// 1. Publish a short track of GPS fixes for one device to the fixes topic,
//    including a duplicate and an out of order fix
// 2. Read the receipts topic until one receipt per accepted fix is seen or the
//    timeout expires
// 3. Compare the receipted timestamps against the expected ones

type gpsFix struct {
	DeviceID  string  `json:"device_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"`
}

type receipt struct {
	DeviceID  string `json:"device_id"`
	Timestamp int64  `json:"timestamp"`
	Digest    string `json:"digest"`
	Error     string `json:"error"`
}

func main() {
	brokers := flag.String("brokers", "localhost:9092", "kafka broker address")
	deviceID := flag.String("device", "", "device object id to report fixes for")
	fixesTopic := flag.String("fixes-topic", "gps-fixes", "topic the relay consumes")
	receiptsTopic := flag.String("receipts-topic", "gps-receipts", "topic the relay publishes to")
	timeout := flag.Duration("timeout", 2*time.Minute, "how long to wait for receipts")
	flag.Parse()

	if *deviceID == "" {
		panic("missing -device")
	}

	base := time.Now().UnixMilli()
	fixes := []gpsFix{
		{DeviceID: *deviceID, Latitude: 48.8566, Longitude: 2.3522, Timestamp: base},
		{DeviceID: *deviceID, Latitude: 48.8570, Longitude: 2.3530, Timestamp: base + 1000},
		{DeviceID: *deviceID, Latitude: 48.8570, Longitude: 2.3530, Timestamp: base + 1000}, // duplicate
		{DeviceID: *deviceID, Latitude: 48.8560, Longitude: 2.3510, Timestamp: base - 5000}, // out of order
		{DeviceID: *deviceID, Latitude: 48.8581, Longitude: 2.3545, Timestamp: base + 2000},
	}
	expected := map[int64]bool{base: true, base + 1000: true, base + 2000: true}

	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers: []string{*brokers},
		Topic:   *fixesTopic,
	})
	defer writer.Close()

	var messages []kafka.Message
	for _, fix := range fixes {
		value, err := json.Marshal(fix)
		if err != nil {
			fmt.Printf("failed to marshal fix: %v\n", err)
			continue
		}
		messages = append(messages, kafka.Message{Key: []byte(fix.DeviceID), Value: value})
	}

	// Start reading receipts before publishing so none are missed
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{*brokers},
		Topic:       *receiptsTopic,
		StartOffset: kafka.LastOffset,
	})
	defer reader.Close()

	if err := writer.WriteMessages(context.TODO(), messages...); err != nil {
		panic(fmt.Errorf("failed to write fixes: %w", err))
	}
	fmt.Printf("Published %d fixes to Kafka topic '%s'\n", len(messages), *fixesTopic)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	received := make(map[int64]receipt)
	for len(received) < len(expected) {
		m, err := reader.ReadMessage(ctx)
		if errors.Is(err, context.DeadlineExceeded) {
			break
		}
		if err != nil {
			panic(fmt.Errorf("failed to read receipt: %w", err))
		}
		var r receipt
		if err := json.Unmarshal(m.Value, &r); err != nil {
			fmt.Printf("failed to decode receipt: %v\n", err)
			continue
		}
		if r.DeviceID != *deviceID {
			continue
		}
		received[r.Timestamp] = r
		fmt.Printf("Receipt: timestamp=%d digest=%s error=%s\n", r.Timestamp, r.Digest, r.Error)
	}

	ok := true
	for ts := range expected {
		if _, found := received[ts]; !found {
			fmt.Printf("Missing receipt for timestamp %d\n", ts)
			ok = false
		}
	}
	for ts := range received {
		if !expected[ts] {
			fmt.Printf("Unexpected receipt for timestamp %d\n", ts)
			ok = false
		}
	}
	if ok {
		fmt.Println("E2E test passed")
	} else {
		fmt.Println("E2E test failed")
	}
}
