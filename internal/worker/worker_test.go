package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingProcessor struct {
	calls  int
	stopAt int
	cancel context.CancelFunc
}

func (p *countingProcessor) ProcessMessage(ctx context.Context) error {
	p.calls++
	if p.calls == p.stopAt {
		p.cancel()
		return context.Canceled
	}
	return errors.New("bad message")
}

func Test_Run_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := &countingProcessor{stopAt: 3, cancel: cancel}
	w := New(Config{Name: "test-worker", Processor: p})

	w.Run(ctx)

	assert.Equal(t, 3, p.calls)
}

func Test_Run_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &countingProcessor{}
	New(Config{Name: "test-worker", Processor: p}).Run(ctx)

	assert.Equal(t, 0, p.calls)
}

func Test_Run_BacksOffAfterFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := &countingProcessor{stopAt: 3, cancel: cancel}
	w := New(Config{Name: "test-worker", Processor: p, Backoff: 20 * time.Millisecond})

	start := time.Now()
	w.Run(ctx)

	assert.Equal(t, 3, p.calls)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}
